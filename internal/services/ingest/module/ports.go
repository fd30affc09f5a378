package module

import dom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/domain"

// Ports holds the ports exposed by the ingest module
type Ports struct {
	Runner dom.RunnerPort
}
