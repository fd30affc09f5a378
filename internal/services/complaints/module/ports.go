package module

import (
	dom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
)

// Ports holds the ports exposed by the complaints module
// Snapshot is consumed by the reports module for analyzer input
type Ports struct {
	Service  dom.ServicePort
	Snapshot dom.SnapshotPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
