// Package module carries the module contract and the port plumbing
// it sits below modkit so modules can export ports without import cycles
package module

import (
	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
)

// Module mirrors the modkit contract at this level
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
