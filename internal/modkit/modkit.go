package modkit

import (
	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
)

// Module is what every service module looks like from the outside
// three methods keeps cross module coupling at ports only
type Module interface {
	// MountRoutes attaches the module endpoints to the router seam
	MountRoutes(r phttp.Router)
	// Ports returns the set other modules may consume, nil when there is none
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder is the New signature modules share
// mains treat every module the same way through it
type Builder func(Deps, ...Option) Module
