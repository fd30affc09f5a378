// Package module wires the ingest worker service and exposes its ports
package module

import (
	modkit "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	cmprepo "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/repo"
	cmpsvc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/service"
	ingrepo "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/repo"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/service"
)

// Module defines the ingest worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ingest worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Rollup {
		opts.Rollup = true
	}
	if overrides.Source != "" {
		opts.Source = overrides.Source
	}

	// the snapshot loader the rollup reads through
	snap := cmpsvc.New(deps.PG, cmprepo.NewPG())

	svc := service.New(deps.PG, ingrepo.NewPG(), snap, deps.CH, service.Options{
		Rollup: opts.Rollup,
		Source: opts.Source,
	})
	svc.Log = deps.Log

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Ports returns the module ports (Runner)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "ingest" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
