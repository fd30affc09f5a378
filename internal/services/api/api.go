// Package api provides the HTTP API for the application
package api

import (
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/module"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/swaggerkit"

	metamod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/api/meta/module"
	cmpmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/module"
	dirmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/module"
	rptmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the complaints module first and extract its Snapshot port
	complaints := cmpmod.New(deps)
	snap := module.MustPortsOf[cmpmod.Ports](complaints).Snapshot

	// Inject that Snapshot into the reports module
	reports := rptmod.New(
		deps,
		modkit.WithPorts(rptmod.Ports{
			Snapshot: snap,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		dirmod.New(deps),
		complaints, // owns the snapshot reads every report runs on
		reports,    // API module that depends on the complaints Snapshot
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
