// Package module wires reports into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	str "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/strings"
	cmpdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	rpthttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/http"
	rptrepo "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/repo"
	rptsvc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/service"
)

// Module implements the reports module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc rptsvc.Service
}

// Ports declares the required injected port(s) for this module
type Ports struct {
	Snapshot cmpdom.SnapshotPort
}

// New constructs the reports module. The snapshot port comes from the
// complaints module so both read the store the same way
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Snapshot == nil {
		panic("reports module requires Snapshot port (from services/complaints)")
	}

	var rollup rptrepo.Trends
	if deps.CH != nil {
		rollup = rptrepo.NewCH(deps.CH)
	}
	svc := rptsvc.New(injected.Snapshot, rollup)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptReportsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rpthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
