package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/testkit"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/module"
	cmpmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/module"
)

// nullTx satisfies store.TxRunner; the smoke test never reaches a database
type nullTx struct{}

func (nullTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nullTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nullTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (nullTx) Tx(ctx context.Context, fn func(store.RowQuerier) error) error  { return fn(nullTx{}) }

func mountTestAPI(t *testing.T, swagger, profiler bool) http.Handler {
	t.Helper()
	testkit.Serial(t)
	t.Cleanup(module.Reset)

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config:         config.New().Prefix("CORE_API_"),
		Store:          &store.Store{PG: nullTx{}},
		Logger:         logger.Get(),
		EnableSwagger:  swagger,
		EnableProfiler: profiler,
	})
	return r.Mux()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_ComposesModulesUnderAPIV1(t *testing.T) {
	h := mountTestAPI(t, false, false)

	// the complaints module publishes its snapshot port for reports
	ports, ok := module.PortsAs[cmpmod.Ports]("complaints")
	if !ok {
		t.Fatalf("complaints ports not registered")
	}
	if ports.Snapshot == nil {
		t.Fatalf("complaints Snapshot port is nil")
	}

	rec := get(t, h, "/api/v1/meta/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("meta health status = %d, want 200", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), `"service":"csd-api"`)
	testkit.MustContain(t, rec.Body.String(), `"ok":true`)

	// pg is wired with a fake that cannot ping, ch not at all
	rec = get(t, h, "/api/v1/meta/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("meta ready status = %d, want 200", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), `"degraded"`)
	testkit.MustContain(t, rec.Body.String(), `"skipped"`)

	if rec := get(t, h, "/api/v1/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d, want 404", rec.Code)
	}
}

func TestMount_DocsAndProfilerToggles(t *testing.T) {
	off := mountTestAPI(t, false, false)
	if rec := get(t, off, "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("docs disabled status = %d, want 404", rec.Code)
	}
	if rec := get(t, off, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Fatalf("profiler disabled status = %d, want 404", rec.Code)
	}
}

func TestMount_ServesSkeletonDocJSON(t *testing.T) {
	on := mountTestAPI(t, true, false)

	rec := get(t, on, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d, want 200", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), "Community Services API")
}
