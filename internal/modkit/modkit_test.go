// Package modkit provides building blocks for modular Go applications
package modkit

import (
	"testing"

	phttp "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/net/http"
)

// reportsStub satisfies Module and records calls
type reportsStub struct {
	mounted bool
	ports   any
}

func (s *reportsStub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *reportsStub) Ports() any                 { return s.ports }
func (s *reportsStub) Name() string               { return "reports" }

// compile-time assertion: reportsStub implements Module
var _ Module = (*reportsStub)(nil)

func TestModule_InterfaceSurface(t *testing.T) {
	t.Parallel()

	m := &reportsStub{ports: 42}

	// typed nil router is fine; just validate call flow
	var r phttp.Router = nil
	m.MountRoutes(r)

	if !m.mounted {
		t.Fatal("expected MountRoutes to be called")
	}

	if got := m.Ports(); got != 42 {
		t.Fatalf("unexpected Ports value: got=%v want=42", got)
	}

	if m.Name() != "reports" {
		t.Fatalf("unexpected Name: %q", m.Name())
	}
}

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	// a minimal Builder that ignores deps/options and returns a stub
	var b Builder = func(_ Deps, _ ...Option) Module {
		return &reportsStub{ports: "reports.reader"}
	}

	m := b(Deps{})
	if m == nil {
		t.Fatal("builder returned nil module")
	}

	if p := m.Ports(); p != "reports.reader" {
		t.Fatalf("unexpected Ports value from built module: got=%v want=reports.reader", p)
	}
}
