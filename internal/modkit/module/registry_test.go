package module

import (
	"sync"
	"testing"
)

// dirPorts is a stand-in for the port bundle a service would register
type dirPorts struct {
	Service string
	Wards   int
}

// must is a tiny helper for ok checks
func must(t *testing.T, ok bool, msg string) {
	t.Helper()
	if !ok {
		t.Fatalf("%s", msg)
	}
}

// registry tests run serially: they share one process wide registry and
// Reset() would wipe a sibling's registration mid-test

func TestRegistry_RegisterAndPortsAs_Success(t *testing.T) {
	Reset()

	want := dirPorts{Service: "directory", Wards: 4}
	Register("directory", want)

	got, ok := PortsAs[dirPorts]("directory")
	must(t, ok, "expected ok for existing name")
	if got != want {
		t.Fatalf("unexpected value got=%v want=%v", got, want)
	}
}

func TestRegistry_PortsAs_MissingReturnsZeroAndFalse(t *testing.T) {
	Reset()

	got, ok := PortsAs[dirPorts]("missing")
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if got != (dirPorts{}) {
		t.Fatalf("expected zero value got=%v", got)
	}
}

func TestRegistry_PortsAs_TypeMismatchReturnsFalse(t *testing.T) {
	Reset()

	Register("complaints", dirPorts{Service: "complaints", Wards: 2})

	// ask for wrong type
	_, ok := PortsAs[int]("complaints")
	if ok {
		t.Fatal("expected ok=false for type mismatch")
	}
}

func TestRegistry_Register_OverwritesExisting(t *testing.T) {
	Reset()

	Register("reports", dirPorts{Service: "a", Wards: 1})
	Register("reports", dirPorts{Service: "b", Wards: 2})

	got, ok := PortsAs[dirPorts]("reports")
	must(t, ok, "expected ok for reports after overwrite")
	if got.Service != "b" || got.Wards != 2 {
		t.Fatalf("expected overwritten value got=%v", got)
	}
}

func TestRegistry_Reset_ClearsAll(t *testing.T) {
	Reset()

	Register("ingest", dirPorts{Service: "ingest", Wards: 9})
	Reset()

	_, ok := PortsAs[dirPorts]("ingest")
	if ok {
		t.Fatal("expected ok=false after reset")
	}
}

func TestRegistry_ConcurrentRegisterAndRead_NoRace(t *testing.T) {
	Reset()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2)

	// writer
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Register("concurrent", dirPorts{Service: "k", Wards: i})
		}
	}()

	// reader
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, _ = PortsAs[dirPorts]("concurrent")
		}
	}()

	wg.Wait()

	got, ok := PortsAs[dirPorts]("concurrent")
	must(t, ok, "expected ok after concurrent writes")
	if got.Service != "k" {
		t.Fatalf("unexpected final value got=%v", got)
	}
}
