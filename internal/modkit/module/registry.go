package module

import "sync"

// process wide port registry filled during bootstrap in main
// reads after bootstrap are lock cheap
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register parks a port set under the module name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches name's port set and asserts it to T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset wipes the registry, for tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
