package raw

import (
	"testing"
)

// Test Get with prefixing and trimming
func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " csd ")
	t.Setenv("CORE_API_HOST", " 0.0.0.0 ")

	root := New()
	api := root.Prefix("CORE_API_")

	tests := []struct {
		name   string
		conf   Conf
		key    string
		def    string
		envKey string
		want   string
	}{
		{name: "root no default used", conf: root, key: "APP_NAME", def: "x", envKey: "APP_NAME", want: "csd"},
		{name: "prefixed hit", conf: api, key: "HOST", def: "x", envKey: "CORE_API_HOST", want: "0.0.0.0"},
		{name: "missing returns default", conf: api, key: "MISSING", def: "defv", envKey: "", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.conf.Get(tt.key, tt.def)
			if got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

// Test GetBool with truthy and falsy variants and defaults
func TestConfGetBool(t *testing.T) {
	ingest := New().Prefix("CORE_INGEST_")

	t.Setenv("CORE_INGEST_T1", "true")
	t.Setenv("CORE_INGEST_T2", "1")
	t.Setenv("CORE_INGEST_T3", "YES")
	t.Setenv("CORE_INGEST_F1", "false")
	t.Setenv("CORE_INGEST_F2", "0")
	t.Setenv("CORE_INGEST_F3", "no")
	t.Setenv("CORE_INGEST_WS", "   true   ")

	tests := []struct {
		name string
		key  string
		def  bool
		want bool
	}{
		{name: "true", key: "T1", def: false, want: true},
		{name: "1", key: "T2", def: false, want: true},
		{name: "YES", key: "T3", def: false, want: true},
		{name: "false", key: "F1", def: true, want: false},
		{name: "0", key: "F2", def: true, want: false},
		{name: "no", key: "F3", def: true, want: false},
		{name: "whitespace trimmed", key: "WS", def: false, want: true},
		{name: "missing uses default true", key: "MISSING", def: true, want: true},
		{name: "missing uses default false", key: "MISSING2", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ingest.GetBool(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

// Test GetInt with numeric, non numeric, trimming, and defaults
func TestConfGetInt(t *testing.T) {
	pg := New().Prefix("SERVICE_PGSQL_")

	t.Setenv("SERVICE_PGSQL_PORT", "5432")
	t.Setenv("SERVICE_PGSQL_WS", "  7  ")
	t.Setenv("SERVICE_PGSQL_NONNUM", "12x")
	t.Setenv("SERVICE_PGSQL_NEG", "-5") // negative should fall back to default by our simple parser

	tests := []struct {
		name string
		key  string
		def  int
		want int
	}{
		{name: "numeric", key: "PORT", def: 0, want: 5432},
		{name: "trimmed", key: "WS", def: 1, want: 7},
		{name: "non numeric falls back", key: "NONNUM", def: 9, want: 9},
		{name: "negative falls back", key: "NEG", def: 3, want: 3},
		{name: "missing uses default", key: "MISSING", def: 11, want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pg.GetInt(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

// Test Prefix composition does not collide and composes correctly
func TestPrefixComposition(t *testing.T) {
	root := New()
	log := root.Prefix("LOG_")
	core := root.Prefix("CORE_")
	coreAPI := core.Prefix("API_") // nested, yields CORE_API_

	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("CORE_LEVEL", "debug")
	t.Setenv("CORE_API_PORT", "4000")

	if got := log.Get("LEVEL", ""); got != "info" {
		t.Fatalf("LOG_.Get LEVEL = %q, want %q", got, "info")
	}
	if got := core.Get("LEVEL", ""); got != "debug" {
		t.Fatalf("CORE_.Get LEVEL = %q, want %q", got, "debug")
	}
	if got := coreAPI.Get("PORT", ""); got != "4000" {
		t.Fatalf("CORE_API_.Get PORT = %q, want %q", got, "4000")
	}
}
