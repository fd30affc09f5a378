//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"

	docs "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON without patching swagger
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON parses the generated document, normalizes it and applies mutators
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := docReader()

		var spec map[string]any
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		// OAS3 base url lives in servers, not BasePath
		ensureServers(spec, "/api/v1")

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorResponseDefinition(spec)
		ensureTags(spec)
		addDefaultResponses(spec)

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers makes sure the spec is OAS3 and has a servers array
// swagger http ui can't support 3.1 at the moment, so downconvert if needed
func ensureServers(spec map[string]any, url string) {
	// if it's swagger 2, lift to oas3
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}

	// if it's already oas3, downsample 3.1 -> 3.0.3
	if v, ok := spec["openapi"].(string); ok {
		if strings.HasPrefix(v, "3.1") {
			spec["openapi"] = "3.0.3"
		}
	} else {
		// no version set at all: pick a sane default
		spec["openapi"] = "3.0.3"
	}

	// ensure servers
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{
			map[string]any{"url": url},
		}
	}
}

// ensureTags pins the tag list so the UI groups operations by module
// generated tags win; this only fills in when swag emitted none
func ensureTags(spec map[string]any) {
	if _, ok := spec["tags"]; ok {
		return
	}
	spec["tags"] = []any{
		map[string]any{"name": "complaints", "description": "Complaint lifecycle and analytics"},
		map[string]any{"name": "directory", "description": "Residents and service categories"},
		map[string]any{"name": "reports", "description": "Rollups and summary views"},
		map[string]any{"name": "meta", "description": "Health, version and uptime"},
	}
}

// ensureErrorResponseDefinition creates a simple error envelope model if missing
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// forEachOperation visits every operation node under paths
func forEachOperation(spec map[string]any, fn func(op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			if op, ok := opAny.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// envelopeExample builds a response body in the runtime error envelope shape
func envelopeExample(status int, statusText string, code int, msg string) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      statusText,
					"code":        code,
					"error":       msg,
					"request_id":  "csd-api/jQx4T9bzLm-000042",
				},
			},
		},
	}
}

// addDefaultResponses injects the failure modes every endpoint shares
// 400 and 500 come out of the JSON envelope, 503 is the throttle's plain reply
func addDefaultResponses(spec map[string]any) {
	bad := envelopeExample(400, "Bad Request", 8, "dimension must be one of [resident category ward month]")
	bad["description"] = "Bad Request"

	boom := envelopeExample(500, "Internal Server Error", 1, "panic recovered")
	boom["description"] = "Internal Server Error"

	shed := map[string]any{
		"description": "Service Unavailable, too many in flight requests",
	}

	forEachOperation(spec, func(op map[string]any) {
		resps, ok := op["responses"].(map[string]any)
		if !ok {
			resps = map[string]any{}
			op["responses"] = resps
		}
		if _, exists := resps["400"]; !exists {
			resps["400"] = bad
		}
		if _, exists := resps["500"]; !exists {
			resps["500"] = boom
		}
		if _, exists := resps["503"]; !exists {
			resps["503"] = shed
		}
	})
}
