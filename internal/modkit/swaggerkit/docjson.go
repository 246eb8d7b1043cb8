//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"deyimci/internal/platform/config"

	docs "deyimci/internal/services/api/docs"
)

// docReader is a seam so tests can inject invalid JSON without patching swagger
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON parses the generated document and normalizes it before serving
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
			http.Error(w, "swagger document parse error", http.StatusInternalServerError)
			return
		}

		normalizeOAS3(doc, "/api/v1")
		if suffix := config.New().Prefix("API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			appendTitle(doc, suffix)
		}
		injectErrorEnvelope(doc)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// normalizeOAS3 pins the document to OAS 3.0.3 and guarantees a servers
// array. The bundled swagger ui cannot render 2.0 or 3.1 documents
func normalizeOAS3(doc map[string]any, serverURL string) {
	if _, isV2 := doc["swagger"]; isV2 {
		delete(doc, "swagger")
		doc["openapi"] = "3.0.3"
	}
	switch v, _ := doc["openapi"].(string); {
	case v == "", strings.HasPrefix(v, "3.1"):
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": serverURL}}
	}
}

func appendTitle(doc map[string]any, suffix string) {
	info, ok := doc["info"].(map[string]any)
	if !ok {
		return
	}
	if title, ok := info["title"].(string); ok {
		info["title"] = title + " " + suffix
	}
}

// injectErrorEnvelope declares the error envelope schema and attaches a
// default 500 response to every operation that lacks one
func injectErrorEnvelope(doc map[string]any) {
	schemas := childMap(childMap(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
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

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}
	fallback := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
	for _, pathItem := range paths {
		ops, ok := pathItem.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := childMap(op, "responses")
			if _, exists := responses["500"]; !exists {
				responses["500"] = fallback
			}
		}
	}
}

// childMap returns parent[key] as a map, creating it when absent
func childMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}
