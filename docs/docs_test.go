// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package docs

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var parsed struct {
		Swagger string                     `json:"swagger"`
		Info    struct{ Title string }     `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}

	if parsed.Swagger != "2.0" {
		t.Errorf("swagger = %q, want 2.0", parsed.Swagger)
	}
	if parsed.Info.Title != "Synthmap API" {
		t.Errorf("title = %q", parsed.Info.Title)
	}
	for _, path := range []string{
		"/api/stats/locations",
		"/api/stats/chemistries",
		"/api/stats/products",
		"/api/lookups/{family}",
		"/health",
		"/health/live",
		"/health/ready",
	} {
		if _, ok := parsed.Paths[path]; !ok {
			t.Errorf("missing path %s", path)
		}
	}
}
