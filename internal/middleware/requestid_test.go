// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/synthmap/internal/logging"
)

func TestRequestID(t *testing.T) {
	longID := strings.Repeat("x", maxRequestIDLength+1)

	tests := []struct {
		name       string
		incoming   string
		wantEchoed bool
	}{
		{"generates when absent", "", false},
		{"keeps upstream id", "req-from-proxy", true},
		{"trims upstream id", "  req-spaced  ", true},
		{"rejects oversized id", longID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenLogging, seenChi, seenCorrelation string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenLogging = GetRequestID(r.Context())
				seenChi = chimiddleware.GetReqID(r.Context())
				seenCorrelation = logging.CorrelationIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" {
				t.Fatal("response is missing X-Request-ID")
			}
			if tt.wantEchoed && got != strings.TrimSpace(tt.incoming) {
				t.Errorf("X-Request-ID = %q, want %q", got, strings.TrimSpace(tt.incoming))
			}
			if !tt.wantEchoed && got == tt.incoming {
				t.Errorf("X-Request-ID should have been regenerated, got %q", got)
			}
			if seenLogging != got || seenChi != got {
				t.Errorf("context ids = (%q, %q), header = %q", seenLogging, seenChi, got)
			}
			if seenCorrelation == "" {
				t.Error("correlation id not set")
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}
