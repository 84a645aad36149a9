// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/middleware"
)

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandler(t, &fakeStore{}), testConfig()).SetupChi()

	tests := []struct {
		target string
		want   int
	}{
		{"/health", http.StatusOK},
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/api/stats/locations", http.StatusOK},
		{"/api/stats/chemistries", http.StatusOK},
		{"/api/stats/products?by=global", http.StatusOK},
		{"/api/lookups/services", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/stats/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := doRequest(t, router, tt.target)
		if w.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.target, w.Code, tt.want)
		}
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandler(t, &fakeStore{}), testConfig()).SetupChi()

	w := doRequest(t, router, "/nope")
	checkStatus(t, w, http.StatusNotFound)
	checkErrorCode(t, decodeEnvelope(t, w), ErrCodeNotFound)

	post := httptest.NewRecorder()
	router.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/api/stats/locations", nil))
	checkStatus(t, post, http.StatusMethodNotAllowed)
	checkErrorCode(t, decodeEnvelope(t, post), ErrCodeMethodNotAllowed)
}

func TestRouter_Headers(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandler(t, &fakeStore{}), testConfig()).SetupChi()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/chemistries", nil)
	req.Header.Set("Origin", "https://maps.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	checkStatus(t, w, http.StatusOK)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing X-Request-ID")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must only be sent over HTTPS")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://maps.example"}
	router := NewRouter(newTestHandler(t, &fakeStore{}), cfg).SetupChi()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://maps.example", "https://maps.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/stats/locations", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	}
	router := NewRouter(newTestHandler(t, &fakeStore{}), cfg).SetupChi()

	for i := 0; i < 2; i++ {
		checkStatus(t, doRequest(t, router, "/api/stats/chemistries"), http.StatusOK)
	}
	w := doRequest(t, router, "/api/stats/chemistries")
	checkStatus(t, w, http.StatusTooManyRequests)
	checkErrorCode(t, decodeEnvelope(t, w), ErrCodeTooManyRequests)

	// Health has its own, larger budget.
	checkStatus(t, doRequest(t, router, "/health/live"), http.StatusOK)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandler(t, &fakeStore{}), testConfig()).SetupChi()
	doRequest(t, router, "/api/stats/locations")

	w := doRequest(t, router, "/metrics")
	checkStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `synthmap_api_requests_total{endpoint="/api/stats/locations"`) {
		t.Error("request counter for the stats route not exported")
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		CORSOrigins:       []string{"https://a.example"},
		RateLimitReqs:     10,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled)
	}

	defaults := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{})
	if defaults.CORSAllowedOrigins[0] != "*" || defaults.RateLimitRequests != 100 {
		t.Errorf("zero security config should keep defaults: %+v", defaults)
	}
}
