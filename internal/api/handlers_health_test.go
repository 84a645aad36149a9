// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      CatalogStore
		wantStatus string
		wantDB     bool
	}{
		{"database up", &fakeStore{}, "ok", true},
		{"ping fails", &fakeStore{pingErr: errStoreDown}, "degraded", false},
		{"no store", nil, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHandler(tt.store, nil, nil)

			w := doRequest(t, http.HandlerFunc(h.Health), "/health")
			checkStatus(t, w, http.StatusOK)

			var health HealthStatus
			if err := json.Unmarshal(decodeEnvelope(t, w).Data, &health); err != nil {
				t.Fatalf("decode health: %v", err)
			}
			if health.Status != tt.wantStatus || health.DatabaseConnected != tt.wantDB {
				t.Errorf("health = %+v, want status %q database %v", health, tt.wantStatus, tt.wantDB)
			}
			if health.Uptime < 0 {
				t.Errorf("uptime = %v", health.Uptime)
			}
		})
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeStore{pingErr: errStoreDown}, nil, nil)
	w := doRequest(t, http.HandlerFunc(h.HealthLive), "/health/live")
	checkStatus(t, w, http.StatusOK)
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store CatalogStore
		want  int
	}{
		{"ready", &fakeStore{}, http.StatusOK},
		{"ping fails", &fakeStore{pingErr: errStoreDown}, http.StatusServiceUnavailable},
		{"no store", nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHandler(tt.store, nil, nil)
			w := doRequest(t, http.HandlerFunc(h.HealthReady), "/health/ready")
			checkStatus(t, w, tt.want)
			if tt.want != http.StatusOK {
				checkErrorCode(t, decodeEnvelope(t, w), ErrCodeServiceUnavailable)
			}
		})
	}
}
