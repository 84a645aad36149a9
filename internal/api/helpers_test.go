// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/synthmap/internal/cache"
	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/models"
)

var errStoreDown = errors.New("duckdb: connection lost")

// fakeStore records the arguments of the last call and returns canned results.
type fakeStore struct {
	mu sync.Mutex

	pingErr error
	err     error
	calls   int

	lastLevel  models.LocationLevel
	lastBy     models.ProductGrouping
	lastFamily models.LookupFamily
	lastFilter database.CompanyFilter
	lastLimit  int
}

func (s *fakeStore) record(f database.CompanyFilter, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastFilter = f
	s.lastLimit = limit
	return s.err
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *fakeStore) GetLocationStats(_ context.Context, level models.LocationLevel, f database.CompanyFilter, limit int) (models.LocationStatsResult, error) {
	s.mu.Lock()
	s.lastLevel = level
	s.mu.Unlock()
	if err := s.record(f, limit); err != nil {
		return models.LocationStatsResult{}, err
	}
	if level == models.LocationLevelPoint {
		return models.FeatureResult(nil), nil
	}
	return models.GroupResult([]models.LocationGroup{{Key: "India", Count: 3}}), nil
}

func (s *fakeStore) GetChemistryStats(_ context.Context, f database.CompanyFilter, limit int) ([]models.ChemistryStat, error) {
	if err := s.record(f, limit); err != nil {
		return nil, err
	}
	return []models.ChemistryStat{{Chemistry: "HYDROGENATION", CompanyCount: 2}}, nil
}

func (s *fakeStore) GetProductStats(_ context.Context, by models.ProductGrouping, f database.CompanyFilter, limit int) (models.ProductStatsResult, error) {
	s.mu.Lock()
	s.lastBy = by
	s.mu.Unlock()
	if err := s.record(f, limit); err != nil {
		return models.ProductStatsResult{}, err
	}
	if by == models.ProductGroupingGlobal {
		return models.ProductStatsResult{Kind: models.ProductStatsGlobal, Global: []models.ProductStatGlobal{{ProductType: "API", Count: 6}}}, nil
	}
	return models.ProductStatsResult{Kind: models.ProductStatsByCompany, ByCompany: []models.ProductStatByCompany{{CompanyID: 2, CompanyName: "Nova Intermediates", ProductCount: 3}}}, nil
}

func (s *fakeStore) ListLookups(_ context.Context, family models.LookupFamily) ([]models.LookupEntry, error) {
	s.mu.Lock()
	s.lastFamily = family
	s.mu.Unlock()
	if err := s.record(database.CompanyFilter{}, 0); err != nil {
		return nil, err
	}
	return []models.LookupEntry{{ID: 1, Code: "GLP", Name: "Good Laboratory Practice"}}, nil
}

// testConfig returns a config with rate limiting off and a quick breaker.
func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Breaker: config.BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 2,
		},
	}
}

// newTestHandler builds a handler over store with an in-memory cache.
func newTestHandler(t *testing.T, store CatalogStore) *Handler {
	t.Helper()
	c := cache.New(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return NewHandler(store, c, testConfig())
}

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func checkStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func checkErrorCode(t *testing.T, env envelope, want string) {
	t.Helper()
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got status=%q error=%v", env.Status, env.Error)
	}
	if env.Error.Code != want {
		t.Errorf("error code = %q, want %q (%s)", env.Error.Code, want, env.Error.Message)
	}
}

func checkData(t *testing.T, env envelope, want string) {
	t.Helper()
	if got := string(env.Data); got != want {
		t.Errorf("data = %s\nwant   %s", got, want)
	}
}
