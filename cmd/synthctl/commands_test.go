// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/models"
)

// writeConfig points the catalog at a DuckDB file in a temp dir and returns the
// config file path.
func writeConfig(t *testing.T) string {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv("DUCKDB_PATH", "")
	os.Unsetenv("DUCKDB_PATH")
	t.Setenv("SEED_ON_START", "")
	os.Unsetenv("SEED_ON_START")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf("database:\n  path: %s\n  threads: 2\nlogging:\n  level: warn\n", filepath.Join(dir, "catalog.duckdb"))
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCommand executes synthctl with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("synthctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func checkContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestInitDB_SeedThenSkip(t *testing.T) {
	cfgPath := writeConfig(t)

	out := mustRun(t, "init-db", "--config", cfgPath)
	checkContains(t, out, "Seeded fixture catalog")
	checkContains(t, out, "4 companies")

	out = mustRun(t, "init-db", "--config", cfgPath)
	checkContains(t, out, "seed skipped")
	checkContains(t, out, "4 companies")
}

func TestInitDB_Drop(t *testing.T) {
	cfgPath := writeConfig(t)
	mustRun(t, "init-db", "--config", cfgPath)

	out := mustRun(t, "init-db", "--config", cfgPath, "--drop", "--no-seed")
	checkContains(t, out, "Dropped existing catalog tables")
	checkContains(t, out, "0 companies")
	if strings.Contains(out, "Seeded") {
		t.Errorf("--no-seed should not seed:\n%s", out)
	}

	out = mustRun(t, "init-db", "--config", cfgPath, "--drop")
	checkContains(t, out, "Seeded fixture catalog")
	checkContains(t, out, "4 companies")
}

func TestInitDB_NoSeed(t *testing.T) {
	cfgPath := writeConfig(t)
	out := mustRun(t, "init-db", "--config", cfgPath, "--no-seed")
	checkContains(t, out, "0 companies")
	checkContains(t, out, "schema version")
}

func TestMissingGeo(t *testing.T) {
	cfgPath := writeConfig(t)

	out := mustRun(t, "missing-geo", "--config", cfgPath)
	checkContains(t, out, "All companies have coordinates.")

	mustRun(t, "init-db", "--config", cfgPath)

	out = mustRun(t, "missing-geo", "--config", cfgPath)
	checkContains(t, out, "BluePeak Chemicals")
	checkContains(t, out, "1 companies without coordinates")
	if strings.Contains(out, "Acme Pharma CDMO") {
		t.Errorf("geocoded company listed:\n%s", out)
	}

	out = mustRun(t, "missing-geo", "--config", cfgPath, "--json")
	var rows []missingGeoRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(rows) != 1 || rows[0].ID != 3 || rows[0].Name != "BluePeak Chemicals" {
		t.Errorf("rows = %+v", rows)
	}
	if !strings.HasPrefix(rows[0].Label, "Ahmedabad") {
		t.Errorf("label = %q", rows[0].Label)
	}
}

func TestWriteMissingGeo(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMissingGeoJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty JSON = %q, want []", got)
	}

	buf.Reset()
	city := "Basel"
	companies := []models.MissingGeoCompany{
		{ID: 7, Name: "Nowhere Ltd"},
		{ID: 9, Name: "Basel Fine Chem", City: &city},
	}
	if err := writeMissingGeoTable(&buf, companies); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	checkContains(t, out, noLocationLabel)
	checkContains(t, out, "Basel Fine Chem")
	checkContains(t, out, "2 companies without coordinates")
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "synthctl ") {
		t.Errorf("version output = %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := runCommand(t, "geocode"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := runCommand(t, "init-db", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("err = %v", err)
	}
}
