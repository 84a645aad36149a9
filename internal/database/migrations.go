// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/synthmap/internal/logging"
)

// Migration is one versioned schema change. Migrations are append-only: never
// edit or remove one that has shipped.
type Migration struct {
	Version     int
	Name        string
	Description string
	Statements  []string
	AppliedAt   time.Time // populated when read back from schema_migrations
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
)`

// catalogTables lists every catalog table, children before parents, for ResetCatalog.
var catalogTables = []string{
	"company_products",
	"company_services",
	"company_analytics",
	"company_equipment",
	"company_processes",
	"company_certifications",
	"service_types",
	"analytics_types",
	"equipment_types",
	"process_types",
	"certification_types",
	"companies",
}

var catalogSequences = []string{
	"companies_id_seq",
	"certification_types_id_seq",
	"process_types_id_seq",
	"equipment_types_id_seq",
	"analytics_types_id_seq",
	"service_types_id_seq",
	"company_products_id_seq",
}

func lookupTableDDL(table string, withComment bool) string {
	comment := ""
	if withComment {
		comment = ",\n\tcomment TEXT"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
	id INTEGER PRIMARY KEY DEFAULT nextval('%[1]s_id_seq'),
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL%[2]s
)`, table, comment)
}

func migrations() []Migration {
	v1 := []string{}
	for _, seq := range catalogSequences {
		v1 = append(v1, fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", seq))
	}
	v1 = append(v1,
		`CREATE TABLE IF NOT EXISTS companies (
	id INTEGER PRIMARY KEY DEFAULT nextval('companies_id_seq'),
	name TEXT NOT NULL UNIQUE,
	location TEXT,
	lat DOUBLE,
	lon DOUBLE,
	state TEXT,
	city TEXT,
	country TEXT,
	company_type TEXT,
	turnover DOUBLE,
	no_of_facilities INTEGER,
	manpower INTEGER,
	contract_manpower INTEGER,
	phd_count INTEGER,
	msc_count INTEGER,
	chemical_engineers INTEGER,
	no_of_products INTEGER,
	under_dev_products INTEGER,
	fei TEXT,
	duns TEXT,
	customer_audit BOOLEAN NOT NULL DEFAULT FALSE,
	ssr TEXT,
	glr TEXT,
	ssr_capacity DOUBLE,
	glr_capacity DOUBLE,
	created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
	updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
	CHECK ((lat IS NULL) = (lon IS NULL))
)`,
		lookupTableDDL("certification_types", false),
		lookupTableDDL("process_types", false),
		lookupTableDDL("equipment_types", true),
		lookupTableDDL("analytics_types", false),
		lookupTableDDL("service_types", false),
		`CREATE TABLE IF NOT EXISTS company_certifications (
	company_id INTEGER NOT NULL REFERENCES companies(id),
	certification_type_id INTEGER NOT NULL REFERENCES certification_types(id),
	has_cert BOOLEAN NOT NULL DEFAULT TRUE,
	cert_number TEXT,
	cert_issued_by TEXT,
	cert_valid_from DATE,
	cert_valid_to DATE,
	notes TEXT,
	PRIMARY KEY (company_id, certification_type_id)
)`,
		`CREATE TABLE IF NOT EXISTS company_processes (
	company_id INTEGER NOT NULL REFERENCES companies(id),
	process_type_id INTEGER NOT NULL REFERENCES process_types(id),
	available BOOLEAN NOT NULL DEFAULT TRUE,
	capability_level TEXT,
	max_scale_kg DOUBLE,
	notes TEXT,
	PRIMARY KEY (company_id, process_type_id)
)`,
		`CREATE TABLE IF NOT EXISTS company_equipment (
	company_id INTEGER NOT NULL REFERENCES companies(id),
	equipment_type_id INTEGER NOT NULL REFERENCES equipment_types(id),
	count INTEGER NOT NULL DEFAULT 0,
	capacity DOUBLE,
	notes TEXT,
	PRIMARY KEY (company_id, equipment_type_id)
)`,
		`CREATE TABLE IF NOT EXISTS company_analytics (
	company_id INTEGER NOT NULL REFERENCES companies(id),
	analytics_type_id INTEGER NOT NULL REFERENCES analytics_types(id),
	available BOOLEAN NOT NULL DEFAULT TRUE,
	instrument_count INTEGER NOT NULL DEFAULT 0,
	model_info TEXT,
	notes TEXT,
	PRIMARY KEY (company_id, analytics_type_id)
)`,
		`CREATE TABLE IF NOT EXISTS company_services (
	company_id INTEGER NOT NULL REFERENCES companies(id),
	service_type_id INTEGER NOT NULL REFERENCES service_types(id),
	offered BOOLEAN NOT NULL DEFAULT TRUE,
	details TEXT,
	PRIMARY KEY (company_id, service_type_id)
)`,
		`CREATE TABLE IF NOT EXISTS company_products (
	id INTEGER PRIMARY KEY DEFAULT nextval('company_products_id_seq'),
	company_id INTEGER NOT NULL REFERENCES companies(id),
	product_name TEXT NOT NULL,
	product_type TEXT,
	stage TEXT,
	price_per_unit DOUBLE,
	units TEXT,
	notes TEXT,
	UNIQUE (company_id, product_name)
)`,
	)

	return []Migration{
		{
			Version:     1,
			Name:        "catalog_tables",
			Description: "Companies, lookup families and company junction tables",
			Statements:  v1,
		},
		{
			Version:     2,
			Name:        "catalog_indexes",
			Description: "Indexes for location facets and junction lookups",
			Statements: []string{
				"CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country)",
				"CREATE INDEX IF NOT EXISTS idx_companies_state ON companies(state)",
				"CREATE INDEX IF NOT EXISTS idx_companies_city ON companies(city)",
				"CREATE INDEX IF NOT EXISTS idx_company_products_company ON company_products(company_id)",
				"CREATE INDEX IF NOT EXISTS idx_company_processes_type ON company_processes(process_type_id)",
				"CREATE INDEX IF NOT EXISTS idx_company_certifications_type ON company_certifications(certification_type_id)",
			},
		},
	}
}

// schemaContext bounds schema work.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations applies, in version order, every migration not yet
// recorded. Each migration runs in its own transaction together with its record.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations() {
		if _, exists := applied[m.Version]; exists {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration v%d: %w", m.Version, err)
	}
	defer rollbackQuietly(tx)

	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
		m.Version, m.Name, m.Description); err != nil {
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
	}
	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// GetMigrationHistory returns all applied migrations in order
func (db *DB) GetMigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	history := make([]Migration, 0, len(applied))
	for _, m := range migrations() {
		if a, ok := applied[m.Version]; ok {
			history = append(history, a)
		}
	}
	return history, nil
}

// ResetCatalog drops every catalog table and sequence, forgets the applied
// migrations and migrates again. All catalog data is lost.
func (db *DB) ResetCatalog(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, table := range catalogTables {
		if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	for _, seq := range catalogSequences {
		if _, err := db.conn.ExecContext(ctx, "DROP SEQUENCE IF EXISTS "+seq); err != nil {
			return fmt.Errorf("failed to drop sequence %s: %w", seq, err)
		}
	}
	if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS schema_migrations"); err != nil {
		return fmt.Errorf("failed to drop schema_migrations: %w", err)
	}

	logging.Warn().Str("path", db.cfg.Path).Msg("Catalog dropped")
	return db.runVersionedMigrations()
}
