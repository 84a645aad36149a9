// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/synthmap/internal/logging"
)

type seedLookup struct {
	code, name, comment string
}

type seedCompany struct {
	name, location, city, state, country string
	lat, lon                             *float64
	companyType                          string
	turnover                             float64
	facilities, manpower                 int
	phd, msc                             *int
	chemicalEngineers                    int
	products, underDev                   int
	customerAudit                        bool
	ssr, glr                             *string
	ssrCapacity, glrCapacity             *float64
}

type seedProduct struct {
	name, productType, stage string
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func strp(v string) *string  { return &v }

var (
	seedCertifications = []seedLookup{
		{"USFDA", "US FDA", ""},
		{"EDQM", "EDQM", ""},
		{"WHO_GMP", "WHO GMP", ""},
		{"ISO9001", "ISO 9001", ""},
		{"GLP", "GLP", ""},
	}
	seedProcesses = []seedLookup{
		{"HYDROGENATION", "Hydrogenation", ""},
		{"NITRATION", "Nitration", ""},
		{"ACYLATION", "Acylation", ""},
		{"OXIDATION", "Oxidation", ""},
		{"REDUCTION", "Reduction", ""},
	}
	seedEquipment = []seedLookup{
		{"SPRAY_DRYER", "Spray dryer", "Drying equipment"},
		{"FBD", "Fluid Bed Dryer (FBD)", "Drying equipment"},
		{"MICRONIZER", "Micronizer", "Particle size reduction"},
		{"DISTILLATION_COLUMN", "Distillation columns", "Solvent recovery / distillation"},
		{"KILO_LAB", "Kilo lab", "Scale-up lab"},
	}
	seedAnalytics = []seedLookup{
		{"HPLC", "HPLC", ""},
		{"GC", "GC", ""},
		{"NMR", "NMR", ""},
		{"LCMS", "LCMS", ""},
		{"STABILITY_CHAMBER", "Stability chamber", ""},
	}
	seedServices = []seedLookup{
		{"METHOD_DEVELOPMENT", "Method Development", ""},
		{"IMPURITY_SYNTHESIS", "Impurity Synthesis", ""},
		{"CHARACTERIZATION", "Characterization Studies", ""},
		{"STABILITY_STUDIES", "Stability Studies", ""},
		{"PATENT_CHECK", "Patent Check", ""},
	}

	seedCompanies = []seedCompany{
		{
			name: "Acme Pharma CDMO", location: "Bangalore, Karnataka, India",
			city: "Bangalore", state: "Karnataka", country: "India",
			lat: f64(12.9716), lon: f64(77.5946),
			companyType: "CDMO", turnover: 12500000, facilities: 2, manpower: 420,
			phd: intp(18), msc: intp(90), chemicalEngineers: 35, products: 22, underDev: 8,
			customerAudit: true,
			ssr:           strp("SSR-ACME-01"), glr: strp("GLR-ACME-02"),
			ssrCapacity: f64(1200), glrCapacity: f64(800),
		},
		{
			name: "Nova Intermediates", location: "Hyderabad, Telangana, India",
			city: "Hyderabad", state: "Telangana", country: "India",
			lat: f64(17.3850), lon: f64(78.4867),
			companyType: "API manufacturer", turnover: 7200000, facilities: 1, manpower: 260,
			phd: intp(6), msc: intp(45), chemicalEngineers: 22, products: 14, underDev: 5,
		},
		{
			name: "BluePeak Chemicals", location: "Ahmedabad, Gujarat, India",
			city: "Ahmedabad", state: "Gujarat", country: "India",
			companyType: "Contract Manufacturer", turnover: 3100000, facilities: 1, manpower: 140,
			chemicalEngineers: 12, products: 9, underDev: 2,
		},
		{
			name: "EuroSynth Labs", location: "Basel, Switzerland",
			city: "Basel", country: "Switzerland",
			lat: f64(47.5596), lon: f64(7.5886),
			companyType: "CRO", turnover: 5400000, facilities: 1, manpower: 180,
			phd: intp(24), msc: intp(60), chemicalEngineers: 10, products: 3, underDev: 12,
			customerAudit: true,
		},
	}

	seedProductCatalog = []seedProduct{
		{"API-A", "API", "commercial"},
		{"INT-B", "Intermediate", "development"},
		{"API-C", "API", "commercial"},
	}
)

// SeedCatalog inserts the deterministic four-company fixture in one transaction.
// It does nothing and returns false when the catalog already holds companies.
func (db *DB) SeedCatalog(ctx context.Context) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	n, err := db.CountCompanies(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		logging.Debug().Int("companies", n).Msg("Catalog already populated, skipping seed")
		return false, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	s := seeder{ctx: ctx, tx: tx, today: time.Now().UTC()}
	if err := s.run(); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

type seeder struct {
	ctx   context.Context
	tx    *sql.Tx
	today time.Time
}

func (s seeder) run() error {
	certs, err := s.lookups("certification_types", seedCertifications, false)
	if err != nil {
		return err
	}
	procs, err := s.lookups("process_types", seedProcesses, false)
	if err != nil {
		return err
	}
	equip, err := s.lookups("equipment_types", seedEquipment, true)
	if err != nil {
		return err
	}
	analytics, err := s.lookups("analytics_types", seedAnalytics, false)
	if err != nil {
		return err
	}
	services, err := s.lookups("service_types", seedServices, false)
	if err != nil {
		return err
	}

	for i, c := range seedCompanies {
		id, err := s.company(c)
		if err != nil {
			return err
		}

		even := i%2 == 0
		certCodes := []string{"WHO_GMP", "GLP"}
		procCodes := []string{"NITRATION", "ACYLATION"}
		capability, maxScale := "pilot", 500.0
		if even {
			certCodes = []string{"ISO9001", "USFDA"}
			procCodes = []string{"HYDROGENATION", "OXIDATION", "REDUCTION"}
			capability, maxScale = "commercial", 5000.0
		}

		validFrom := s.today.AddDate(0, 0, -365).Format(time.DateOnly)
		validTo := s.today.AddDate(0, 0, 365).Format(time.DateOnly)
		for _, code := range certCodes {
			if err := s.exec(`INSERT INTO company_certifications
	(company_id, certification_type_id, has_cert, cert_number, cert_issued_by, cert_valid_from, cert_valid_to, notes)
VALUES (?, ?, TRUE, ?, 'Dummy Authority', CAST(? AS DATE), CAST(? AS DATE), 'Dummy seeded certification')`,
				id, certs[code], fmt.Sprintf("%s-%03d", code, id), validFrom, validTo); err != nil {
				return err
			}
		}
		for _, code := range procCodes {
			if err := s.exec(`INSERT INTO company_processes
	(company_id, process_type_id, available, capability_level, max_scale_kg, notes)
VALUES (?, ?, TRUE, ?, ?, 'Dummy seeded process capability')`,
				id, procs[code], capability, maxScale); err != nil {
				return err
			}
		}
		for _, code := range []string{"KILO_LAB", "DISTILLATION_COLUMN", "FBD"} {
			if err := s.exec(`INSERT INTO company_equipment (company_id, equipment_type_id, count, capacity, notes)
VALUES (?, ?, ?, ?, 'Dummy seeded equipment')`,
				id, equip[code], 1+i%3, 250.0+float64(i)*50.0); err != nil {
				return err
			}
		}
		for _, code := range []string{"HPLC", "GC", "LCMS"} {
			if err := s.exec(`INSERT INTO company_analytics
	(company_id, analytics_type_id, available, instrument_count, model_info, notes)
VALUES (?, ?, TRUE, ?, 'Dummy Model', 'Dummy seeded analytics capability')`,
				id, analytics[code], 1+i%2); err != nil {
				return err
			}
		}
		for _, code := range []string{"METHOD_DEVELOPMENT", "IMPURITY_SYNTHESIS", "STABILITY_STUDIES"} {
			if err := s.exec(`INSERT INTO company_services (company_id, service_type_id, offered, details)
VALUES (?, ?, TRUE, 'Dummy seeded service offering')`,
				id, services[code]); err != nil {
				return err
			}
		}
		for _, p := range seedProductCatalog[:2+i%2] {
			if err := s.exec(`INSERT INTO company_products
	(company_id, product_name, product_type, stage, price_per_unit, units, notes)
VALUES (?, ?, ?, ?, ?, 'kg', 'Dummy seeded product')`,
				id, fmt.Sprintf("%s-%d", p.name, id), p.productType, p.stage, 125.0+float64(i)*10.0); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookups inserts one lookup family and returns code -> id.
func (s seeder) lookups(table string, rows []seedLookup, withComment bool) (map[string]int64, error) {
	ids := make(map[string]int64, len(rows))
	for _, r := range rows {
		var (
			id  int64
			err error
		)
		if withComment {
			err = s.tx.QueryRowContext(s.ctx,
				"INSERT INTO "+table+" (code, name, comment) VALUES (?, ?, ?) RETURNING id",
				r.code, r.name, r.comment).Scan(&id)
		} else {
			err = s.tx.QueryRowContext(s.ctx,
				"INSERT INTO "+table+" (code, name) VALUES (?, ?) RETURNING id",
				r.code, r.name).Scan(&id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s %s: %w", table, r.code, err)
		}
		ids[r.code] = id
	}
	return ids, nil
}

func (s seeder) company(c seedCompany) (int64, error) {
	var state *string
	if c.state != "" {
		state = &c.state
	}
	var id int64
	err := s.tx.QueryRowContext(s.ctx, `INSERT INTO companies
	(name, location, city, state, country, lat, lon, company_type, turnover, no_of_facilities,
	 manpower, phd_count, msc_count, chemical_engineers, no_of_products, under_dev_products,
	 customer_audit, ssr, glr, ssr_capacity, glr_capacity)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`,
		c.name, c.location, c.city, state, c.country, c.lat, c.lon, c.companyType, c.turnover, c.facilities,
		c.manpower, c.phd, c.msc, c.chemicalEngineers, c.products, c.underDev,
		c.customerAudit, c.ssr, c.glr, c.ssrCapacity, c.glrCapacity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to seed company %s: %w", c.name, err)
	}
	return id, nil
}

func (s seeder) exec(query string, args ...interface{}) error {
	if _, err := s.tx.ExecContext(s.ctx, query, args...); err != nil {
		return fmt.Errorf("seed insert failed: %w", err)
	}
	return nil
}
