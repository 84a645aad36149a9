// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/synthmap/internal/config"
	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/logging"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "synthctl",
		Short: "Maintain the Synthmap catalog database",
		Long: `synthctl creates, resets and inspects the DuckDB catalog behind the
Synthmap statistics API. It reads the same configuration as the server:
an optional YAML file followed by environment variables such as DUCKDB_PATH.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: CONFIG_PATH, then ./config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(
		newInitDBCommand(opts),
		newMissingGeoCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// loadConfig resolves configuration and initializes logging to the command's stderr.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	if o.logLevel != "" {
		logCfg.Level = o.logLevel
	}
	logCfg.Format = "console"
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	return cfg, nil
}

// openCatalog opens the configured database. Seeding is left to the caller.
func (o *rootOptions) openCatalog(cmd *cobra.Command) (*database.DB, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbCfg := cfg.Database
	dbCfg.SeedOnStart = false

	db, err := database.New(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dbCfg.Path, err)
	}
	return db, nil
}

func closeCatalog(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing catalog")
	}
}
