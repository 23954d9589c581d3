package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/config"
	"github.com/claes/quizweb/internal/logging"
	"github.com/claes/quizweb/internal/store"
)

// app carries the global flags and the resources built from them.
type app struct {
	configPath string
	addr       string
	dbDSN      string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "quizweb",
		Short: "News quiz game hub and archive carousel",
		Long: `quizweb serves the news quiz game hub and the per-game archive
carousel, and manages the archive of published quiz days.

Configuration is read from --config (YAML), then the QUIZWEB_* environment
variables, then the flags below.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.addr, "addr", "", "listen address (overrides config)")
	root.PersistentFlags().StringVar(&a.dbDSN, "db-dsn", "", "database DSN (overrides config)")

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newExportCmd(a),
		newDatesCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.addr != "" {
		cfg.Addr = a.addr
	}
	if a.dbDSN != "" {
		cfg.DB.DSN = a.dbDSN
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.DB.Driver, a.cfg.DB.DSN, a.logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
