// Package cmd is the readquest command line: the API server plus the
// maintenance commands that share its configuration.
package cmd

import (
	"fmt"
	"os"

	"readquest/backend/config"
	"readquest/backend/services"
	"readquest/backend/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "readquest",
	Short:         "Gamified reading companion API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env is what every command needs: configuration, a logger, the database and
// the services on top of it.
type env struct {
	cfg *config.Config
	log *utils.Logger
	db  *gorm.DB
	svc *services.Services
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := utils.InitLogger(utils.LoggerConfig{Mode: cfg.LogMode})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := utils.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	opts, err := services.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db, svc: services.New(db, opts, log)}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}
