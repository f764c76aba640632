package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readquest/backend/models"
	"readquest/backend/routes"
	"readquest/backend/scheduler"
	"readquest/backend/utils"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := models.AutoMigrate(e.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if e.cfg.SeedOnStart {
			if _, err := runSeed(cmd.Context(), e); err != nil {
				return err
			}
		}

		store, err := utils.NewSessionStore(e.cfg, e.log)
		if err != nil {
			return err
		}

		var sched *scheduler.Scheduler
		if e.cfg.ChallengeSweepSpec != "off" {
			loc, err := e.cfg.Location()
			if err != nil {
				return err
			}
			sched, err = scheduler.New(e.cfg.ChallengeSweepSpec, loc, e.svc.Challenges, e.log)
			if err != nil {
				return err
			}
			sched.Start()
		}

		app := routes.NewApp(e.svc, e.cfg, store, e.log)

		errCh := make(chan error, 1)
		go func() {
			e.log.Info("server listening", "port", e.cfg.ServerPort)
			errCh <- app.Listen(":" + e.cfg.ServerPort)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			e.log.Info("shutting down", "signal", sig.String())
		case err := <-errCh:
			if err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if sched != nil {
			sched.Stop(ctx)
		}
		return app.ShutdownWithContext(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
