package cmd

import (
	"context"
	"fmt"

	"readquest/backend/models"
	"readquest/backend/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample chapters, quizzes, badges and today's challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := models.AutoMigrate(e.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		res, err := runSeed(cmd.Context(), e)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chapters=%d quizzes=%d questions=%d badges=%d challenge=%t admin=%t\n",
			res.Chapters, res.Quizzes, res.Questions, res.Badges, res.Challenge, res.Admin)
		return nil
	},
}

func runSeed(ctx context.Context, e *env) (*seed.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loc, err := e.cfg.Location()
	if err != nil {
		return nil, err
	}
	res, err := seed.Run(ctx, e.db, e.svc, seed.Options{
		AdminUsername: e.cfg.SeedAdminUsername,
		AdminPassword: e.cfg.SeedAdminPassword,
		Location:      loc,
	}, e.log)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
