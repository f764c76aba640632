package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or reset its password with --reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		reset, _ := cmd.Flags().GetBool("reset")

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		admin, err := e.svc.Admins.CreateAdmin(context.Background(), username, password, reset)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q ready (id %d)\n", admin.Username, admin.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().String("username", "", "admin username")
	createAdminCmd.Flags().String("password", "", "admin password")
	createAdminCmd.Flags().Bool("reset", false, "overwrite the password of an existing admin")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}
