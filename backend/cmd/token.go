package cmd

import (
	"fmt"

	"readquest/backend/config"
	"readquest/backend/utils"

	"github.com/spf13/cobra"
)

// tokenCmd mints a reader token signed with JWT_SECRET, for local testing
// without the identity provider.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a reader bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		id := utils.Identity{}
		id.UserID, _ = cmd.Flags().GetString("user")
		id.Email, _ = cmd.Flags().GetString("email")
		id.FirstName, _ = cmd.Flags().GetString("first-name")
		id.LastName, _ = cmd.Flags().GetString("last-name")

		token, err := utils.GenerateJWTToken(id, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "user id (token subject)")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().String("first-name", "", "first_name claim")
	tokenCmd.Flags().String("last-name", "", "last_name claim")
	_ = tokenCmd.MarkFlagRequired("user")
}
