package cmd

import (
	"context"
	"fmt"

	"github.com/shihabsss1/portfolio/app"
	"github.com/shihabsss1/portfolio/models"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}

	var name, email, password, role string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.NewDB()
			if err != nil {
				return err
			}

			app.SetupDefaultData(db)

			cache, err := app.NewCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			accounts, err := app.NewAccounts(db, cache)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), storeCommandTimeout)
			defer cancel()

			u, err := accounts.CreateUser(ctx, name, email, password, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s) with role %s\n", u.Email, u.ID, role)

			return nil
		},
	}

	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "login email address")
	create.Flags().StringVar(&password, "password", "", "login password")
	create.Flags().StringVar(&role, "role", models.RoleAdmin, "role name (admin or editor)")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)

	return cmd
}
