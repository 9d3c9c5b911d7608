package cmd

import (
	"fmt"

	"github.com/shihabsss1/portfolio/jwt"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage access token keys",
	}

	var dir string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate new signing and encryption keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := jwt.GenerateKeys()
			if err != nil {
				return err
			}

			if err := keys.Save(dir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved keys to %s\n", dir)

			return nil
		},
	}

	generate.Flags().StringVar(&dir, "dir", jwt.DefaultKeyPath, "output directory")
	cmd.AddCommand(generate)

	return cmd
}
