// Package cmd implements the portfolio command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shihabsss1/portfolio/app"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// StoreOpener opens the content store used by the content commands.
type StoreOpener func(ctx context.Context) (*store.Store, error)

// OpenStore opens the configured content backend. The database is only
// opened for the Postgres backend.
func OpenStore(ctx context.Context) (*store.Store, error) {
	var db *gorm.DB

	if utils.ContentBackend() == utils.BackendPostgres {
		var err error
		if db, err = app.NewDB(); err != nil {
			return nil, err
		}
	}

	return app.NewStore(ctx, db)
}

func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Could not load .env file: %w", err)
	}

	time.Local = utils.DefaultLocation()

	return nil
}

func NewRootCmd(open StoreOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site content backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnv()
		},
	}

	root.AddCommand(
		newServeCmd(),
		newWorkerCmd(),
		newUserCmd(),
		newKeysCmd(),
		newContentCmd(open),
	)

	return root
}

func Execute() {
	if err := NewRootCmd(OpenStore).Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func contextWithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), storeCommandTimeout)
}
