package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shihabsss1/portfolio/app"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
	"github.com/shihabsss1/portfolio/routes"
	"github.com/shihabsss1/portfolio/views"
	"github.com/spf13/cobra"
)

const shutdownTimeout time.Duration = 10 * time.Second

func newServeCmd() *cobra.Command {
	var withWorker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), withWorker)
		},
	}

	cmd.Flags().BoolVar(&withWorker, "worker", true, "also process background tasks in this process")

	return cmd
}

func runServe(ctx context.Context, withWorker bool) error {
	flush := app.SetupSentry()
	defer flush()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	renderer, err := views.New()
	if err != nil {
		return err
	}

	h := &controllers.Handler{
		Content:  c.Store,
		Accounts: c.Accounts,
		Queue:    c.Queue,
		Views:    renderer,
	}

	if c.Media != nil {
		h.Media = c.Media

		if j := c.Janitor(); j != nil {
			h.Janitor = j
		}
	}

	if withWorker {
		w, err := newWorker(c.Store, c.Media)
		if err != nil {
			return err
		}

		if err := w.start(); err != nil {
			return err
		}
		defer w.shutdown()
	}

	server := routes.NewApp()
	routes.SetupRoutes(server, h, c.Accounts, middlewares.CaptchaConfigFromEnv())

	errs := make(chan error, 1)

	go func() {
		errs <- server.Listen(os.Getenv("APP_ADDRESS"))
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("Could not setup server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")

	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("Could not shut down server: %w", err)
	}

	return nil
}
