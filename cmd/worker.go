package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shihabsss1/portfolio/app"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/tasks"
	"github.com/spf13/cobra"
)

const orphanAge time.Duration = 24 * time.Hour

type worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	manager *asynq.PeriodicTaskManager
}

func tasksConfigFile() string {
	if f := os.Getenv("TASKS_CONFIG_FILE"); len(f) > 0 {
		return f
	}

	return tasks.DefaultConfigFile
}

func newWorker(s *store.Store, m *media.Service) (*worker, error) {
	client, err := app.NewSMTP()
	if err != nil {
		return nil, err
	}

	h := &tasks.Handlers{
		Content:   s,
		OrphanAge: orphanAge,
	}

	if client != nil {
		h.Mailer = helpers.NewMailer(client, helpers.DefaultTemplateDir)
	}

	if m != nil {
		h.Media = m
	}

	manager, err := tasks.NewPeriodicTaskManager(tasksConfigFile())
	if err != nil {
		return nil, err
	}

	return &worker{
		server:  tasks.NewServer(),
		mux:     tasks.NewServeMux(h),
		manager: manager,
	}, nil
}

func (w *worker) start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("Could not run queue server: %w", err)
	}

	if err := w.manager.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("Could not run periodic tasks manager: %w", err)
	}

	return nil
}

func (w *worker) shutdown() {
	w.manager.Shutdown()
	w.server.Shutdown()
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process background tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flush := app.SetupSentry()
			defer flush()

			ctx := cmd.Context()

			s, err := OpenStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(s)

			m, err := app.NewMedia(ctx)
			if err != nil {
				return err
			}

			w, err := newWorker(s, m)
			if err != nil {
				return err
			}

			if err := w.manager.Start(); err != nil {
				return fmt.Errorf("Could not run periodic tasks manager: %w", err)
			}
			defer w.manager.Shutdown()

			// Run blocks until SIGTERM or SIGINT.
			if err := w.server.Run(w.mux); err != nil {
				return fmt.Errorf("Could not run queue server: %w", err)
			}

			return nil
		},
	}
}

func closeStore(s *store.Store) {
	if err := s.Close(context.Background()); err != nil {
		slog.Error(fmt.Sprintf("Could not close content store: %v", err))
	}
}
