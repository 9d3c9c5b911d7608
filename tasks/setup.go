// Package tasks defines the background jobs run by the worker.
package tasks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
)

// Enqueuer is implemented by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type MediaStore interface {
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, prefix string) ([]media.Object, error)
	AssetID(url string) (string, bool)
}

// ContentLoader is implemented by *store.Store. Find must report read
// failures rather than fall back to the default content.
type ContentLoader interface {
	Find(ctx context.Context) (models.SiteContent, error)
}

type EmailSender interface {
	Send(ctx context.Context, opts helpers.EmailOpts, data map[string]interface{}) error
}

// Handlers processes every task type of the worker.
type Handlers struct {
	Media   MediaStore
	Content ContentLoader
	Mailer  EmailSender

	// OrphanAge is how old an unreferenced asset must be before the sweep
	// deletes it.
	OrphanAge time.Duration
}

func RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     utils.RedisAddress(),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	}
}

func NewClient() *asynq.Client {
	return asynq.NewClient(RedisConnOpt())
}

func NewServer() *asynq.Server {
	return asynq.NewServer(
		RedisConnOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)
}

func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskEmailDelivery, h.HandleEmailDeliveryTask)
	mux.HandleFunc(TaskMediaDelete, h.HandleMediaDeleteTask)
	mux.HandleFunc(TaskMediaSweep, h.HandleMediaSweepTask)

	return mux
}

func NewPeriodicTaskManager(configFile string) (*asynq.PeriodicTaskManager, error) {
	m, err := asynq.NewPeriodicTaskManager(asynq.PeriodicTaskManagerOpts{
		RedisConnOpt:               RedisConnOpt(),
		PeriodicTaskConfigProvider: NewTasksFileProvider(configFile),
		SchedulerOpts: &asynq.SchedulerOpts{
			Location: utils.DefaultLocation(),
		},
		SyncInterval: 5 * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not create periodic task manager: %w", err)
	}

	return m, nil
}
