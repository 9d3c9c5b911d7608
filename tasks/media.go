package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/store"
)

const (
	TaskMediaDelete string = "media:delete"
	TaskMediaSweep  string = "media:sweep"

	defaultOrphanAge time.Duration = 24 * time.Hour
)

var errMediaDisabled = errors.New("Media storage is not configured.")

type MediaDeletePayload struct {
	ID string `json:"public_id"`
}

func NewMediaDeleteTask(id string) (*asynq.Task, error) {
	payload, err := json.Marshal(MediaDeletePayload{ID: id})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskMediaDelete, payload), nil
}

func (h *Handlers) HandleMediaDeleteTask(ctx context.Context, t *asynq.Task) error {
	p := MediaDeletePayload{}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("Could not decode payload: %w: %w", err, asynq.SkipRetry)
	}

	if h.Media == nil {
		return fmt.Errorf("%w: %w", errMediaDisabled, asynq.SkipRetry)
	}

	if err := h.Media.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, media.ErrInvalidAssetID) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		return err
	}

	slog.Info(fmt.Sprintf("Deleted media %s", p.ID))

	return nil
}

// HandleMediaSweepTask deletes uploaded assets no longer referenced by the
// content document.
func (h *Handlers) HandleMediaSweepTask(ctx context.Context, _ *asynq.Task) error {
	if h.Media == nil {
		slog.Debug("Media not configured, skipping sweep.")
		return nil
	}

	_, err := h.SweepOrphans(ctx, time.Now())
	return err
}

// SweepOrphans deletes assets older than the orphan age that the current
// document does not reference, and returns their ids.
func (h *Handlers) SweepOrphans(ctx context.Context, now time.Time) ([]string, error) {
	// Every asset looks orphaned next to the default content, so the sweep
	// only runs against a document that was actually read.
	c, err := h.Content.Find(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Info("No content document stored yet, skipping media sweep.")
			return []string{}, nil
		}

		return nil, fmt.Errorf("Could not read content document, skipping media sweep: %w", err)
	}

	objects, err := h.Media.List(ctx, media.RootPrefix+"/")
	if err != nil {
		return nil, err
	}

	referenced := []string{}
	for _, u := range c.ImageURLs() {
		if id, ok := h.Media.AssetID(u); ok {
			referenced = append(referenced, id)
		}
	}

	age := h.OrphanAge
	if age <= 0 {
		age = defaultOrphanAge
	}

	deleted := []string{}

	for _, o := range objects {
		if slices.Contains(referenced, o.ID) || now.Sub(o.LastModified) < age {
			continue
		}

		if err := h.Media.Delete(ctx, o.ID); err != nil {
			sentry.CaptureException(err)
			slog.Warn(fmt.Sprintf("Could not delete orphaned media %s: %v", o.ID, err))
			continue
		}

		deleted = append(deleted, o.ID)
	}

	if len(deleted) > 0 {
		slog.Info(fmt.Sprintf("Deleted %d orphaned media files", len(deleted)))
	}

	return deleted, nil
}

// MediaJanitor queues deletion of assets removed from the content document.
type MediaJanitor struct {
	queue Enqueuer
	media MediaStore
}

func NewMediaJanitor(q Enqueuer, m MediaStore) *MediaJanitor {
	return &MediaJanitor{queue: q, media: m}
}

// RemoveMedia queues deletion of the asset behind url. URLs not served by the
// media host are ignored.
func (j *MediaJanitor) RemoveMedia(ctx context.Context, url string) error {
	id, ok := j.media.AssetID(url)
	if !ok {
		slog.Debug(fmt.Sprintf("Ignoring external media %s", url))
		return nil
	}

	task, err := NewMediaDeleteTask(id)
	if err != nil {
		return err
	}

	info, err := j.queue.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Queue("low"), asynq.Retention(1*time.Hour))
	if err != nil {
		return fmt.Errorf("Could not enqueue media deletion: %w", err)
	}

	slog.Info(fmt.Sprintf("Enqueued tasks: [%s] %s", info.ID, info.Queue))

	return nil
}
