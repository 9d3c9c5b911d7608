// Package store reads and writes the singleton content document.
//
// Load never fails: any backend problem falls back to the default content.
// Find reports the failure instead, for callers that must not act on defaults.
// Writes create the document from the defaults merged with the payload when
// it does not exist yet, and otherwise overwrite only the payload's fields in
// a single backend operation. Concurrent admin saves are last-write-wins per
// field; there is no version check.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/shihabsss1/portfolio/models"
)

var (
	ErrNotInitialized   = errors.New("The content store is not initialized.")
	ErrNotFound         = errors.New("The content document does not exist.")
	ErrPermissionDenied = errors.New("The content store denied access.")
	ErrUnavailable      = errors.New("The content store is unavailable.")
)

const defaultTimeout time.Duration = 10 * time.Second

// Backend persists the content document.
type Backend interface {
	// Find returns the stored document or ErrNotFound.
	Find(ctx context.Context) (models.SiteContent, error)

	// Upsert atomically inserts create when no document exists, or else
	// overwrites only the fields named by patch.
	Upsert(ctx context.Context, create models.SiteContent, patch models.ContentPatch) error

	Close(ctx context.Context) error
}

type Store struct {
	backend Backend
	timeout time.Duration
}

func New(b Backend, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Store{backend: b, timeout: timeout}
}

// Find returns the stored document with the schema upgrade applied. Unlike
// Load it reports failures, including ErrNotFound, so callers that delete data
// based on the document never act on the default content.
func (s *Store) Find(ctx context.Context) (models.SiteContent, error) {
	if s == nil || s.backend == nil {
		return models.SiteContent{}, ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.backend.Find(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		return models.SiteContent{}, err
	}

	upgrade(&c)

	return c, nil
}

// Load returns the stored document, or the default content when the store is
// unconfigured, unreachable or holds no document.
func (s *Store) Load(ctx context.Context) models.SiteContent {
	if s == nil || s.backend == nil {
		slog.Warn("Content store not initialized, returning default content.")
		return models.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.backend.Find(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Info("Content document not found, returning default content.")
		} else {
			sentry.CaptureException(err)
			slog.Error(fmt.Sprintf("Could not read content document, returning default content: %v", err))
		}

		return models.Default()
	}

	return c
}

// Current is Load followed by the schema upgrade step.
func (s *Store) Current(ctx context.Context) models.SiteContent {
	c := s.Load(ctx)
	upgrade(&c)

	return c
}

func upgrade(c *models.SiteContent) {
	if applied := models.Upgrade(c); len(applied) > 0 {
		slog.Debug(fmt.Sprintf("Upgraded content document: %v", applied))
	}
}

// Save writes the fields present in p.
func (s *Store) Save(ctx context.Context, p models.ContentPatch) error {
	if s == nil || s.backend == nil {
		return ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.backend.Upsert(ctx, models.Merged(p), p); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		return fmt.Errorf("Could not save content document: %w", err)
	}

	return nil
}

// SaveAll writes every field of c.
func (s *Store) SaveAll(ctx context.Context, c models.SiteContent) error {
	return s.Save(ctx, models.PatchFrom(c))
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.backend == nil {
		return nil
	}

	return s.backend.Close(ctx)
}
