// Package editor holds an admin's working copy of the content document.
//
// Every mutation happens in memory. Nothing reaches the store until Save is
// called, and a failed save keeps the working copy so it can be retried.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/shihabsss1/portfolio/models"
)

const (
	MessageSaved      string = "Changes saved successfully!"
	MessageSaveFailed string = "Error saving changes. Please try again."
)

var (
	ErrNotLoaded       = errors.New("The content document has not been loaded.")
	ErrSaveInProgress  = errors.New("A save is already in progress.")
	ErrIndexOutOfRange = errors.New("Index out of range.")
)

// ContentStore is the part of the content store the editor needs.
type ContentStore interface {
	Current(ctx context.Context) models.SiteContent
	SaveAll(ctx context.Context, c models.SiteContent) error
}

// MediaRemover requests deletion of a remote asset by its URL. It may return
// before the asset is actually gone.
type MediaRemover interface {
	RemoveMedia(ctx context.Context, url string) error
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the dismissible notice shown after a save or a rejected action.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

type Editor struct {
	store  ContentStore
	remove MediaRemover

	mu      sync.Mutex
	content models.SiteContent
	loaded  bool
	saving  bool
	message *Message

	// removed media URLs, released after the next successful save
	removed []string
}

func New(store ContentStore, remover MediaRemover) *Editor {
	return &Editor{store: store, remove: remover}
}

// Load replaces the working copy with the current stored document.
func (e *Editor) Load(ctx context.Context) models.SiteContent {
	c := e.store.Current(ctx)
	e.Open(c)

	return c
}

// Open replaces the working copy with c, for callers that read the document
// themselves.
func (e *Editor) Open(c models.SiteContent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.content = c.Clone()
	e.loaded = true
	e.removed = nil
}

// Content returns a copy of the working copy.
func (e *Editor) Content() models.SiteContent {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.content.Clone()
}

func (e *Editor) Message() *Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.message == nil {
		return nil
	}

	m := *e.message

	return &m
}

func (e *Editor) DismissMessage() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.message = nil
}

func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.saving
}

// Save writes the whole working copy back. Only one save may run at a time.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()

	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	if e.saving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}

	e.saving = true
	snapshot := e.content.Clone()
	removed := slices.Clone(e.removed)
	e.mu.Unlock()

	err := e.store.SaveAll(ctx, snapshot)

	e.mu.Lock()
	e.saving = false

	if err != nil {
		e.message = &Message{Kind: MessageError, Text: MessageSaveFailed}
		e.mu.Unlock()

		slog.Error(fmt.Sprintf("Could not save content: %v", err))

		return err
	}

	e.message = &Message{Kind: MessageSuccess, Text: MessageSaved}
	e.removed = slices.DeleteFunc(e.removed, func(u string) bool {
		return slices.Contains(removed, u)
	})
	e.mu.Unlock()

	e.releaseMedia(ctx, snapshot, removed)

	return nil
}

// releaseMedia asks for deletion of removed assets the saved document no
// longer references. Failures are only logged.
func (e *Editor) releaseMedia(ctx context.Context, saved models.SiteContent, removed []string) {
	if e.remove == nil || len(removed) < 1 {
		return
	}

	referenced := saved.ImageURLs()

	for _, u := range removed {
		if slices.Contains(referenced, u) {
			continue
		}

		if err := e.remove.RemoveMedia(ctx, u); err != nil {
			sentry.CaptureException(err)
			slog.Warn(fmt.Sprintf("Could not remove media %s: %v", u, err))
		}
	}
}

// mutate runs fn against the working copy under the lock.
func (e *Editor) mutate(fn func(c *models.SiteContent) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return ErrNotLoaded
	}

	if err := fn(&e.content); err != nil {
		ve := &ValidationError{}
		if errors.As(err, &ve) {
			e.message = &Message{Kind: MessageError, Text: ve.Message}
		}

		return err
	}

	return nil
}

func (e *Editor) forget(urls ...string) {
	for _, u := range urls {
		if len(u) > 0 && !slices.Contains(e.removed, u) {
			e.removed = append(e.removed, u)
		}
	}
}
