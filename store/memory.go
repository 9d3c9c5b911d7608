package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shihabsss1/portfolio/models"
)

// MemoryBackend keeps the document in process memory. It is meant for local
// development and tests.
type MemoryBackend struct {
	mu  sync.RWMutex
	doc *models.SiteContent
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Find(ctx context.Context) (models.SiteContent, error) {
	if err := ctx.Err(); err != nil {
		return models.SiteContent{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.doc == nil {
		return models.SiteContent{}, ErrNotFound
	}

	return clone(*m.doc), nil
}

func (m *MemoryBackend) Upsert(ctx context.Context, create models.SiteContent, patch models.ContentPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		c := clone(create)
		m.doc = &c
		return nil
	}

	c := clone(*m.doc)
	patch.Apply(&c)
	c = clone(c)
	m.doc = &c

	return nil
}

func (m *MemoryBackend) Close(_ context.Context) error {
	return nil
}

// clone deep-copies c the way a document store round trip would.
func clone(c models.SiteContent) models.SiteContent {
	raw, err := json.Marshal(c)
	if err != nil {
		panic(fmt.Sprintf("Could not encode content document: %v", err))
	}

	out := models.SiteContent{}
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("Could not decode content document: %v", err))
	}

	return out
}
