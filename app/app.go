// Package app wires the external services used by the server and the worker.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/tasks"
	"github.com/shihabsss1/portfolio/utils"
	"gorm.io/gorm"
)

type Container struct {
	DB       *gorm.DB
	Cache    rueidis.Client
	Store    *store.Store
	Media    *media.Service
	Accounts *helpers.Accounts
	Queue    *asynq.Client
}

// New connects every service. Media is nil when no media host is configured.
func New(ctx context.Context) (*Container, error) {
	c := &Container{}

	db, err := NewDB()
	if err != nil {
		return nil, err
	}
	c.DB = db

	SetupDefaultData(db)

	if c.Store, err = NewStore(ctx, db); err != nil {
		c.Close(ctx)
		return nil, err
	}

	if c.Cache, err = NewCache(); err != nil {
		c.Close(ctx)
		return nil, err
	}

	if c.Accounts, err = NewAccounts(db, c.Cache); err != nil {
		c.Close(ctx)
		return nil, err
	}

	if c.Media, err = NewMedia(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}

	c.Queue = tasks.NewClient()

	return c, nil
}

// Janitor queues deletion of media removed from the document. It is nil when
// media is not configured.
func (c *Container) Janitor() *tasks.MediaJanitor {
	if c.Media == nil || c.Queue == nil {
		return nil
	}

	return tasks.NewMediaJanitor(c.Queue, c.Media)
}

func (c *Container) Close(ctx context.Context) {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			slog.Error(fmt.Sprintf("Could not close queue client: %v", err))
		}
	}

	if c.Cache != nil {
		c.Cache.Close()
	}

	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			slog.Error(fmt.Sprintf("Could not close content store: %v", err))
		}
	}

	// The Postgres content backend owns the shared connection pool.
	if c.DB != nil && (c.Store == nil || utils.ContentBackend() != utils.BackendPostgres) {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
