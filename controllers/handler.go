// Package controllers implements the HTTP handlers of the API and the public
// pages.
package controllers

import (
	"context"

	"github.com/shihabsss1/portfolio/editor"
	"github.com/shihabsss1/portfolio/jwt"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/tasks"
	"github.com/shihabsss1/portfolio/views"
)

// ContentService is implemented by *store.Store.
type ContentService interface {
	Current(ctx context.Context) models.SiteContent
	Find(ctx context.Context) (models.SiteContent, error)
	Save(ctx context.Context, p models.ContentPatch) error
}

// MediaService is implemented by *media.Service.
type MediaService interface {
	Upload(ctx context.Context, data []byte, folder string) (media.Asset, error)
	UploadDataURL(ctx context.Context, dataURL string, folder string) (media.Asset, error)
	Delete(ctx context.Context, id string) error
	AssetID(url string) (string, bool)
}

// AccountService is implemented by *helpers.Accounts.
type AccountService interface {
	Authenticate(ctx context.Context, email string, password string) (*models.User, error)
	NewAccessToken(u *models.User) (string, error)
	RevokeAccessToken(ctx context.Context, claims *jwt.Claims) error
}

// Handler carries the services used by the handlers. Media, Janitor and Queue
// are optional; the routes depending on them answer 503 when they are nil.
type Handler struct {
	Content  ContentService
	Media    MediaService
	Janitor  editor.MediaRemover
	Accounts AccountService
	Queue    tasks.Enqueuer
	Views    *views.Renderer
}
