package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/editor"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/store"
	"github.com/shihabsss1/portfolio/utils"
)

func (h *Handler) GetContent(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Content.Current(c.UserContext()))
}

// UpdateContent overwrites the document fields present in the body.
func (h *Handler) UpdateContent(c *fiber.Ctx) error {
	patch := models.ContentPatch{}
	if err := c.BodyParser(&patch); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The content data is invalid."},
		})
	}

	if patch.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"There are no changes to save."},
		})
	}

	if err := patch.Normalize(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{err.Error()},
		})
	}

	if err := editor.ValidatePatch(patch); err != nil {
		ve := &editor.ValidationError{}
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error":   ve.Errors,
				"message": ve.Message,
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{err.Error()},
		})
	}

	ctx := c.UserContext()

	// Media is only released against a document that was actually read. A
	// missing document references nothing, so there is nothing to release.
	before, err := h.Content.Find(ctx)
	known := err == nil || errors.Is(err, store.ErrNotFound)

	if errors.Is(err, store.ErrNotFound) {
		before = models.Default()
	} else if err != nil {
		slog.Warn(fmt.Sprintf("Could not read content before saving, media will not be released: %v", err))
	}

	if err := h.Content.Save(ctx, patch); err != nil {
		slog.Error(fmt.Sprintf("Could not save content: %v", err))

		status := fiber.StatusInternalServerError

		switch {
		case errors.Is(err, store.ErrUnavailable), errors.Is(err, store.ErrNotInitialized):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, store.ErrPermissionDenied):
			status = fiber.StatusForbidden
		default:
			sentry.CaptureException(err)
		}

		return c.Status(status).JSON(&fiber.Map{
			"error": []string{editor.MessageSaveFailed},
		})
	}

	resp := fiber.Map{"message": []string{editor.MessageSaved}}

	if known {
		after := before.Clone()
		patch.Apply(&after)
		models.Upgrade(&after)

		h.releaseMedia(c, before, after)
		resp["content"] = after
	} else if after, err := h.Content.Find(ctx); err == nil {
		resp["content"] = after
	}

	return c.Status(fiber.StatusOK).JSON(&resp)
}

// releaseMedia queues deletion of the images the save stopped referencing.
func (h *Handler) releaseMedia(c *fiber.Ctx, before models.SiteContent, after models.SiteContent) {
	if h.Janitor == nil {
		return
	}

	referenced := after.ImageURLs()

	for _, u := range utils.RemoveDuplicated(before.ImageURLs()) {
		if slices.Contains(referenced, u) {
			continue
		}

		if err := h.Janitor.RemoveMedia(c.UserContext(), u); err != nil {
			sentry.CaptureException(err)
			slog.Warn(fmt.Sprintf("Could not remove media %s: %v", u, err))
		}
	}
}
