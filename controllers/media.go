package controllers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/utils"
)

type mediaUploadInput struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

type mediaDeleteInput struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

func mediaUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(&fiber.Map{
		"error": []string{"Media storage is not configured."},
	})
}

func isMediaInputError(err error) bool {
	return errors.Is(err, media.ErrEmptyFile) ||
		errors.Is(err, media.ErrFileTooLarge) ||
		errors.Is(err, media.ErrUnsupportedType) ||
		errors.Is(err, media.ErrInvalidDataURL) ||
		errors.Is(err, media.ErrInvalidAssetID)
}

// UploadMedia accepts either a JSON body with a data URL or a multipart form
// with a file field.
func (h *Handler) UploadMedia(c *fiber.Ctx) error {
	if h.Media == nil {
		return mediaUnavailable(c)
	}

	var (
		asset media.Asset
		err   error
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		asset, err = h.uploadFormFile(c)
	} else {
		input := &mediaUploadInput{}
		if err := c.BodyParser(input); err != nil {
			slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error": []string{"The upload data is invalid."},
			})
		}

		if len(strings.TrimSpace(input.Image)) < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error": utils.AddError(fiber.Map{}, "image", "Please select an image to upload."),
			})
		}

		asset, err = h.Media.UploadDataURL(c.UserContext(), input.Image, input.Folder)
	}

	if err != nil {
		if isMediaInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error": utils.AddError(fiber.Map{}, "image", err.Error()),
			})
		}

		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not upload image: %v", err))

		return c.Status(fiber.StatusBadGateway).JSON(&fiber.Map{
			"error": []string{"Could not upload image. Please try again."},
		})
	}

	return c.Status(fiber.StatusCreated).JSON(asset)
}

func (h *Handler) uploadFormFile(c *fiber.Ctx) (media.Asset, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return media.Asset{}, media.ErrEmptyFile
	}

	if fh.Size > utils.MediaMaxSize() {
		return media.Asset{}, media.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return media.Asset{}, fmt.Errorf("Could not open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, utils.MediaMaxSize()+1))
	if err != nil {
		return media.Asset{}, fmt.Errorf("Could not read uploaded file: %w", err)
	}

	return h.Media.Upload(c.UserContext(), data, c.FormValue("folder"))
}

// DeleteMedia removes an asset by its public id or its URL.
func (h *Handler) DeleteMedia(c *fiber.Ctx) error {
	if h.Media == nil {
		return mediaUnavailable(c)
	}

	input := &mediaDeleteInput{}
	if err := c.BodyParser(input); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The media data is invalid."},
		})
	}

	id := strings.TrimSpace(input.PublicID)

	if len(id) < 1 && len(strings.TrimSpace(input.URL)) > 0 {
		id, _ = h.Media.AssetID(strings.TrimSpace(input.URL))
	}

	if !media.IsAssetID(id) {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": utils.AddError(fiber.Map{}, "public_id", media.ErrInvalidAssetID.Error()),
		})
	}

	if err := h.Media.Delete(c.UserContext(), id); err != nil {
		if isMediaInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error": utils.AddError(fiber.Map{}, "public_id", err.Error()),
			})
		}

		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not delete media %s: %v", id, err))

		return c.Status(fiber.StatusBadGateway).JSON(&fiber.Map{
			"error": []string{"Could not delete image."},
		})
	}

	return c.Status(fiber.StatusNoContent).JSON(&fiber.Map{})
}
