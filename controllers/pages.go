package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/views"
)

func (h *Handler) render(c *fiber.Ctx, page string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return h.Views.Render(c, page, h.Content.Current(c.UserContext()))
}

func (h *Handler) HomePage(c *fiber.Ctx) error {
	return h.render(c, views.PageHome)
}

func (h *Handler) GalleryPage(c *fiber.Ctx) error {
	return h.render(c, views.PageGallery)
}

func (h *Handler) ExperiencePage(c *fiber.Ctx) error {
	return h.render(c, views.PageExperience)
}
