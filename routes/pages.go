package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
)

func RegisterPageRoutes(app *fiber.App, h *controllers.Handler) {
	app.Get("/", h.HomePage).Name("pages.home")
	app.Get("/gallery", h.GalleryPage).Name("pages.gallery")
	app.Get("/experience", h.ExperiencePage).Name("pages.experience")
}
