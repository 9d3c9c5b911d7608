package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
)

func RegisterContentRoutes(g fiber.Router, h *controllers.Handler) {
	g.Get("/content", h.GetContent).Name("api.content.show")
}

func RegisterAdminRoutes(g fiber.Router, h *controllers.Handler, auth middlewares.Authenticator) {
	g.Use(handlerArgs(middlewares.Protected(auth))...)
	g.Get("/content", h.GetContent).Name("api.admin.content.show")
	g.Put("/content", h.UpdateContent).Name("api.admin.content.update")
}
