package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
)

func RegisterMediaRoutes(g fiber.Router, h *controllers.Handler, auth middlewares.Authenticator) {
	g.Use(handlerArgs(middlewares.Protected(auth))...)
	g.Post("/upload", h.UploadMedia).Name("api.media.upload")
	g.Post("/delete", h.DeleteMedia).Name("api.media.delete")
}
