package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
)

func RegisterSystemRoutes(g fiber.Router) {
	g.Get("/csrf", controllers.GetCsrf).Name("api.system.csrf")
}
