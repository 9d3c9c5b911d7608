package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
)

func RegisterHealthCheckRoutes(g fiber.Router) {
	g.Get("/health", controllers.HealthCheck).Name("api.health")
}
