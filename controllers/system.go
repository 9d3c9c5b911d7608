package controllers

import "github.com/gofiber/fiber/v2"

// GetCsrf only exists so the CSRF middleware can set its cookie.
func GetCsrf(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNoContent).JSON(&fiber.Map{})
}

func HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"healthy": true})
}
