package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
)

func RegisterContactRoutes(g fiber.Router, h *controllers.Handler, captcha middlewares.CaptchaConfig) {
	g.Post("/contact", middlewares.CaptchaProtected(captcha), h.PostContact).Name("api.contact.send")
}
