package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
)

func RegisterAuthRoutes(g fiber.Router, h *controllers.Handler, auth middlewares.Authenticator, captcha middlewares.CaptchaConfig) {
	g.Use(middlewares.AuthLimiter())

	// Public
	g.Post("/login", middlewares.CaptchaProtected(captcha), h.AuthLogin).Name("api.auth.login")

	// Private
	g.Use(handlerArgs(middlewares.Protected(auth))...)
	g.Post("/check", h.AuthCheck).Name("api.auth.check")
	g.Post("/logout", h.AuthLogout).Name("api.auth.logout")
}
