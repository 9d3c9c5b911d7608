package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/middlewares"
	"github.com/shihabsss1/portfolio/utils"
)

type userLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) AuthLogin(c *fiber.Ctx) error {
	input := &userLoginInput{}
	if err := c.BodyParser(input); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The user data is invalid."},
		})
	}

	errs := fiber.Map{}

	if !utils.IsValidEmail(input.Email) {
		errs = utils.AddError(errs, "email", "Please, enter a valid email address.")
	}

	if len(input.Password) < utils.MinimumPasswordLength() {
		errs = utils.AddError(errs, "password", fmt.Sprintf("The password must be at least %d characters long.", utils.MinimumPasswordLength()))
	}

	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": errs,
		})
	}

	user, err := h.Accounts.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, helpers.ErrInvalidCredentials) {
			sentry.CaptureException(err)
			slog.Error(fmt.Sprintf("Error authenticating user: %v", err))
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{helpers.ErrInvalidCredentials.Error()},
		})
	}

	token, err := h.Accounts.NewAccessToken(user)
	if err != nil {
		slog.Error(fmt.Sprintf("Error generating access token: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not generate access token."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"access_token": token})
}

func (h *Handler) AuthCheck(c *fiber.Ctx) error {
	claims := middlewares.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
			"error": []string{"Invalid access token."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"message": []string{"Successful authentication."},
		"user":    claims.User,
	})
}

// AuthLogout revokes the access token of the request.
func (h *Handler) AuthLogout(c *fiber.Ctx) error {
	claims := middlewares.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Invalid access token."},
		})
	}

	defer c.Locals(utils.TokenContextKey(), nil)

	if err := h.Accounts.RevokeAccessToken(c.UserContext(), claims); err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not revoke access token: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not revoke access token."},
		})
	}

	return c.Status(fiber.StatusNoContent).JSON(&fiber.Map{})
}
