package middlewares

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
	"github.com/shihabsss1/portfolio/jwt"
	"github.com/shihabsss1/portfolio/utils"
)

type TokenParser interface {
	ParseAccessToken(token string) (*jwt.Claims, error)
}

type TokenValidator interface {
	IsAccessTokenRevoked(ctx context.Context, id string) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID, email string) bool
}

type PermissionChecker interface {
	HasPermission(roles []string, path string, method string) bool
}

// Authenticator is implemented by *helpers.Accounts.
type Authenticator interface {
	TokenParser
	TokenValidator
	PermissionChecker
}

// Claims returns the access token claims stored by AuthProtected.
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, ok := c.Locals(utils.TokenContextKey()).(*jwt.Claims)
	if !ok {
		return nil
	}

	return claims
}

func jwtError(c *fiber.Ctx, err error) error {
	slog.Error(fmt.Sprintf("Access token error: %v", err))
	return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{"error": []string{"Invalid or expired access token."}})
}

// AuthProtected requires a valid bearer access token.
func AuthProtected(p TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		if len(header) <= 7 || !strings.EqualFold(header[:7], "Bearer ") {
			return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
				"error": []string{"Invalid access token."},
			})
		}

		claims, err := p.ParseAccessToken(strings.TrimSpace(header[7:]))
		if err != nil {
			return jwtError(c, err)
		}

		c.Locals(utils.TokenContextKey(), claims)

		return c.Next()
	}
}

// ValidateJWT rejects revoked tokens and tokens of removed or disabled users.
func ValidateJWT(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"Invalid access token."},
			})
		}

		revoked, err := v.IsAccessTokenRevoked(c.UserContext(), claims.ID)
		if err != nil {
			sentry.CaptureException(err)

			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"Could not validate access token."},
			})
		}

		if revoked {
			slog.Warn(fmt.Sprintf("The access token is revoked '%s'", claims.ID))

			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"Revoked access token."},
			})
		}

		if !v.UserExists(c.UserContext(), claims.User.ID, claims.User.Email) {
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"The access token is not valid."},
			})
		}

		return c.Next()
	}
}

func CheckPermissions(p PermissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)

		if claims != nil && p.HasPermission(claims.User.Roles, c.Path(), c.Method()) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
			"error": []string{"You are not allowed to access this resource."},
		})
	}
}

// Protected chains every check required by the admin routes.
func Protected(a Authenticator) []fiber.Handler {
	return []fiber.Handler{AuthProtected(a), ValidateJWT(a), CheckPermissions(a)}
}

func AuthLimiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        25,
		Expiration: 5 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(&fiber.Map{"error": []string{"Too many requests received within a short amount of time."}})
		},
	}

	return limiter.New(cfg)
}
