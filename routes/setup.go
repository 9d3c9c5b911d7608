package routes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/shihabsss1/portfolio/controllers"
	"github.com/shihabsss1/portfolio/middlewares"
	"github.com/shihabsss1/portfolio/utils"
)

// NewApp creates the Fiber application. Data URL uploads are base64 encoded,
// so the body limit leaves room for twice the media size.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		StrictRouting: true,
		ErrorHandler:  ErrorHandler,
		AppName:       os.Getenv("APP_NAME"),
		BodyLimit:     int(2 * utils.MediaMaxSize()),
		JSONEncoder:   json.Marshal,
		JSONDecoder:   json.Unmarshal,
	})
}

// ServerConfig gathers the environment settings shared by the middleware chain.
type ServerConfig struct {
	Debug        bool
	AllowOrigins string
	CookieDomain string
	CookieKey    string
	MaxRequests  int
}

func ServerConfigFromEnv() ServerConfig {
	cfg := ServerConfig{
		Debug:        utils.IsDebug(),
		AllowOrigins: os.Getenv("APP_DOMAIN"),
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
		CookieKey:    os.Getenv("COOKIE_SECRET_KEY"),
		MaxRequests:  60,
	}

	if n, err := strconv.Atoi(os.Getenv("LIMIT_REQUESTS_MAX")); err == nil && n > 0 {
		cfg.MaxRequests = n
	}

	if cfg.Debug {
		cfg.AllowOrigins = "*"
		cfg.MaxRequests = 250
	}

	return cfg
}

func (cfg ServerConfig) cors() cors.Config {
	return cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: !cfg.Debug,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-CSRF-Token",
	}
}

// csrf keeps the token in the session store. Debug builds skip the check.
func (cfg ServerConfig) csrf() csrf.Config {
	store := session.New(session.Config{
		CookieDomain:      cfg.CookieDomain,
		CookiePath:        "/",
		CookieSecure:      !cfg.Debug,
		CookieHTTPOnly:    true,
		CookieSameSite:    "Strict",
		CookieSessionOnly: true,
	})

	return csrf.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.Debug
		},
		KeyLookup:         "cookie:csrf_",
		CookieName:        "csrf_",
		CookieDomain:      cfg.CookieDomain,
		CookiePath:        "/",
		CookieSecure:      !cfg.Debug,
		CookieHTTPOnly:    true,
		CookieSessionOnly: true,
		CookieSameSite:    "Strict",
		Session:           store,
		SessionKey:        "csrf.token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error(fmt.Sprintf("CSRF error: %v", err))
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{"error": []string{"You do not have permission to access this resource."}})
		},
	}
}

func (cfg ServerConfig) limiter() limiter.Config {
	return limiter.Config{
		Max: cfg.MaxRequests,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(&fiber.Map{"error": []string{"Too many requests received within a short amount of time."}})
		},
	}
}

func (cfg ServerConfig) middlewares() []fiber.Handler {
	return []fiber.Handler{
		recover.New(recover.Config{EnableStackTrace: cfg.Debug}),
		cors.New(cfg.cors()),
		encryptcookie.New(encryptcookie.Config{Key: cfg.CookieKey}),
		csrf.New(cfg.csrf()),
		limiter.New(cfg.limiter()),
		idempotency.New(),
		requestid.New(),
		logger.New(logger.Config{
			Format:     "[${time}] ${locals:requestid} ${status} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05 -07:00",
			TimeZone:   utils.DefaultTimeZone(),
		}),
		compress.New(compress.Config{Level: compress.LevelBestSpeed}),
	}
}

func SetupRoutes(app *fiber.App, h *controllers.Handler, auth middlewares.Authenticator, captcha middlewares.CaptchaConfig) {
	for _, m := range ServerConfigFromEnv().middlewares() {
		app.Use(m)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	RegisterSystemRoutes(v1.Group("/system"))
	RegisterContentRoutes(v1, h)
	RegisterContactRoutes(v1, h, captcha)
	RegisterAuthRoutes(v1.Group("/auth"), h, auth, captcha)
	RegisterAdminRoutes(v1.Group("/admin"), h, auth)
	RegisterMediaRoutes(v1.Group("/media"), h, auth)
	RegisterHealthCheckRoutes(api)
	RegisterPageRoutes(app, h)

	// Must be the last one
	RegisterErrorHandlers(app)
}

// handlerArgs converts a handler slice into the variadic form accepted by fiber.Router.Use.
func handlerArgs(hs []fiber.Handler) []interface{} {
	args := make([]interface{}, len(hs))
	for i, h := range hs {
		args[i] = h
	}
	return args
}
