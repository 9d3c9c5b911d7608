package middlewares

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/utils"
)

const hcaptchaApiUrl string = "https://api.hcaptcha.com/siteverify"

// CaptchaRequest is embedded in the body of every captcha protected form.
type CaptchaRequest struct {
	Response string `json:"captcha" form:"h-captcha-response"`
}

type CaptchaResponse struct {
	Success       bool     `json:"success"`
	Hostname      string   `json:"hostname,omitempty"`
	ChallengeTime string   `json:"challenge_ts,omitempty"`
	Errors        []string `json:"error-codes,omitempty"`
}

type CaptchaConfig struct {
	VerifyURL string
	SiteKey   string
	SecretKey string

	// Disabled skips verification. Only honored in debug mode.
	Disabled bool
}

func CaptchaConfigFromEnv() CaptchaConfig {
	disabled, err := strconv.ParseBool(os.Getenv("HCAPTCHA_DISABLE"))
	if err != nil {
		disabled = false
	}

	return CaptchaConfig{
		VerifyURL: hcaptchaApiUrl,
		SiteKey:   os.Getenv("HCAPTCHA_SITE_KEY"),
		SecretKey: os.Getenv("HCAPTCHA_SECRET_KEY"),
		Disabled:  disabled,
	}
}

func CaptchaProtected(cfg CaptchaConfig) fiber.Handler {
	if len(cfg.VerifyURL) < 1 {
		cfg.VerifyURL = hcaptchaApiUrl
	}

	return func(c *fiber.Ctx) error {
		if utils.IsDebug() && cfg.Disabled {
			return c.Next()
		}

		input := CaptchaRequest{}
		if err := c.BodyParser(&input); err != nil {
			slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"Invalid captcha data."},
			})
		}

		if len(input.Response) < 1 {
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": utils.AddError(fiber.Map{}, "captcha", "The captcha response is invalid."),
			})
		}

		response, err := verifyCaptcha(cfg, input.Response, c.IP(), c.Get(fiber.HeaderUserAgent))
		if err != nil {
			slog.Error(fmt.Sprintf("Could not validate captcha response: %v", err))

			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": []string{"Could not validate captcha response."},
			})
		}

		if response.Success {
			return c.Next()
		}

		if len(response.Errors) > 0 {
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
				"error": response.Errors,
			})
		}

		return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{
			"error": []string{"Could not validate captcha response."},
		})
	}
}

func verifyCaptcha(cfg CaptchaConfig, token string, ip string, userAgent string) (*CaptchaResponse, error) {
	agent := fiber.Post(cfg.VerifyURL).Timeout(5 * time.Second).UserAgent(userAgent)

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)

	args.Set("sitekey", cfg.SiteKey)
	args.Set("secret", cfg.SecretKey)
	args.Set("response", token)
	args.Set("remoteip", ip)

	status, body, errList := agent.Form(args).Bytes()
	if len(errList) > 0 {
		return nil, fmt.Errorf("HTTP '%d' status code: %v", status, errList)
	}

	response := &CaptchaResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("Could not decode response: %w", err)
	}

	return response, nil
}
