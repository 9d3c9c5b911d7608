package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
}

func SMTPConfigFromEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("EMAIL_HOST")),
		Port:     mail.DefaultPortTLS,
		TLS:      true,
		Username: os.Getenv("EMAIL_USERNAME"),
		Password: os.Getenv("EMAIL_PASSWORD"),
	}

	if p := os.Getenv("EMAIL_PORT"); len(p) > 0 {
		port, err := strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			slog.Warn(fmt.Sprintf("The SMTP port '%s' is invalid. The port %d will be used instead.", p, cfg.Port))
		} else {
			cfg.Port = port
		}
	}

	if useTLS, err := strconv.ParseBool(os.Getenv("EMAIL_TLS")); err == nil {
		cfg.TLS = useTLS
	}

	return cfg
}

// Options translates the settings into client options. Plain connections
// fall back to LOGIN authentication.
func (cfg SMTPConfig) Options() []mail.Option {
	policy, auth := mail.TLSMandatory, mail.SMTPAuthCramMD5
	if !cfg.TLS {
		policy, auth = mail.TLSOpportunistic, mail.SMTPAuthLogin
	}

	return []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(policy),
		mail.WithSMTPAuth(auth),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
}

// NewSMTP returns nil when no mail server is configured.
func NewSMTP() (*mail.Client, error) {
	cfg := SMTPConfigFromEnv()
	if len(cfg.Host) < 1 {
		slog.Warn("EMAIL_HOST is empty. Contact messages will not be delivered.")
		return nil, nil
	}

	client, err := mail.NewClient(cfg.Host, cfg.Options()...)
	if err != nil {
		return nil, fmt.Errorf("Could not create email client: %w", err)
	}

	return client, nil
}
