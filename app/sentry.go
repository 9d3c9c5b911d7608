package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/shihabsss1/portfolio/utils"
)

const defaultTracesSampleRate float64 = 0.2

func tracesSampleRate() float64 {
	rate, err := strconv.ParseFloat(os.Getenv("SENTRY_TRACES_SAMPLE_RATE"), 64)
	if err != nil || rate < 0 || rate > 1 {
		return defaultTracesSampleRate
	}

	return rate
}

// SetupSentry initializes error reporting and returns the function that
// flushes buffered events on exit. Without a DSN the client drops events.
func SetupSentry() func() {
	opts := sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		Debug:            utils.IsDebug(),
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate(),
		ServerName:       os.Getenv("APP_NAME"),
		Environment:      "production",
	}

	if opts.Debug {
		opts.Environment = "development"
	}

	if err := sentry.Init(opts); err != nil {
		slog.Error(fmt.Sprintf("Sentry initialization failed: %v", err))
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}
}
