package utils

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
)

const (
	minAccessTokenExpiration     int64 = 1
	defaultAccessTokenExpiration int64 = 2
	maxAccessTokenExpiration     int64 = 12
	minStoreTimeout              int64 = 1
	defaultStoreTimeout          int64 = 10
	maxStoreTimeout              int64 = 60
	minMediaSize                 int64 = 1
	defaultMediaSize             int64 = 10
	maxMediaSize                 int64 = 50
)

const (
	BackendPostgres string = "postgres"
	BackendMongo    string = "mongo"
	BackendMemory   string = "memory"
)

func IsDebug() bool {
	isDebug, err := strconv.ParseBool(os.Getenv("APP_DEBUG"))
	if err != nil {
		isDebug = false
	}

	return isDebug
}

func AccessTokenExpiration() time.Duration {
	return time.Duration(clampedInt("JWT_ACCESS_TOKEN_EXPIRATION", minAccessTokenExpiration, defaultAccessTokenExpiration, maxAccessTokenExpiration)) * time.Hour
}

// StoreTimeout bounds every call made to the document store.
func StoreTimeout() time.Duration {
	return time.Duration(clampedInt("STORE_TIMEOUT_SECONDS", minStoreTimeout, defaultStoreTimeout, maxStoreTimeout)) * time.Second
}

// MediaMaxSize is the largest accepted upload, in bytes.
func MediaMaxSize() int64 {
	return clampedInt("MEDIA_MAX_SIZE_MB", minMediaSize, defaultMediaSize, maxMediaSize) * 1024 * 1024
}

// ContentBackend selects where the content document is stored.
func ContentBackend() string {
	b := strings.ToLower(strings.TrimSpace(os.Getenv("CONTENT_BACKEND")))

	switch b {
	case BackendMongo:
		return BackendMongo
	case BackendMemory:
		return BackendMemory
	case "", BackendPostgres:
		return BackendPostgres
	default:
		slog.Warn(fmt.Sprintf("Unknown content backend '%s'. Falling back to '%s'.", b, BackendPostgres))
		return BackendPostgres
	}
}

func DefaultTimeZone() string {
	tz := os.Getenv("TZ")
	if len(tz) < 1 {
		tz = "Asia/Dhaka"
	}

	return tz
}

func DefaultLocation() *time.Location {
	tz := DefaultTimeZone()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		sentry.CaptureException(err)
		return time.Now().Location()
	}

	return loc
}

func EmailLang() string {
	l := os.Getenv("EMAIL_LANG")

	if len(l) < 1 {
		slog.Warn("Empty email language. Falling back to 'en'.")
		l = "en"
	}

	return l
}

func RedisAddress() string {
	port, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		port = 6379
	}

	return fmt.Sprintf("%s:%d", os.Getenv("REDIS_HOST"), port)
}

func clampedInt(key string, min int64, def int64, max int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		v = def
	}

	if v < min {
		v = min
	}

	if v > max {
		v = max
	}

	return v
}
