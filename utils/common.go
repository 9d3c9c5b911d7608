package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// AddError appends v to the list of messages stored under field k.
func AddError(m fiber.Map, k string, v string) fiber.Map {
	list, _ := m[k].([]string)
	m[k] = append(list, v)

	return m
}

// GetDomainHostname extracts the host of an address that may lack a scheme.
func GetDomainHostname(d string) (string, error) {
	d = strings.TrimSpace(d)
	if len(d) < 1 {
		return "", errors.New("Invalid domain.")
	}

	if !strings.Contains(d, "://") {
		d = "https://" + d
	}

	u, err := url.Parse(d)
	if err != nil {
		sentry.CaptureException(err)
		return "", fmt.Errorf("Could not parse URL: %w", err)
	}

	if len(u.Hostname()) < 1 {
		return "", fmt.Errorf("Invalid URL: %s", d)
	}

	return u.Hostname(), nil
}

// GetApexDomain returns the registrable domain of d, e.g. example.co.uk.
func GetApexDomain(d string) (string, error) {
	h, err := GetDomainHostname(d)
	if err != nil {
		return "", err
	}

	return publicsuffix.EffectiveTLDPlusOne(h)
}

func ToStringPtr(s string) *string {
	if s = strings.TrimSpace(s); len(s) < 1 {
		return nil
	}

	return &s
}

// CleanString trims s and collapses inner whitespace to a single space.
func CleanString(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// RemoveDuplicated keeps the first occurrence of every element.
func RemoveDuplicated[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// CleanStringList cleans every entry, then drops blanks and duplicates.
func CleanStringList(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, CleanString(v))
	}

	return slices.DeleteFunc(RemoveDuplicated(out), func(e string) bool {
		return len(e) < 1
	})
}

func IsValidUuid(id uuid.UUID) bool {
	return id != uuid.Nil && id.Version() == 4
}

// RemoveAt returns a copy of s without the element at index i, preserving order.
func RemoveAt[T any](s []T, i int) ([]T, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}

	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)

	return append(out, s[i+1:]...), true
}
