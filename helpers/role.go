package helpers

import (
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// HasPermission reports whether any of the roles may perform method on path.
func (a *Accounts) HasPermission(roles []string, path string, method string) bool {
	if len(roles) < 1 {
		return false
	}

	ps := [][]interface{}{}

	for _, r := range roles {
		ps = append(ps, []interface{}{r, path, method})
	}

	result, err := a.enforcer.BatchEnforce(ps)
	if err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Enforce error: %v", err))
		return false
	}

	for _, val := range result {
		if val {
			return true
		}
	}

	return false
}
