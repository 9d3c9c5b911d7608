package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		role   string
		path   string
		method string
		allow  bool
	}{
		{"editor", "/api/v1/admin/content", "PUT", true},
		{"editor", "/api/v1/admin/content", "DELETE", false},
		{"editor", "/api/v1/media/upload", "POST", true},
		{"editor", "/api/v1/media/delete", "POST", false},
		{"admin", "/api/v1/media/delete", "POST", true},
		{"admin", "/api/v1/admin/content", "PUT", true},
		{"admin", "/api/v1/auth/check", "POST", true},
		{"guest", "/api/v1/admin/content", "GET", false},
	}

	for _, tc := range cases {
		ok, err := e.Enforce(tc.role, tc.path, tc.method)
		require.NoError(t, err)
		assert.Equal(t, tc.allow, ok, "%s %s %s", tc.role, tc.method, tc.path)
	}
}
