package helpers

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shihabsss1/portfolio/app/rbac"
	"github.com/shihabsss1/portfolio/jwt"
	"github.com/shihabsss1/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccounts(t *testing.T) *Accounts {
	t.Helper()

	t.Setenv("APP_DOMAIN", "https://www.example.com")
	t.Setenv("APP_DEBUG", "false")

	keys, err := jwt.GenerateKeys()
	require.NoError(t, err)

	enforcer, err := rbac.NewEnforcer()
	require.NoError(t, err)

	return NewAccounts(nil, nil, enforcer, keys)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	a := newTestAccounts(t)
	u := &models.User{ID: uuid.New(), Email: "admin@example.com", Roles: []models.Role{{Name: models.RoleAdmin}}}

	token, err := a.NewAccessToken(u)
	require.NoError(t, err)

	claims, err := a.ParseAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, u.ID, claims.User.ID)
	assert.Equal(t, []string{models.RoleAdmin}, claims.User.Roles)
	assert.Equal(t, "example.com", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.Expiry.Time(), time.Minute)
}

func TestAccessTokenRequiresRoles(t *testing.T) {
	a := newTestAccounts(t)

	_, err := a.NewAccessToken(&models.User{ID: uuid.New(), Email: "admin@example.com"})
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	a := newTestAccounts(t)

	_, err := a.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	a := newTestAccounts(t)

	assert.True(t, a.HasPermission([]string{models.RoleEditor}, "/api/v1/admin/content", "PUT"))
	assert.False(t, a.HasPermission([]string{models.RoleEditor}, "/api/v1/media/delete", "POST"))
	assert.True(t, a.HasPermission([]string{models.RoleEditor, models.RoleAdmin}, "/api/v1/media/delete", "POST"))
	assert.False(t, a.HasPermission(nil, "/api/v1/admin/content", "PUT"))
}

func TestBuildContactMessage(t *testing.T) {
	t.Setenv("EMAIL_FROM", "noreply@example.com")
	t.Setenv("APP_NAME", "Portfolio")

	m := NewMailer(nil, filepath.Join("..", "templates", "email"))

	msg, err := m.BuildMessage(EmailOpts{
		Subject:      "New contact message",
		TemplateName: "contact_message",
		ToList:       []string{"owner@example.com"},
		ReplyTo:      "visitor@example.com",
	}, map[string]interface{}{
		"Name":    "Jane",
		"Email":   "visitor@example.com",
		"Message": "Hello there",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	_, err = msg.WriteTo(buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "New contact message - Portfolio")
	assert.Contains(t, out, "owner@example.com")
	assert.Contains(t, out, "visitor@example.com")
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "Hello there")
}

func TestBuildMessageValidation(t *testing.T) {
	m := NewMailer(nil, filepath.Join("..", "templates", "email"))

	t.Setenv("EMAIL_FROM", "")
	_, err := m.BuildMessage(EmailOpts{Subject: "x", TemplateName: "contact_message", ToList: []string{"a@example.com"}}, nil)
	assert.Error(t, err)

	t.Setenv("EMAIL_FROM", "noreply@example.com")
	_, err = m.BuildMessage(EmailOpts{Subject: "x", TemplateName: "contact_message"}, nil)
	assert.Error(t, err)

	_, err = m.BuildMessage(EmailOpts{Subject: "x", TemplateName: "missing", ToList: []string{"a@example.com"}}, nil)
	assert.Error(t, err)
}
