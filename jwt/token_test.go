package jwt

import (
	"testing"
	"time"

	jose_jwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims(now time.Time) Claims {
	id := uuid.New()

	return Claims{
		Claims: jose_jwt.Claims{
			ID:        uuid.NewString(),
			Issuer:    "example.com",
			Subject:   id.String(),
			IssuedAt:  jose_jwt.NewNumericDate(now),
			NotBefore: jose_jwt.NewNumericDate(now),
			Expiry:    jose_jwt.NewNumericDate(now.Add(time.Hour)),
		},
		User: UserClaimData{ID: id, Email: "admin@example.com", Roles: []string{"admin"}},
	}
}

func TestIssueAndParse(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	now := time.Now()
	claims := testClaims(now)

	token, err := keys.Issue(claims)
	require.NoError(t, err)

	parsed, err := keys.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, claims.User, parsed.User)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.NoError(t, parsed.ValidateAt("example.com", now.Add(time.Minute)))
}

func TestParseRejectsForeignKeys(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	other, err := GenerateKeys()
	require.NoError(t, err)

	token, err := other.Issue(testClaims(time.Now()))
	require.NoError(t, err)

	_, err = keys.Parse(token)
	assert.Error(t, err)

	_, err = keys.Parse("not-a-token")
	assert.Error(t, err)
}

func TestValidateAt(t *testing.T) {
	now := time.Now()
	claims := testClaims(now)

	assert.Error(t, claims.ValidateAt("other.com", now), "issuer mismatch")
	assert.Error(t, claims.ValidateAt("example.com", now.Add(2*time.Hour)), "expired")

	claims.Subject = uuid.NewString()
	assert.Error(t, claims.ValidateAt("example.com", now), "subject mismatch")
}

func TestSaveAndLoadKeys(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, keys.Save(dir))

	loaded, err := LoadKeys(dir)
	require.NoError(t, err)

	token, err := keys.Issue(testClaims(time.Now()))
	require.NoError(t, err)

	_, err = loaded.Parse(token)
	assert.NoError(t, err)
}
