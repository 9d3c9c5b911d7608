package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("STORE_TIMEOUT_SECONDS", "")
		assert.Equal(t, 10*time.Second, StoreTimeout())
	})

	t.Run("clamped", func(t *testing.T) {
		t.Setenv("STORE_TIMEOUT_SECONDS", "600")
		assert.Equal(t, 60*time.Second, StoreTimeout())

		t.Setenv("STORE_TIMEOUT_SECONDS", "0")
		assert.Equal(t, time.Second, StoreTimeout())
	})
}

func TestMediaMaxSize(t *testing.T) {
	t.Setenv("MEDIA_MAX_SIZE_MB", "5")
	assert.Equal(t, int64(5*1024*1024), MediaMaxSize())
}

func TestContentBackend(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "")
	assert.Equal(t, BackendPostgres, ContentBackend())

	t.Setenv("CONTENT_BACKEND", "Mongo")
	assert.Equal(t, BackendMongo, ContentBackend())

	t.Setenv("CONTENT_BACKEND", "dynamodb")
	assert.Equal(t, BackendPostgres, ContentBackend())
}

func TestPasswordHash(t *testing.T) {
	h := HashPassword("correct horse battery staple")

	assert.True(t, ComparePasswordHash("correct horse battery staple", h))
	assert.False(t, ComparePasswordHash("wrong", h))
	assert.False(t, ComparePasswordHash("anything", "not-a-hash"))
}

func TestAddError(t *testing.T) {
	errs := fiber.Map{}
	errs = AddError(errs, "title", "a")
	errs = AddError(errs, "title", "b")

	assert.Equal(t, []string{"a", "b"}, errs["title"])
}

func TestCleanStringList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust now"}, CleanStringList([]string{" Go ", "", "Go", "Rust   now"}))
	assert.Empty(t, CleanStringList(nil))
}

func TestRemoveAt(t *testing.T) {
	in := []string{"a", "b", "c"}

	out, ok := RemoveAt(in, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, out)
	assert.Equal(t, []string{"a", "b", "c"}, in, "input is not modified")

	_, ok = RemoveAt(in, 3)
	assert.False(t, ok)

	_, ok = RemoveAt(in, -1)
	assert.False(t, ok)
}

func TestGetApexDomain(t *testing.T) {
	d, err := GetApexDomain("https://www.shihab.example.co.uk/admin")
	require.NoError(t, err)
	assert.Equal(t, "example.co.uk", d)

	_, err = GetApexDomain("")
	assert.Error(t, err)
}

func TestAdminPasswordPolicy(t *testing.T) {
	t.Setenv("MIN_PASSWORD_LENGTH", "")
	assert.Equal(t, 12, AdminPasswordPolicy().MinLength)

	t.Setenv("MIN_PASSWORD_LENGTH", "4")
	assert.Equal(t, 10, MinimumPasswordLength())
}

func TestValidatePasswordStrength(t *testing.T) {
	t.Setenv("MIN_PASSWORD_LENGTH", "12")

	err := ValidatePasswordStrength("short", "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 12 characters")

	assert.Error(t, ValidatePasswordStrength("portfolioportfolio", "admin@example.com"))
	assert.NoError(t, ValidatePasswordStrength("t7#Kq!vZ2m@Lp9$wXr", "admin@example.com", "Shihab"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("visitor@example.com"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not an email"))
	assert.False(t, IsValidEmail("Visitor <visitor@example.com>"))
}

func TestDecodeHashRejectsOtherAlgorithms(t *testing.T) {
	h := HashPassword("correct horse battery staple")

	assert.False(t, ComparePasswordHash("correct horse battery staple", strings.Replace(h, "argon2id", "argon2i", 1)))
}
