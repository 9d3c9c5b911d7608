package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ccojocar/zxcvbn-go"
	"golang.org/x/crypto/argon2"
)

const (
	minPassLen     int64 = 10
	defaultPassLen int64 = 12
	maxPassLen     int64 = 255
)

var errInvalidHash = errors.New("Invalid encoded hash format.")

// PasswordPolicy is the strength required for admin account passwords.
type PasswordPolicy struct {
	MinLength  int
	MinScore   int
	MinEntropy float64
}

// AdminPasswordPolicy reads the minimum length from MIN_PASSWORD_LENGTH. The
// admin account guards the whole site, so the score and entropy are fixed.
func AdminPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:  int(clampedInt("MIN_PASSWORD_LENGTH", minPassLen, defaultPassLen, maxPassLen)),
		MinScore:   3,
		MinEntropy: 50,
	}
}

func MinimumPasswordLength() int {
	return AdminPasswordPolicy().MinLength
}

// ValidatePasswordStrength checks p against the admin policy. Words tied to
// the account and the site are penalized by the strength estimate.
func ValidatePasswordStrength(p string, userInputs ...string) error {
	policy := AdminPasswordPolicy()

	if n := utf8.RuneCountInString(p); n < policy.MinLength {
		return fmt.Errorf("The password needs to be at least %d characters long. Please add %d more characters.", policy.MinLength, policy.MinLength-n)
	}

	inputs := []string{"portfolio", "admin", os.Getenv("APP_NAME")}
	for _, in := range userInputs {
		inputs = append(inputs, strings.Split(in, "@")...)
	}

	v := zxcvbn.PasswordStrength(p, CleanStringList(inputs))

	if v.Score < policy.MinScore {
		return fmt.Errorf("The password is too easy to guess. It scored %d out of 4, at least %d is required.", v.Score, policy.MinScore)
	}

	if v.Entropy < policy.MinEntropy {
		return errors.New("The password is too predictable. Use a longer password or mix more kinds of characters.")
	}

	return nil
}

// argon2Params are stored in the encoded hash so they can change without
// invalidating existing passwords.
type argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var defaultArgon2 = argon2Params{
	Memory:      64 * 1024,
	Iterations:  4,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword returns the PHC-style argon2id encoding of p.
func HashPassword(p string) string {
	a := defaultArgon2

	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		panic(fmt.Sprintf("Could not generate secure salt: %v", err))
	}

	key := argon2.IDKey([]byte(p), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Iterations, a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func ComparePasswordHash(p string, h string) bool {
	a, salt, key, err := decodeHash(h)
	if err != nil {
		return false
	}

	other := argon2.IDKey([]byte(p), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return subtle.ConstantTimeCompare(key, other) == 1
}

func decodeHash(h string) (argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=…,t=…,p=…", salt, key
	parts := strings.Split(h, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return argon2Params{}, nil, nil, errInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Params{}, nil, nil, errors.New("The version of the Argon2 algorithm is not compatible.")
	}

	a := argon2Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &a.Memory, &a.Iterations, &a.Parallelism); err != nil {
		return argon2Params{}, nil, nil, errInvalidHash
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return argon2Params{}, nil, nil, errInvalidHash
	}

	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(key) < 1 {
		return argon2Params{}, nil, nil, errInvalidHash
	}

	a.SaltLength = uint32(len(salt)) //#nosec G115
	a.KeyLength = uint32(len(key))   //#nosec G115

	return a, salt, key, nil
}

// IsValidEmail accepts a bare address only. Display names are rejected so a
// visitor supplied value can not smuggle extra text into mail headers.
func IsValidEmail(e string) bool {
	if len(e) < 1 || len(e) > 254 {
		return false
	}

	addr, err := mail.ParseAddress(e)

	return err == nil && addr.Address == e
}

// TokenContextKey is the fiber locals key holding the parsed access token claims.
func TokenContextKey() string {
	if k := strings.TrimSpace(os.Getenv("JWT_CONTEXT_KEY")); len(k) > 0 {
		return k
	}

	return "access_token"
}

// GetJwtIssuer derives the token issuer from APP_DOMAIN: the full host in
// debug mode, the registrable domain otherwise.
func GetJwtIssuer() (string, error) {
	d := os.Getenv("APP_DOMAIN")

	if IsDebug() {
		return GetDomainHostname(d)
	}

	return GetApexDomain(d)
}
