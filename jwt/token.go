package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	jose_jwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

type UserClaimData struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
}

type Claims struct {
	jose_jwt.Claims
	User UserClaimData `json:"user,omitempty"`
}

// ValidateAt checks the registered claims against the issuer and time given.
func (c Claims) ValidateAt(issuer string, now time.Time) error {
	if len(c.ID) < 1 {
		return errors.New("The token ID is empty.")
	}

	if err := c.Claims.ValidateWithLeeway(jose_jwt.Expected{Issuer: issuer, Time: now}, 0); err != nil {
		return err
	}

	sub, err := uuid.Parse(c.Subject)
	if err != nil || sub != c.User.ID {
		return errors.New("The subject is invalid.")
	}

	if len(c.User.Roles) < 1 {
		return errors.New("The user roles are invalid.")
	}

	return nil
}

// Issue signs the claims and wraps them in a compact JWE.
func (k *Keys) Issue(claims Claims) (string, error) {
	jwtStr, err := jose_jwt.Signed(k.signer).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("Error generating JWT: %w", err)
	}

	jwe, err := k.encrypter.Encrypt([]byte(jwtStr))
	if err != nil {
		return "", fmt.Errorf("Error generating JWE: %w", err)
	}

	jweStr, err := jwe.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("Error serializing JWE: %w", err)
	}

	return jweStr, nil
}

// Parse decrypts the JWE, verifies the inner signature and decodes the claims.
// Registered claims are not validated; see Claims.ValidateAt.
func (k *Keys) Parse(token string) (*Claims, error) {
	jwe, err := jose.ParseEncryptedCompact(token, []jose.KeyAlgorithm{keyAlgorithm}, []jose.ContentEncryption{contentEncryption})
	if err != nil {
		return nil, fmt.Errorf("Error parsing JWE: %w", err)
	}

	decrypted, err := jwe.Decrypt(k.Encryption.Private)
	if err != nil {
		return nil, fmt.Errorf("Error decrypting JWE: %w", err)
	}

	parsed, err := jose.ParseSigned(string(decrypted), []jose.SignatureAlgorithm{signatureAlgoritm})
	if err != nil {
		return nil, fmt.Errorf("Error parsing JWT: %w", err)
	}

	payload, err := parsed.Verify(k.Signing.Public)
	if err != nil {
		return nil, fmt.Errorf("Error verifying JWT: %w", err)
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, fmt.Errorf("Error decoding claims: %w", err)
	}

	return claims, nil
}
