package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	jose_jwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/jwt"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
)

const revokedTokenKey string = "access-tokens:revoked:%s"

func (a *Accounts) NewAccessToken(u *models.User) (string, error) {
	roles := u.RoleNames()
	if len(roles) < 1 {
		return "", errors.New("The user has no roles.")
	}

	issuer, err := utils.GetJwtIssuer()
	if err != nil {
		sentry.CaptureException(err)
		return "", fmt.Errorf("Invalid access token issuer '%s': %w", issuer, err)
	}

	now := time.Now().In(utils.DefaultLocation())

	token, err := a.keys.Issue(jwt.Claims{
		Claims: jose_jwt.Claims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jose_jwt.NewNumericDate(now),
			NotBefore: jose_jwt.NewNumericDate(now),
			Expiry:    jose_jwt.NewNumericDate(now.Add(utils.AccessTokenExpiration())),
		},
		User: jwt.UserClaimData{
			ID:    u.ID,
			Email: u.Email,
			Roles: roles,
		},
	})
	if err != nil {
		sentry.CaptureException(err)
		return "", fmt.Errorf("Error generating access token: %w", err)
	}

	return token, nil
}

// ParseAccessToken decrypts the token and validates its registered claims.
func (a *Accounts) ParseAccessToken(token string) (*jwt.Claims, error) {
	claims, err := a.keys.Parse(token)
	if err != nil {
		return nil, err
	}

	issuer, err := utils.GetJwtIssuer()
	if err != nil {
		return nil, fmt.Errorf("Invalid access token issuer '%s': %w", issuer, err)
	}

	if err := claims.ValidateAt(issuer, time.Now()); err != nil {
		return nil, err
	}

	return claims, nil
}

// RevokeAccessToken blocks the token until it expires.
func (a *Accounts) RevokeAccessToken(ctx context.Context, claims *jwt.Claims) error {
	ttl := time.Minute

	if claims.Expiry != nil {
		if d := time.Until(claims.Expiry.Time()); d > ttl {
			ttl = d
		}
	}

	return a.cache.Do(ctx, a.cache.B().Set().Key(fmt.Sprintf(revokedTokenKey, claims.ID)).Value("1").Ex(ttl).Build()).Error()
}

func (a *Accounts) IsAccessTokenRevoked(ctx context.Context, id string) (bool, error) {
	v, err := a.cache.DoCache(ctx, a.cache.B().Get().Key(fmt.Sprintf(revokedTokenKey, id)).Cache(), 5*time.Minute).ToString()
	if err != nil {
		if errors.Is(err, rueidis.Nil) {
			return false, nil
		}

		slog.Error(fmt.Sprintf("Could not check token revocation '%s': %v", id, err))

		return false, err
	}

	return len(v) > 0, nil
}
