package app

import (
	"fmt"
	"os"

	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/app/rbac"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/jwt"
	"gorm.io/gorm"
)

func keyPath() string {
	if p := os.Getenv("JWT_KEY_PATH"); len(p) > 0 {
		return p
	}

	return jwt.DefaultKeyPath
}

// NewAccounts loads the token keys and the access policy.
func NewAccounts(db *gorm.DB, cache rueidis.Client) (*helpers.Accounts, error) {
	keys, err := jwt.LoadKeys(keyPath())
	if err != nil {
		return nil, fmt.Errorf("Could not load access token keys: %w", err)
	}

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}

	return helpers.NewAccounts(db, cache, enforcer, keys), nil
}
