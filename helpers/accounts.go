package helpers

import (
	"github.com/casbin/casbin/v2"
	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/jwt"
	"gorm.io/gorm"
)

// Accounts groups the admin account operations: credentials, access tokens
// and permissions.
type Accounts struct {
	db       *gorm.DB
	cache    rueidis.Client
	enforcer *casbin.SyncedEnforcer
	keys     *jwt.Keys
}

func NewAccounts(db *gorm.DB, cache rueidis.Client, enforcer *casbin.SyncedEnforcer, keys *jwt.Keys) *Accounts {
	return &Accounts{db: db, cache: cache, enforcer: enforcer, keys: keys}
}
