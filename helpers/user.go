package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("The user credentials are invalid.")

func (a *Accounts) UserExists(ctx context.Context, id uuid.UUID, email string) bool {
	if !utils.IsValidUuid(id) || !utils.IsValidEmail(email) {
		return false
	}

	key := fmt.Sprintf("user:%s", id.String())

	cachedUser, err := a.cache.DoCache(ctx, a.cache.B().Get().Key(key).Cache(), 5*time.Minute).ToString()
	if err != nil && !errors.Is(err, rueidis.Nil) {
		slog.Warn(fmt.Sprintf("Could not get cached user: %v", err))
	}

	if len(cachedUser) > 0 && cachedUser == email {
		return true
	}

	user := &models.User{}
	if err := a.db.WithContext(ctx).Where("id = ? AND email = ? AND active = ?", id, email, true).First(user).Error; err != nil {
		return false
	}

	if err := a.cache.Do(ctx, a.cache.B().Set().Key(key).Value(user.Email).Ex(time.Hour).Build()).Error(); err != nil {
		slog.Error(fmt.Sprintf("Could not save user to cache: %v", err))
	}

	return true
}

// Authenticate returns the active user matching the credentials, with its
// roles loaded.
func (a *Accounts) Authenticate(ctx context.Context, email string, password string) (*models.User, error) {
	user := &models.User{}

	if err := a.db.WithContext(ctx).Preload("Roles").
		Where("lower(email) = lower(?) AND active = ?", strings.TrimSpace(email), true).
		First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !utils.ComparePasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().In(utils.DefaultLocation())
	if err := a.db.WithContext(ctx).Model(user).Update("last_login", &now).Error; err != nil {
		slog.Warn(fmt.Sprintf("Could not update last login of %s: %v", user.Email, err))
	}

	return user, nil
}

// CreateUser stores a new active account with the given role.
func (a *Accounts) CreateUser(ctx context.Context, name string, email string, password string, role string) (*models.User, error) {
	errs := []string{}
	email = strings.ToLower(strings.TrimSpace(email))

	if !utils.IsValidEmail(email) {
		errs = append(errs, "Please, enter a valid email address.")
	}

	if !models.IsKnownRole(role) {
		errs = append(errs, fmt.Sprintf("The role '%s' does not exist.", role))
	}

	if err := utils.ValidatePasswordStrength(password, email, name); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, " "))
	}

	active := true
	user := &models.User{
		Name:     utils.ToStringPtr(name),
		Email:    email,
		Password: utils.HashPassword(password),
		Active:   &active,
	}

	if err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &models.Role{}
		if err := tx.Where("name = ?", role).First(r).Error; err != nil {
			return fmt.Errorf("Invalid role '%s': %w", role, err)
		}

		user.Roles = []models.Role{*r}

		return tx.Create(user).Error
	}); err != nil {
		return nil, fmt.Errorf("Could not create user account: %w", err)
	}

	return user, nil
}
