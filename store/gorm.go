package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shihabsss1/portfolio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgInsufficientPrivilege string = "42501"

// GormBackend stores the document as a single row with one JSON column per
// top-level field.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) Migrate() error {
	return g.db.AutoMigrate(&models.SiteDocument{})
}

func (g *GormBackend) Find(ctx context.Context) (models.SiteContent, error) {
	doc := &models.SiteDocument{}

	if err := g.db.WithContext(ctx).Where("id = ?", models.DocumentID).Take(doc).Error; err != nil {
		return models.SiteContent{}, classifyGormError(err)
	}

	return doc.Content(), nil
}

// Upsert issues one INSERT ... ON CONFLICT (id) statement. On conflict only the
// patched columns are taken from the inserted row.
func (g *GormBackend) Upsert(ctx context.Context, create models.SiteContent, patch models.ContentPatch) error {
	conflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
	}

	if fields := patch.Fields(); len(fields) > 0 {
		conflict.DoUpdates = clause.AssignmentColumns(append(fields, "updated_at"))
	} else {
		conflict.DoNothing = true
	}

	if err := g.db.WithContext(ctx).Clauses(conflict).Create(models.NewSiteDocument(create)).Error; err != nil {
		return classifyGormError(err)
	}

	return nil
}

func (g *GormBackend) Close(_ context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func classifyGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	pgErr := &pgconn.PgError{}
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgInsufficientPrivilege {
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}

		// Class 08: connection exception
		if strings.HasPrefix(pgErr.Code, "08") {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		return err
	}

	connErr := &pgconn.ConnectError{}
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}
