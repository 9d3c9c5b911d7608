package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shihabsss1/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	b := NewGormBackend(db)
	require.NoError(t, b.Migrate())

	s := New(b, time.Second)
	t.Cleanup(func() {
		assert.NoError(t, s.Close(context.Background()))
	})

	return s
}

func TestGormFindMissing(t *testing.T) {
	s := newGormStore(t)

	_, err := s.backend.Find(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormSaveCreatesMergedDocument(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	show := true
	contact := models.Contact{Email: "me@example.com", ShowPhone: &show}
	require.NoError(t, s.Save(ctx, models.ContentPatch{Contact: &contact}))

	want := models.Default()
	want.Contact = contact

	if diff := cmp.Diff(want, s.Load(ctx)); diff != "" {
		t.Errorf("stored document mismatch (-want +got):\n%s", diff)
	}
}

func TestGormSaveOnlyOverwritesPresentFields(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	hero := models.Hero{Title: "A", Images: []string{"https://cdn.example.com/1.jpg"}}
	require.NoError(t, s.Save(ctx, models.ContentPatch{Hero: &hero}))

	projects := []models.Project{}
	require.NoError(t, s.Save(ctx, models.ContentPatch{Projects: &projects}))

	c := s.Load(ctx)
	assert.Equal(t, hero, c.Hero)
	assert.Empty(t, c.Projects)
	assert.Equal(t, models.Default().Experiences, c.Experiences)
}

func TestGormEmptyPatch(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	require.NoError(t, s.Save(ctx, models.ContentPatch{}))
	require.NoError(t, s.Save(ctx, models.ContentPatch{}))

	if diff := cmp.Diff(models.Default(), s.Load(ctx)); diff != "" {
		t.Errorf("stored document mismatch (-want +got):\n%s", diff)
	}
}

func TestGormGalleryBackfill(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	legacy := models.Default()
	legacy.Gallery = nil
	require.NoError(t, s.backend.Upsert(ctx, legacy, models.ContentPatch{}))

	assert.Nil(t, s.Load(ctx).Gallery)

	c := s.Current(ctx)
	require.NoError(t, s.SaveAll(ctx, c))
	assert.Equal(t, models.DefaultGallery(), s.Load(ctx).Gallery)
}

func TestGormRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newGormStore(t)

	c := s.Current(ctx)
	require.NoError(t, s.SaveAll(ctx, c))
	require.NoError(t, s.SaveAll(ctx, s.Load(ctx)))

	if diff := cmp.Diff(c, s.Load(ctx)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
