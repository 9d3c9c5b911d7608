package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shihabsss1/portfolio/editor"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, s *store.Store, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd(func(_ context.Context) (*store.Store, error) {
		return s, nil
	})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func newStore() *store.Store {
	return store.New(store.NewMemoryBackend(), time.Second)
}

func TestContentSeedAndShow(t *testing.T) {
	s := newStore()

	out, _, err := run(t, s, "content", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	out, _, err = run(t, s, "content", "show", "--section", "hero")
	require.NoError(t, err)
	assert.Contains(t, out, models.Default().Hero.Title)
	assert.NotContains(t, out, "changelog")

	_, _, err = run(t, s, "content", "show", "--section", "nope")
	assert.Error(t, err)
}

func TestContentAddExperience(t *testing.T) {
	s := newStore()

	out, _, err := run(t, s, "content", "add-experience", "--company", "Acme", "--position", "Engineer", "--duration", "2024 - Present")
	require.NoError(t, err)
	assert.Contains(t, out, editor.MessageSaved)

	c := s.Current(context.Background())
	require.Len(t, c.Experiences, 3)
	assert.Equal(t, "Acme", c.Experiences[2].Company)
	assert.NotEmpty(t, c.Experiences[2].ID)
}

func TestContentAddProjectRequiresTitle(t *testing.T) {
	s := newStore()

	_, stderr, err := run(t, s, "content", "add-project", "--description", "Something")
	require.Error(t, err)
	assert.Contains(t, stderr, "title")

	assert.Len(t, s.Current(context.Background()).Projects, 2)
}

func TestContentAddChangelog(t *testing.T) {
	s := newStore()

	_, _, err := run(t, s, "content", "add-changelog", "--version", "1.2.0", "--title", "Gallery", "--date", "2024-01-02", "--change", "Added the gallery page")
	require.NoError(t, err)

	c := s.Current(context.Background())
	assert.Equal(t, "1.2.0", c.Changelog[0].Version)
	assert.Equal(t, []string{"Added the gallery page"}, c.Changelog[0].Changes)
}

func TestContentRemove(t *testing.T) {
	s := newStore()

	_, _, err := run(t, s, "content", "remove", "--list", "socials", "--index", "0")
	require.NoError(t, err)

	socials := s.Current(context.Background()).Socials
	require.Len(t, socials, 1)
	assert.Equal(t, "LinkedIn", socials[0].Platform)

	_, _, err = run(t, s, "content", "remove", "--list", "socials", "--index", "5")
	assert.ErrorIs(t, err, editor.ErrIndexOutOfRange)

	_, _, err = run(t, s, "content", "remove", "--list", "unknown", "--index", "0")
	assert.Error(t, err)
}

// unreadableBackend fails every read and records writes.
type unreadableBackend struct {
	writes int
}

func (b *unreadableBackend) Find(_ context.Context) (models.SiteContent, error) {
	return models.SiteContent{}, store.ErrUnavailable
}

func (b *unreadableBackend) Upsert(_ context.Context, _ models.SiteContent, _ models.ContentPatch) error {
	b.writes++
	return nil
}

func (b *unreadableBackend) Close(_ context.Context) error {
	return nil
}

func TestContentEditAbortsWhenDocumentUnreadable(t *testing.T) {
	b := &unreadableBackend{}
	s := store.New(b, time.Second)

	_, _, err := run(t, s, "content", "add-skill", "Go")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Zero(t, b.writes)

	_, _, err = run(t, s, "content", "remove", "--list", "skills", "--index", "0")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Zero(t, b.writes)
}
