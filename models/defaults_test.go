package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "Shihab Hossain", c.Hero.Title)
	assert.Len(t, c.Changelog, 2)
	assert.Equal(t, "1.1.0", c.Changelog[0].Version, "newest entry first")

	require.NotNil(t, c.Hero.Images)
	assert.Empty(t, c.Hero.Images)
	require.NotNil(t, c.Gallery)
	require.NotNil(t, c.Gallery.Images)
	assert.Empty(t, c.Gallery.Images)
	assert.NotEmpty(t, c.About.Skills)
	assert.NotEmpty(t, c.Experiences)
	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.Socials)
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Hero.Images = append(a.Hero.Images, "https://cdn.example.com/a.png")
	a.Changelog[0].Title = "changed"
	a.About.Skills[0] = "changed"

	b := Default()
	assert.Empty(t, b.Hero.Images)
	assert.Equal(t, "Performance & Reliability Improvements", b.Changelog[0].Title)
	assert.Equal(t, "Electronics Engineering", b.About.Skills[0])
}

func TestContactVisibility(t *testing.T) {
	yes := true
	no := false

	tests := []struct {
		name    string
		contact Contact
		email   bool
		phone   bool
		address bool
	}{
		{"unset", Contact{}, true, false, true},
		{"all enabled", Contact{ShowEmail: &yes, ShowPhone: &yes, ShowAddress: &yes}, true, true, true},
		{"all disabled", Contact{ShowEmail: &no, ShowPhone: &no, ShowAddress: &no}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.email, tt.contact.EmailVisible())
			assert.Equal(t, tt.phone, tt.contact.PhoneVisible())
			assert.Equal(t, tt.address, tt.contact.AddressVisible())
		})
	}
}

func TestSocialIcon(t *testing.T) {
	assert.Equal(t, IconGithub, SocialIcon("GitHub"))
	assert.Equal(t, IconLinkedin, SocialIcon(" LinkedIn "))
	assert.Equal(t, IconInstagram, SocialIcon("instagram"))
	assert.Equal(t, IconGlobe, SocialIcon("Mastodon"))
	assert.Equal(t, IconGlobe, SocialIcon(""))
}

func TestImageURLs(t *testing.T) {
	c := Default()
	c.Hero.Images = []string{"h1", "h2"}
	c.About.Photo = "photo"
	c.Projects[0].Image = "p1"
	c.Gallery.Images = []string{"g1"}

	assert.Equal(t, []string{"h1", "h2", "photo", "p1", "g1"}, c.ImageURLs())
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()

	assert.Equal(t, a, b)

	b.Projects[0].Tags[0] = "Changed"
	*b.Projects[0].Github = "https://github.com/changed"
	b.Gallery.Title = "Changed"
	b.Changelog[0].Changes[0] = "Changed"

	assert.NotEqual(t, "Changed", a.Projects[0].Tags[0])
	assert.Equal(t, "#", *a.Projects[0].Github)
	assert.NotEqual(t, "Changed", a.Gallery.Title)
	assert.NotEqual(t, "Changed", a.Changelog[0].Changes[0])
}

func TestIsKnownRole(t *testing.T) {
	assert.True(t, IsKnownRole(RoleAdmin))
	assert.True(t, IsKnownRole(RoleEditor))
	assert.False(t, IsKnownRole("root"))
}
