package views

import (
	"bytes"
	"testing"

	"github.com/shihabsss1/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page string, c models.SiteContent) string {
	t.Helper()

	r, err := New()
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, r.Render(buf, page, c))

	return buf.String()
}

func TestRenderHome(t *testing.T) {
	c := models.Default()
	out := render(t, PageHome, c)

	assert.Contains(t, out, "<h1>Shihab Hossain</h1>")
	assert.Contains(t, out, "CSV Search Tool")
	assert.Contains(t, out, "class=\"icon-github\"")
	assert.Contains(t, out, "shihabhossain596@gmail.com")
	assert.NotContains(t, out, c.Contact.Phone)
	assert.Contains(t, out, "v1.1.0")
	assert.Contains(t, out, "<p>Currently, I")
}

func TestRenderContactVisibility(t *testing.T) {
	c := models.Default()
	hide := false
	show := true
	c.Contact.ShowEmail = &hide
	c.Contact.ShowPhone = &show

	out := render(t, PageHome, c)

	assert.NotContains(t, out, "mailto:"+c.Contact.Email)
	assert.Contains(t, out, c.Contact.Phone)
}

func TestRenderGallery(t *testing.T) {
	c := models.Default()
	c.Gallery.Images = []string{"https://cdn.example.com/portfolio/gallery/a.jpg"}

	out := render(t, PageGallery, c)
	assert.Contains(t, out, "Photo Gallery")
	assert.Contains(t, out, "https://cdn.example.com/portfolio/gallery/a.jpg")

	c.Gallery.Images = []string{}
	assert.Contains(t, render(t, PageGallery, c), "No images yet.")
}

func TestRenderExperience(t *testing.T) {
	out := render(t, PageExperience, models.Default())

	assert.Contains(t, out, "Genex (Grameenphone Digital)")
	assert.Contains(t, out, "2021 - 2023")
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	c := models.Default()
	c.About.Description = "Hello <script>alert(1)</script> **world**"

	out := render(t, PageHome, c)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<strong>world</strong>")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	assert.Error(t, r.Render(&bytes.Buffer{}, "admin", models.Default()))
}
