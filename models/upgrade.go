package models

// Migration brings a stored document up to a newer schema version. Apply must
// be idempotent and report whether it changed the document.
type Migration struct {
	Version int
	Name    string
	Apply   func(c *SiteContent) bool
}

// Migrations are run in order on every load.
var Migrations = []Migration{
	{Version: 1, Name: "normalize-lists", Apply: normalizeLists},
	{Version: 1, Name: "derive-social-icons", Apply: deriveSocialIcons},
	{Version: 2, Name: "gallery", Apply: backfillGallery},
}

// SchemaVersion is the newest document version known to this build.
func SchemaVersion() int {
	v := 0

	for _, m := range Migrations {
		if m.Version > v {
			v = m.Version
		}
	}

	return v
}

// Upgrade runs every migration against c and returns the names of those that
// modified it.
func Upgrade(c *SiteContent) []string {
	applied := []string{}

	for _, m := range Migrations {
		if m.Apply(c) {
			applied = append(applied, m.Name)
		}
	}

	return applied
}

func backfillGallery(c *SiteContent) bool {
	if c.Gallery != nil {
		if c.Gallery.Images == nil {
			c.Gallery.Images = []string{}
			return true
		}

		return false
	}

	c.Gallery = DefaultGallery()

	return true
}

func deriveSocialIcons(c *SiteContent) bool {
	changed := false

	for i := range c.Socials {
		if len(c.Socials[i].Icon) < 1 {
			c.Socials[i].Icon = SocialIcon(c.Socials[i].Platform)
			changed = true
		}
	}

	return changed
}

func normalizeLists(c *SiteContent) bool {
	changed := false

	fill := func(s *[]string) {
		if *s == nil {
			*s = []string{}
			changed = true
		}
	}

	fill(&c.Hero.Images)
	fill(&c.About.Skills)

	if c.Experiences == nil {
		c.Experiences = []Experience{}
		changed = true
	}

	if c.Projects == nil {
		c.Projects = []Project{}
		changed = true
	}

	for i := range c.Projects {
		fill(&c.Projects[i].Tags)
	}

	if c.Socials == nil {
		c.Socials = []Social{}
		changed = true
	}

	if c.Changelog == nil {
		c.Changelog = []ChangelogItem{}
		changed = true
	}

	for i := range c.Changelog {
		fill(&c.Changelog[i].Changes)
	}

	return changed
}
