package editor

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
)

func (e *Editor) SetHero(h models.Hero) error {
	return e.mutate(func(c *models.SiteContent) error {
		if h.Images == nil {
			h.Images = c.Hero.Images
		}

		c.Hero = h

		return nil
	})
}

func (e *Editor) SetAbout(a models.About) error {
	return e.mutate(func(c *models.SiteContent) error {
		if a.Skills == nil {
			a.Skills = c.About.Skills
		}

		if a.Photo != c.About.Photo {
			e.forget(c.About.Photo)
		}

		c.About = a

		return nil
	})
}

func (e *Editor) SetContact(ct models.Contact) error {
	return e.mutate(func(c *models.SiteContent) error {
		c.Contact = ct
		return nil
	})
}

func (e *Editor) SetGalleryInfo(title string, description string) error {
	return e.mutate(func(c *models.SiteContent) error {
		ensureGallery(c)
		c.Gallery.Title = title
		c.Gallery.Description = description

		return nil
	})
}

func (e *Editor) AddSkill(skill string) error {
	return e.mutate(func(c *models.SiteContent) error {
		skill = utils.CleanString(skill)
		if err := validateValue("skill", skill); err != nil {
			return err
		}

		c.About.Skills = append(c.About.Skills, skill)

		return nil
	})
}

func (e *Editor) RemoveSkill(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		return removeAt(&c.About.Skills, i)
	})
}

func (e *Editor) AddHeroImage(url string) error {
	return e.mutate(func(c *models.SiteContent) error {
		url = strings.TrimSpace(url)
		if err := validateValue("image", url); err != nil {
			return err
		}

		c.Hero.Images = append(c.Hero.Images, url)

		return nil
	})
}

func (e *Editor) RemoveHeroImage(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		return removeMediaAt(e, &c.Hero.Images, i)
	})
}

func (e *Editor) SetAboutPhoto(url string) error {
	return e.mutate(func(c *models.SiteContent) error {
		url = strings.TrimSpace(url)
		if url != c.About.Photo {
			e.forget(c.About.Photo)
		}

		c.About.Photo = url

		return nil
	})
}

func (e *Editor) AddGalleryImage(url string) error {
	return e.mutate(func(c *models.SiteContent) error {
		url = strings.TrimSpace(url)
		if err := validateValue("image", url); err != nil {
			return err
		}

		ensureGallery(c)
		c.Gallery.Images = append(c.Gallery.Images, url)

		return nil
	})
}

func (e *Editor) RemoveGalleryImage(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		if c.Gallery == nil {
			return ErrIndexOutOfRange
		}

		return removeMediaAt(e, &c.Gallery.Images, i)
	})
}

// AddExperience appends x with a freshly generated id.
func (e *Editor) AddExperience(x models.Experience) (models.Experience, error) {
	err := e.mutate(func(c *models.SiteContent) error {
		if err := validateExperience(x); err != nil {
			return err
		}

		x.ID = newID(experienceIDs(c.Experiences))
		c.Experiences = append(c.Experiences, x)

		return nil
	})

	return x, err
}

func (e *Editor) UpdateExperience(i int, x models.Experience) error {
	return e.mutate(func(c *models.SiteContent) error {
		if i < 0 || i >= len(c.Experiences) {
			return ErrIndexOutOfRange
		}

		x.ID = c.Experiences[i].ID
		c.Experiences[i] = x

		return nil
	})
}

func (e *Editor) RemoveExperience(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		return removeAt(&c.Experiences, i)
	})
}

// AddProject appends p with a freshly generated id.
func (e *Editor) AddProject(p models.Project) (models.Project, error) {
	err := e.mutate(func(c *models.SiteContent) error {
		if err := validateProject(p); err != nil {
			return err
		}

		p.Tags = utils.CleanStringList(p.Tags)
		p.ID = newID(projectIDs(c.Projects))
		c.Projects = append(c.Projects, p)

		return nil
	})

	return p, err
}

func (e *Editor) UpdateProject(i int, p models.Project) error {
	return e.mutate(func(c *models.SiteContent) error {
		if i < 0 || i >= len(c.Projects) {
			return ErrIndexOutOfRange
		}

		if p.Tags == nil {
			p.Tags = c.Projects[i].Tags
		}

		if p.Image != c.Projects[i].Image {
			e.forget(c.Projects[i].Image)
		}

		p.ID = c.Projects[i].ID
		c.Projects[i] = p

		return nil
	})
}

func (e *Editor) RemoveProject(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		if i < 0 || i >= len(c.Projects) {
			return ErrIndexOutOfRange
		}

		e.forget(c.Projects[i].Image)

		return removeAt(&c.Projects, i)
	})
}

func (e *Editor) AddProjectTag(project int, tag string) error {
	return e.mutate(func(c *models.SiteContent) error {
		if project < 0 || project >= len(c.Projects) {
			return ErrIndexOutOfRange
		}

		tag = utils.CleanString(tag)
		if err := validateValue("tag", tag); err != nil {
			return err
		}

		c.Projects[project].Tags = append(c.Projects[project].Tags, tag)

		return nil
	})
}

func (e *Editor) RemoveProjectTag(project int, i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		if project < 0 || project >= len(c.Projects) {
			return ErrIndexOutOfRange
		}

		return removeAt(&c.Projects[project].Tags, i)
	})
}

// AddSocial appends s with a freshly generated id and an icon derived from
// its platform.
func (e *Editor) AddSocial(s models.Social) (models.Social, error) {
	err := e.mutate(func(c *models.SiteContent) error {
		if err := validateSocial(s); err != nil {
			return err
		}

		s.ID = newID(socialIDs(c.Socials))
		s.Icon = models.SocialIcon(s.Platform)
		c.Socials = append(c.Socials, s)

		return nil
	})

	return s, err
}

func (e *Editor) RemoveSocial(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		return removeAt(&c.Socials, i)
	})
}

// AddChangelogEntry prepends item so the newest release comes first.
func (e *Editor) AddChangelogEntry(item models.ChangelogItem) error {
	return e.mutate(func(c *models.SiteContent) error {
		if err := validateChangelogItem(item); err != nil {
			return err
		}

		item.Date = strings.TrimSpace(item.Date)
		item.Changes = utils.CleanStringList(item.Changes)
		c.Changelog = append([]models.ChangelogItem{item}, c.Changelog...)

		return nil
	})
}

func (e *Editor) RemoveChangelogEntry(i int) error {
	return e.mutate(func(c *models.SiteContent) error {
		return removeAt(&c.Changelog, i)
	})
}

func ensureGallery(c *models.SiteContent) {
	if c.Gallery == nil {
		c.Gallery = models.DefaultGallery()
	}
}

func removeAt[T any](s *[]T, i int) error {
	out, ok := utils.RemoveAt(*s, i)
	if !ok {
		return ErrIndexOutOfRange
	}

	*s = out

	return nil
}

func removeMediaAt(e *Editor, s *[]string, i int) error {
	if i < 0 || i >= len(*s) {
		return ErrIndexOutOfRange
	}

	e.forget((*s)[i])

	return removeAt(s, i)
}

// newID returns a UUID not present in taken.
func newID(taken map[string]bool) string {
	for {
		id := uuid.NewString()
		if !taken[id] {
			return id
		}
	}
}

func experienceIDs(list []models.Experience) map[string]bool {
	ids := make(map[string]bool, len(list))
	for _, x := range list {
		ids[x.ID] = true
	}

	return ids
}

func projectIDs(list []models.Project) map[string]bool {
	ids := make(map[string]bool, len(list))
	for _, p := range list {
		ids[p.ID] = true
	}

	return ids
}

func socialIDs(list []models.Social) map[string]bool {
	ids := make(map[string]bool, len(list))
	for _, s := range list {
		ids[s.ID] = true
	}

	return ids
}
