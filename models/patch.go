package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	FieldHero        string = "hero"
	FieldAbout       string = "about"
	FieldExperiences string = "experiences"
	FieldGallery     string = "gallery"
	FieldProjects    string = "projects"
	FieldSocials     string = "socials"
	FieldContact     string = "contact"
	FieldChangelog   string = "changelog"
)

// ContentPatch is a partial document. A nil field is absent from the payload
// and is left untouched by a save; a non-nil field replaces the stored value.
type ContentPatch struct {
	Hero        *Hero            `json:"hero,omitempty"`
	About       *About           `json:"about,omitempty"`
	Experiences *[]Experience    `json:"experiences,omitempty"`
	Gallery     *Gallery         `json:"gallery,omitempty"`
	Projects    *[]Project       `json:"projects,omitempty"`
	Socials     *[]Social        `json:"socials,omitempty"`
	Contact     *Contact         `json:"contact,omitempty"`
	Changelog   *[]ChangelogItem `json:"changelog,omitempty"`
}

// Fields lists the document fields present in the patch, in document order.
func (p ContentPatch) Fields() []string {
	fields := []string{}

	if p.Hero != nil {
		fields = append(fields, FieldHero)
	}

	if p.About != nil {
		fields = append(fields, FieldAbout)
	}

	if p.Experiences != nil {
		fields = append(fields, FieldExperiences)
	}

	if p.Gallery != nil {
		fields = append(fields, FieldGallery)
	}

	if p.Projects != nil {
		fields = append(fields, FieldProjects)
	}

	if p.Socials != nil {
		fields = append(fields, FieldSocials)
	}

	if p.Contact != nil {
		fields = append(fields, FieldContact)
	}

	if p.Changelog != nil {
		fields = append(fields, FieldChangelog)
	}

	return fields
}

func (p ContentPatch) IsEmpty() bool {
	return len(p.Fields()) < 1
}

// Apply overwrites the fields of c that are present in the patch.
func (p ContentPatch) Apply(c *SiteContent) {
	if p.Hero != nil {
		c.Hero = *p.Hero
	}

	if p.About != nil {
		c.About = *p.About
	}

	if p.Experiences != nil {
		c.Experiences = *p.Experiences
	}

	if p.Gallery != nil {
		g := *p.Gallery
		c.Gallery = &g
	}

	if p.Projects != nil {
		c.Projects = *p.Projects
	}

	if p.Socials != nil {
		c.Socials = *p.Socials
	}

	if p.Contact != nil {
		c.Contact = *p.Contact
	}

	if p.Changelog != nil {
		c.Changelog = *p.Changelog
	}
}

// PatchFrom builds a patch carrying every field of c. The gallery is only
// included when the document has one.
func PatchFrom(c SiteContent) ContentPatch {
	p := ContentPatch{
		Hero:        &c.Hero,
		About:       &c.About,
		Experiences: &c.Experiences,
		Projects:    &c.Projects,
		Socials:     &c.Socials,
		Contact:     &c.Contact,
		Changelog:   &c.Changelog,
	}

	if c.Gallery != nil {
		p.Gallery = c.Gallery
	}

	return p
}

// Merged returns the defaults with the patch applied on top.
func Merged(p ContentPatch) SiteContent {
	c := Default()
	p.Apply(&c)

	return c
}

// Normalize assigns ids to list entries missing one, derives missing social
// icons and rejects duplicate ids.
func (p *ContentPatch) Normalize() error {
	if p.Experiences != nil {
		ids := make([]*string, 0, len(*p.Experiences))
		for i := range *p.Experiences {
			ids = append(ids, &(*p.Experiences)[i].ID)
		}

		if err := assignIDs(FieldExperiences, ids); err != nil {
			return err
		}
	}

	if p.Projects != nil {
		ids := make([]*string, 0, len(*p.Projects))
		for i := range *p.Projects {
			ids = append(ids, &(*p.Projects)[i].ID)

			if (*p.Projects)[i].Tags == nil {
				(*p.Projects)[i].Tags = []string{}
			}
		}

		if err := assignIDs(FieldProjects, ids); err != nil {
			return err
		}
	}

	if p.Socials != nil {
		ids := make([]*string, 0, len(*p.Socials))
		for i := range *p.Socials {
			s := &(*p.Socials)[i]
			ids = append(ids, &s.ID)

			if len(s.Icon) < 1 {
				s.Icon = SocialIcon(s.Platform)
			}
		}

		if err := assignIDs(FieldSocials, ids); err != nil {
			return err
		}
	}

	return nil
}

func assignIDs(field string, ids []*string) error {
	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		*id = strings.TrimSpace(*id)

		if len(*id) < 1 {
			continue
		}

		if seen[*id] {
			return fmt.Errorf("Duplicated id '%s' in %s.", *id, field)
		}

		seen[*id] = true
	}

	for _, id := range ids {
		for len(*id) < 1 {
			if candidate := uuid.NewString(); !seen[candidate] {
				*id = candidate
				seen[candidate] = true
			}
		}
	}

	return nil
}
