package models

import (
	"slices"
	"strings"
)

type Hero struct {
	Title      string   `json:"title" bson:"title"`
	Subtitle   string   `json:"subtitle" bson:"subtitle"`
	ButtonText string   `json:"buttonText" bson:"buttonText"`
	ButtonLink string   `json:"buttonLink" bson:"buttonLink"`
	Images     []string `json:"images" bson:"images"`
}

type About struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Photo       string   `json:"photo" bson:"photo"`
	Skills      []string `json:"skills" bson:"skills"`
}

type Experience struct {
	ID          string `json:"id" bson:"id"`
	Company     string `json:"company" bson:"company"`
	Position    string `json:"position" bson:"position"`
	Duration    string `json:"duration" bson:"duration"`
	Description string `json:"description" bson:"description"`
}

type Project struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Image       string   `json:"image" bson:"image"`
	Tags        []string `json:"tags" bson:"tags"`
	Link        string   `json:"link" bson:"link"`
	Github      *string  `json:"github,omitempty" bson:"github,omitempty"`
}

type Social struct {
	ID       string `json:"id" bson:"id"`
	Platform string `json:"platform" bson:"platform"`
	Link     string `json:"link" bson:"link"`
	Icon     string `json:"icon" bson:"icon"`
}

// Contact visibility flags are optional: email and address are shown unless
// explicitly disabled, the phone number is hidden unless explicitly enabled.
type Contact struct {
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	Address     string `json:"address" bson:"address"`
	ShowEmail   *bool  `json:"showEmail,omitempty" bson:"showEmail,omitempty"`
	ShowPhone   *bool  `json:"showPhone,omitempty" bson:"showPhone,omitempty"`
	ShowAddress *bool  `json:"showAddress,omitempty" bson:"showAddress,omitempty"`
}

func (c Contact) EmailVisible() bool {
	return c.ShowEmail == nil || *c.ShowEmail
}

func (c Contact) PhoneVisible() bool {
	return c.ShowPhone != nil && *c.ShowPhone
}

func (c Contact) AddressVisible() bool {
	return c.ShowAddress == nil || *c.ShowAddress
}

type Gallery struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Images      []string `json:"images" bson:"images"`
}

type ChangelogItem struct {
	Date    string   `json:"date" bson:"date"`
	Version string   `json:"version" bson:"version"`
	Title   string   `json:"title" bson:"title"`
	Changes []string `json:"changes" bson:"changes"`
}

// SiteContent is the single persisted content document of the site.
// Gallery was introduced after the first deployments and may be absent from
// stored documents; see Upgrade.
type SiteContent struct {
	Hero        Hero            `json:"hero" bson:"hero"`
	About       About           `json:"about" bson:"about"`
	Experiences []Experience    `json:"experiences" bson:"experiences"`
	Gallery     *Gallery        `json:"gallery,omitempty" bson:"gallery,omitempty"`
	Projects    []Project       `json:"projects" bson:"projects"`
	Socials     []Social        `json:"socials" bson:"socials"`
	Contact     Contact         `json:"contact" bson:"contact"`
	Changelog   []ChangelogItem `json:"changelog" bson:"changelog"`
}

const (
	IconGithub    string = "github"
	IconLinkedin  string = "linkedin"
	IconTwitter   string = "twitter"
	IconInstagram string = "instagram"
	IconFacebook  string = "facebook"
	IconGlobe     string = "globe"
)

// SocialIcon maps a platform name to the icon key used by the pages.
func SocialIcon(platform string) string {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case IconGithub:
		return IconGithub
	case IconLinkedin:
		return IconLinkedin
	case IconTwitter:
		return IconTwitter
	case IconInstagram:
		return IconInstagram
	case IconFacebook:
		return IconFacebook
	default:
		return IconGlobe
	}
}

// ImageURLs returns every media URL referenced by the document.
func (c SiteContent) ImageURLs() []string {
	urls := []string{}

	urls = append(urls, c.Hero.Images...)

	if len(c.About.Photo) > 0 {
		urls = append(urls, c.About.Photo)
	}

	for _, p := range c.Projects {
		if len(p.Image) > 0 {
			urls = append(urls, p.Image)
		}
	}

	if c.Gallery != nil {
		urls = append(urls, c.Gallery.Images...)
	}

	return urls
}

// Clone returns a deep copy of c.
func (c SiteContent) Clone() SiteContent {
	out := c

	out.Hero.Images = slices.Clone(c.Hero.Images)
	out.About.Skills = slices.Clone(c.About.Skills)
	out.Experiences = slices.Clone(c.Experiences)
	out.Socials = slices.Clone(c.Socials)

	if c.Projects != nil {
		out.Projects = make([]Project, len(c.Projects))
		for i, p := range c.Projects {
			p.Tags = slices.Clone(p.Tags)
			if p.Github != nil {
				g := *p.Github
				p.Github = &g
			}
			out.Projects[i] = p
		}
	}

	if c.Gallery != nil {
		g := *c.Gallery
		g.Images = slices.Clone(c.Gallery.Images)
		out.Gallery = &g
	}

	out.Contact.ShowEmail = cloneBool(c.Contact.ShowEmail)
	out.Contact.ShowPhone = cloneBool(c.Contact.ShowPhone)
	out.Contact.ShowAddress = cloneBool(c.Contact.ShowAddress)

	if c.Changelog != nil {
		out.Changelog = make([]ChangelogItem, len(c.Changelog))
		for i, item := range c.Changelog {
			item.Changes = slices.Clone(item.Changes)
			out.Changelog[i] = item
		}
	}

	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}

	v := *b

	return &v
}
