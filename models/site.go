package models

import "time"

// SiteDocument is the relational row backing the content document. Each
// top-level field lives in its own JSON column so a save can overwrite only
// the columns present in the payload.
type SiteDocument struct {
	ID          string          `gorm:"primaryKey;size:50;not null" json:"id"`
	Hero        Hero            `gorm:"serializer:json;not null" json:"hero"`
	About       About           `gorm:"serializer:json;not null" json:"about"`
	Experiences []Experience    `gorm:"serializer:json;not null" json:"experiences"`
	Gallery     *Gallery        `gorm:"serializer:json" json:"gallery,omitempty"`
	Projects    []Project       `gorm:"serializer:json;not null" json:"projects"`
	Socials     []Social        `gorm:"serializer:json;not null" json:"socials"`
	Contact     Contact         `gorm:"serializer:json;not null" json:"contact"`
	Changelog   []ChangelogItem `gorm:"serializer:json;not null" json:"changelog"`
	CreatedAt   time.Time       `gorm:"not null" json:"-"`
	UpdatedAt   time.Time       `gorm:"not null" json:"-"`
}

func (SiteDocument) TableName() string {
	return "site_documents"
}

func NewSiteDocument(c SiteContent) *SiteDocument {
	return &SiteDocument{
		ID:          DocumentID,
		Hero:        c.Hero,
		About:       c.About,
		Experiences: c.Experiences,
		Gallery:     c.Gallery,
		Projects:    c.Projects,
		Socials:     c.Socials,
		Contact:     c.Contact,
		Changelog:   c.Changelog,
	}
}

func (d SiteDocument) Content() SiteContent {
	return SiteContent{
		Hero:        d.Hero,
		About:       d.About,
		Experiences: d.Experiences,
		Gallery:     d.Gallery,
		Projects:    d.Projects,
		Socials:     d.Socials,
		Contact:     d.Contact,
		Changelog:   d.Changelog,
	}
}
