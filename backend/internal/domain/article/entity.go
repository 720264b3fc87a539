package article

import (
	"time"

	"packsite/backend/internal/i18n"
)

// Article lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Article is the simpler of the two content entities: both language
// layers are required (unlike Blog, where translations are optional),
// the category is free text rather than a foreign key, and the body is
// a single rich-text field instead of ordered sections.
type Article struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	TitleTH         string     `gorm:"size:255;not null" json:"title_th"` // Thai title, required.
	Title           string     `gorm:"size:255;not null" json:"title"`    // English title, required.
	Slug            string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ExcerptTH       string     `gorm:"type:text" json:"excerpt_th"`
	Excerpt         string     `gorm:"type:text" json:"excerpt"`
	ContentTH       string     `gorm:"type:text" json:"content_th"`
	Content         string     `gorm:"type:text" json:"content"`
	CoverImage      string     `gorm:"size:512" json:"cover_image"`
	Category        string     `gorm:"size:128;index" json:"category"` // Free text, not a foreign key.
	Status          string     `gorm:"size:16;not null;default:'draft';index" json:"status"`
	PublishedAt     *time.Time `gorm:"index" json:"published_at"` // Set on first transition to published, immutable thereafter.
	ViewCount       uint64     `gorm:"not null;default:0" json:"view_count"`
	MetaTitle       string     `gorm:"size:255" json:"meta_title"`       // Optional SEO override.
	MetaDescription string     `gorm:"size:512" json:"meta_description"` //
	AuthorID        *uint      `gorm:"index" json:"author_id"`           // Weak reference to the admin who wrote it.
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LocalizedTitle resolves the display title for the requested locale.
func (a *Article) LocalizedTitle(locale i18n.Locale) string {
	return i18n.Resolve(locale, a.TitleTH, map[i18n.Locale]string{
		i18n.LocaleEnglish: a.Title,
	})
}

// LocalizedExcerpt resolves the display excerpt.
func (a *Article) LocalizedExcerpt(locale i18n.Locale) string {
	return i18n.Resolve(locale, a.ExcerptTH, map[i18n.Locale]string{
		i18n.LocaleEnglish: a.Excerpt,
	})
}

// LocalizedContent resolves the display body.
func (a *Article) LocalizedContent(locale i18n.Locale) string {
	return i18n.Resolve(locale, a.ContentTH, map[i18n.Locale]string{
		i18n.LocaleEnglish: a.Content,
	})
}

// ValidStatus reports whether s is one of the recognised lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}
