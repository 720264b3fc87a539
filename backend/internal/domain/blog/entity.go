package blog

import (
	"time"

	"packsite/backend/internal/i18n"
)

// Section image placement relative to its text column.
const (
	ImagePositionLeft  = "left"
	ImagePositionRight = "right"
)

// Blog is a bilingual article on the public site. Thai fields are the
// primary content; English and Chinese columns are optional translations
// resolved at render time. A blog owns its sections outright: deleting
// the blog deletes them.
type Blog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`               // Thai title (primary language).
	TitleEN     string     `gorm:"size:255" json:"title_en"`                     // Optional English translation.
	TitleZH     string     `gorm:"size:255" json:"title_zh"`                     // Optional Chinese translation.
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`    // URL identifier, globally unique.
	Excerpt     string     `gorm:"type:text" json:"excerpt"`                     // Thai excerpt.
	ExcerptEN   string     `gorm:"type:text" json:"excerpt_en"`                  //
	ExcerptZH   string     `gorm:"type:text" json:"excerpt_zh"`                  //
	CoverImage  string     `gorm:"size:512" json:"cover_image"`                  // Cover image URL, may be empty.
	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`                    // Set on first publish, never cleared.
	CatalogType string     `gorm:"size:64" json:"catalog_type"`                  // Key into the static catalog image lookup.
	CategoryID  *uint      `gorm:"index" json:"category_id"`                     // Weak reference, may be null.
	ViewCount   uint64     `gorm:"not null;default:0" json:"view_count"`         // Approximate counter, at-least-once.
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Sections []Section `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"sections"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Section is one ordered content block of a blog body, optionally
// illustrated. Order is always normalized to the caller's array index on
// write, so the column carries rendering sequence and nothing else.
type Section struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BlogID        uint      `gorm:"not null;uniqueIndex:uk_blog_sections_order,priority:1;index" json:"blog_id"`
	Order         int       `gorm:"column:sort_order;not null;uniqueIndex:uk_blog_sections_order,priority:2" json:"order"`
	ImageURL      string    `gorm:"size:512" json:"image_url"`
	ImagePosition string    `gorm:"size:8;not null;default:'left'" json:"image_position"` // left or right.
	Content       string    `gorm:"type:text" json:"content"`    // Thai rich text.
	ContentEN     string    `gorm:"type:text" json:"content_en"` // Optional English rich text.
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the section table grouped under the blog namespace.
func (Section) TableName() string {
	return "blog_sections"
}

// Category is a named, slugged, colored tag referenced by zero or more
// blogs. The reference is weak: removing a category leaves blogs intact
// with a dangling-free null category.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`             // Thai name.
	NameEN    string    `gorm:"size:128" json:"name_en"`                   //
	Slug      string    `gorm:"size:128;not null;uniqueIndex" json:"slug"` //
	Color     string    `gorm:"size:16" json:"color"`                      // Hex display color, e.g. #0E7C66.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the plural form GORM would otherwise guess.
func (Category) TableName() string {
	return "blog_categories"
}

// LocalizedTitle resolves the display title for the requested locale.
func (b *Blog) LocalizedTitle(locale i18n.Locale) string {
	return i18n.Resolve(locale, b.Title, map[i18n.Locale]string{
		i18n.LocaleEnglish: b.TitleEN,
		i18n.LocaleChinese: b.TitleZH,
	})
}

// LocalizedExcerpt resolves the display excerpt for the requested locale.
func (b *Blog) LocalizedExcerpt(locale i18n.Locale) string {
	return i18n.Resolve(locale, b.Excerpt, map[i18n.Locale]string{
		i18n.LocaleEnglish: b.ExcerptEN,
		i18n.LocaleChinese: b.ExcerptZH,
	})
}

// LocalizedContent resolves a section body. Sections only carry an
// English layer, so Chinese requests fall straight back to Thai.
func (s *Section) LocalizedContent(locale i18n.Locale) string {
	return i18n.Resolve(locale, s.Content, map[i18n.Locale]string{
		i18n.LocaleEnglish: s.ContentEN,
	})
}

// LocalizedName resolves the category display name.
func (c *Category) LocalizedName(locale i18n.Locale) string {
	return i18n.Resolve(locale, c.Name, map[i18n.Locale]string{
		i18n.LocaleEnglish: c.NameEN,
	})
}
