package catalog

import (
	"time"

	"gorm.io/datatypes"

	"packsite/backend/internal/i18n"
)

// Product is a catalog entry on the public storefront. Pure CRUD: the
// only behavior it carries is locale resolution for its bilingual
// name/description pair.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"` // Thai name.
	NameEN        string         `gorm:"size:255" json:"name_en"`
	Description   string         `gorm:"type:text" json:"description"`
	DescriptionEN string         `gorm:"type:text" json:"description_en"`
	Category      string         `gorm:"size:128;index" json:"category"` // Tag, free text.
	Image         string         `gorm:"size:512" json:"image"`
	Gallery       datatypes.JSON `gorm:"type:text" json:"gallery"` // Additional image URLs as a JSON array.
	IsActive      bool           `gorm:"not null;default:true;index" json:"is_active"`
	IsFeatured    bool           `gorm:"not null;default:false" json:"is_featured"`
	SortOrder     int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Portfolio is a showcase item (past work / reference job) with the same
// shape and lifecycle as Product.
type Portfolio struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"` // Thai title.
	TitleEN       string    `gorm:"size:255" json:"title_en"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionEN string    `gorm:"type:text" json:"description_en"`
	Category      string    `gorm:"size:128;index" json:"category"`
	Image         string    `gorm:"size:512" json:"image"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	IsFeatured    bool      `gorm:"not null;default:false" json:"is_featured"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the singular-sounding entity on a conventional table.
func (Portfolio) TableName() string {
	return "portfolio_items"
}

// LocalizedName resolves the product display name.
func (p *Product) LocalizedName(locale i18n.Locale) string {
	return i18n.Resolve(locale, p.Name, map[i18n.Locale]string{
		i18n.LocaleEnglish: p.NameEN,
	})
}

// LocalizedDescription resolves the product display description.
func (p *Product) LocalizedDescription(locale i18n.Locale) string {
	return i18n.Resolve(locale, p.Description, map[i18n.Locale]string{
		i18n.LocaleEnglish: p.DescriptionEN,
	})
}

// LocalizedTitle resolves the portfolio display title.
func (p *Portfolio) LocalizedTitle(locale i18n.Locale) string {
	return i18n.Resolve(locale, p.Title, map[i18n.Locale]string{
		i18n.LocaleEnglish: p.TitleEN,
	})
}

// LocalizedDescription resolves the portfolio display description.
func (p *Portfolio) LocalizedDescription(locale i18n.Locale) string {
	return i18n.Resolve(locale, p.Description, map[i18n.Locale]string{
		i18n.LocaleEnglish: p.DescriptionEN,
	})
}
