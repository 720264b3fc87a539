package blog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/blog"
	"packsite/backend/internal/i18n"
	"packsite/backend/internal/infra/catalogimg"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/metrics"
	"packsite/backend/internal/repository"
)

// Sentinel errors the handlers map onto response codes.
var (
	ErrNotFound         = errors.New("blog not found")
	ErrCategoryNotFound = errors.New("blog category not found")
	ErrDuplicateSlug    = errors.New("slug already in use")
	ErrValidation       = errors.New("invalid blog payload")
)

// RelatedLimit caps the related-posts strip on a blog detail page.
const RelatedLimit = 4

// Service covers the public blog read path and the admin mutation path,
// including category management.
type Service struct {
	blogs      *repository.BlogRepository
	categories *repository.CategoryRepository
	log        *zap.SugaredLogger
}

// NewService constructs the blog service.
func NewService(blogs *repository.BlogRepository, categories *repository.CategoryRepository) *Service {
	return &Service{
		blogs:      blogs,
		categories: categories,
		log:        logger.S().With("component", "blog-service"),
	}
}

// CategoryView is a localized category attached to public responses.
type CategoryView struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Card is the localized list representation of a blog.
type Card struct {
	ID          uint          `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt"`
	CoverImage  string        `json:"cover_image"`
	CatalogType string        `json:"catalog_type,omitempty"`
	PublishedAt *time.Time    `json:"published_at"`
	ViewCount   uint64        `json:"view_count"`
	Category    *CategoryView `json:"category,omitempty"`
}

// SectionView is one localized content block of a blog detail page.
type SectionView struct {
	ID            uint   `json:"id"`
	Order         int    `json:"order"`
	ImageURL      string `json:"image_url"`
	ImagePosition string `json:"image_position"`
	Content       string `json:"content"`
}

// Detail is the full localized blog page payload: the card, its ordered
// sections, the catalog image strip when the blog carries a catalog
// type, and a short related-posts list.
type Detail struct {
	Card
	Sections      []SectionView        `json:"sections"`
	CatalogImages *catalogimg.ImageSet `json:"catalog_images,omitempty"`
	Related       []Card               `json:"related"`
}

// GetBySlug returns the published blog behind slug, localized for the
// requested locale, and counts the view. Drafts are reported exactly
// like missing slugs. A storage failure on this public read degrades to
// NotFound rather than erroring the page.
func (s *Service) GetBySlug(ctx context.Context, slug, locale string) (*Detail, error) {
	lang := i18n.Normalize(locale)

	entry, err := s.blogs.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warnw("blog lookup degraded to not found", "slug", slug, "error", err)
		return nil, ErrNotFound
	}

	if err := s.blogs.IncrementViewCount(ctx, entry.ID); err != nil {
		s.log.Warnw("view count increment failed", "blog_id", entry.ID, "error", err)
	} else {
		entry.ViewCount++
	}
	metrics.ObserveContentView("blog")

	detail := &Detail{
		Card:     s.toCard(entry, lang),
		Sections: make([]SectionView, 0, len(entry.Sections)),
		Related:  []Card{},
	}
	for i := range entry.Sections {
		section := &entry.Sections[i]
		detail.Sections = append(detail.Sections, SectionView{
			ID:            section.ID,
			Order:         section.Order,
			ImageURL:      section.ImageURL,
			ImagePosition: section.ImagePosition,
			Content:       section.LocalizedContent(lang),
		})
	}
	if set, ok := catalogimg.Lookup(entry.CatalogType); ok {
		detail.CatalogImages = &set
	}

	related, err := s.blogs.ListRelated(ctx, entry.ID, entry.CategoryID, RelatedLimit)
	if err != nil {
		s.log.Warnw("related blogs unavailable", "blog_id", entry.ID, "error", err)
	} else {
		for i := range related {
			detail.Related = append(detail.Related, s.toCard(&related[i], lang))
		}
	}

	return detail, nil
}

// List returns published blogs newest-first, localized, optionally
// filtered by category slug and truncated to limit. Storage failures on
// this public read degrade to an empty list.
func (s *Service) List(ctx context.Context, locale, categorySlug string, limit int) ([]Card, error) {
	lang := i18n.Normalize(locale)

	var categoryID *uint
	if categorySlug != "" {
		category, err := s.categories.FindBySlug(ctx, categorySlug)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warnw("category filter unavailable", "slug", categorySlug, "error", err)
			}
			return []Card{}, nil
		}
		categoryID = &category.ID
	}

	entries, err := s.blogs.ListPublished(ctx, categoryID, limit)
	if err != nil {
		s.log.Warnw("blog list degraded to empty", "error", err)
		return []Card{}, nil
	}

	cards := make([]Card, 0, len(entries))
	for i := range entries {
		cards = append(cards, s.toCard(&entries[i], lang))
	}
	return cards, nil
}

// Categories returns every blog category localized for the requested
// locale. Storage failures degrade to an empty list.
func (s *Service) Categories(ctx context.Context, locale string) ([]CategoryView, error) {
	lang := i18n.Normalize(locale)

	entries, err := s.categories.List(ctx)
	if err != nil {
		s.log.Warnw("category list degraded to empty", "error", err)
		return []CategoryView{}, nil
	}

	views := make([]CategoryView, 0, len(entries))
	for i := range entries {
		views = append(views, toCategoryView(&entries[i], lang))
	}
	return views, nil
}

func (s *Service) toCard(entry *domain.Blog, lang i18n.Locale) Card {
	card := Card{
		ID:          entry.ID,
		Slug:        entry.Slug,
		Title:       entry.LocalizedTitle(lang),
		Excerpt:     entry.LocalizedExcerpt(lang),
		CoverImage:  entry.CoverImage,
		CatalogType: entry.CatalogType,
		PublishedAt: entry.PublishedAt,
		ViewCount:   entry.ViewCount,
	}
	if entry.Category != nil {
		view := toCategoryView(entry.Category, lang)
		card.Category = &view
	}
	return card
}

func toCategoryView(category *domain.Category, lang i18n.Locale) CategoryView {
	return CategoryView{
		ID:    category.ID,
		Slug:  category.Slug,
		Name:  category.LocalizedName(lang),
		Color: category.Color,
	}
}
