package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/blog"
)

// SectionParams describes one content block in a create or update
// payload. Order is not accepted from the caller: it is always the
// position in the submitted array.
type SectionParams struct {
	ImageURL      string `json:"image_url"`
	ImagePosition string `json:"image_position"`
	Content       string `json:"content"`
	ContentEN     string `json:"content_en"`
}

// CreateParams describes a new blog. Title and Slug are mandatory,
// everything else optional.
type CreateParams struct {
	Title       string          `json:"title"`
	TitleEN     string          `json:"title_en"`
	TitleZH     string          `json:"title_zh"`
	Slug        string          `json:"slug"`
	Excerpt     string          `json:"excerpt"`
	ExcerptEN   string          `json:"excerpt_en"`
	ExcerptZH   string          `json:"excerpt_zh"`
	CoverImage  string          `json:"cover_image"`
	CatalogType string          `json:"catalog_type"`
	CategoryID  *uint           `json:"category_id"`
	IsPublished bool            `json:"is_published"`
	Sections    []SectionParams `json:"sections"`
}

// UpdateParams is a partial patch: nil fields stay untouched. Sections
// is all-or-nothing — when present the full section list is replaced,
// re-ordered by array position.
type UpdateParams struct {
	Title         *string          `json:"title"`
	TitleEN       *string          `json:"title_en"`
	TitleZH       *string          `json:"title_zh"`
	Slug          *string          `json:"slug"`
	Excerpt       *string          `json:"excerpt"`
	ExcerptEN     *string          `json:"excerpt_en"`
	ExcerptZH     *string          `json:"excerpt_zh"`
	CoverImage    *string          `json:"cover_image"`
	CatalogType   *string          `json:"catalog_type"`
	CategoryID    *uint            `json:"category_id"`
	ClearCategory bool             `json:"clear_category"`
	IsPublished   *bool            `json:"is_published"`
	Sections      *[]SectionParams `json:"sections"`
}

// ListAll returns every blog for the admin dashboard, drafts included,
// with a total count for pagination.
func (s *Service) ListAll(ctx context.Context, offset, limit int) ([]domain.Blog, int64, error) {
	entries, total, err := s.blogs.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	return entries, total, nil
}

// GetByID loads one blog with sections and category, drafts included.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Blog, error) {
	entry, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load blog: %w", err)
	}
	return entry, nil
}

// Create stores a new blog and its sections in one transaction.
// publishedAt is stamped now when the blog is born published.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Blog, error) {
	title := strings.TrimSpace(params.Title)
	slug := strings.TrimSpace(params.Slug)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrValidation)
	}

	if err := s.checkCategoryRef(ctx, params.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.blogs.SlugExists(ctx, slug, 0)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	sections, err := normalizeSections(params.Sections)
	if err != nil {
		return nil, err
	}

	entry := &domain.Blog{
		Title:       title,
		TitleEN:     strings.TrimSpace(params.TitleEN),
		TitleZH:     strings.TrimSpace(params.TitleZH),
		Slug:        slug,
		Excerpt:     params.Excerpt,
		ExcerptEN:   params.ExcerptEN,
		ExcerptZH:   params.ExcerptZH,
		CoverImage:  strings.TrimSpace(params.CoverImage),
		CatalogType: strings.TrimSpace(params.CatalogType),
		CategoryID:  params.CategoryID,
		IsPublished: params.IsPublished,
		Sections:    sections,
	}
	if params.IsPublished {
		now := time.Now()
		entry.PublishedAt = &now
	}

	if err := s.blogs.CreateWithSections(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	return s.reload(ctx, entry)
}

// Update patches a blog. A publish transition stamps publishedAt only
// the first time; unpublishing keeps the original timestamp so a later
// republish does not rewrite history.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*domain.Blog, error) {
	entry, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load blog: %w", err)
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", ErrValidation)
		}
		entry.Title = title
	}
	if params.TitleEN != nil {
		entry.TitleEN = strings.TrimSpace(*params.TitleEN)
	}
	if params.TitleZH != nil {
		entry.TitleZH = strings.TrimSpace(*params.TitleZH)
	}
	if params.Slug != nil {
		slug := strings.TrimSpace(*params.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be blank", ErrValidation)
		}
		if slug != entry.Slug {
			taken, err := s.blogs.SlugExists(ctx, slug, entry.ID)
			if err != nil {
				return nil, fmt.Errorf("check slug: %w", err)
			}
			if taken {
				return nil, ErrDuplicateSlug
			}
		}
		entry.Slug = slug
	}
	if params.Excerpt != nil {
		entry.Excerpt = *params.Excerpt
	}
	if params.ExcerptEN != nil {
		entry.ExcerptEN = *params.ExcerptEN
	}
	if params.ExcerptZH != nil {
		entry.ExcerptZH = *params.ExcerptZH
	}
	if params.CoverImage != nil {
		entry.CoverImage = strings.TrimSpace(*params.CoverImage)
	}
	if params.CatalogType != nil {
		entry.CatalogType = strings.TrimSpace(*params.CatalogType)
	}
	if params.ClearCategory {
		entry.CategoryID = nil
	} else if params.CategoryID != nil {
		if err := s.checkCategoryRef(ctx, params.CategoryID); err != nil {
			return nil, err
		}
		entry.CategoryID = params.CategoryID
	}
	if params.IsPublished != nil {
		entry.IsPublished = *params.IsPublished
		if entry.IsPublished && entry.PublishedAt == nil {
			now := time.Now()
			entry.PublishedAt = &now
		}
	}

	var sections []domain.Section
	replace := params.Sections != nil
	if replace {
		sections, err = normalizeSections(*params.Sections)
		if err != nil {
			return nil, err
		}
		for i := range sections {
			sections[i].BlogID = entry.ID
		}
	}

	if err := s.blogs.UpdateWithSections(ctx, entry, replace, sections); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}

	return s.reload(ctx, entry)
}

// Delete removes a blog together with its sections.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

func (s *Service) checkCategoryRef(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown category id %d", ErrValidation, *id)
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func (s *Service) reload(ctx context.Context, entry *domain.Blog) (*domain.Blog, error) {
	fresh, err := s.blogs.FindByID(ctx, entry.ID)
	if err != nil {
		// The write went through; serve the in-memory copy.
		s.log.Warnw("blog reload failed", "blog_id", entry.ID, "error", err)
		return entry, nil
	}
	return fresh, nil
}

func normalizeSections(params []SectionParams) ([]domain.Section, error) {
	sections := make([]domain.Section, 0, len(params))
	for i, p := range params {
		position := strings.TrimSpace(p.ImagePosition)
		switch position {
		case "":
			position = domain.ImagePositionLeft
		case domain.ImagePositionLeft, domain.ImagePositionRight:
		default:
			return nil, fmt.Errorf("%w: section %d has invalid image position %q", ErrValidation, i, p.ImagePosition)
		}
		sections = append(sections, domain.Section{
			Order:         i,
			ImageURL:      strings.TrimSpace(p.ImageURL),
			ImagePosition: position,
			Content:       p.Content,
			ContentEN:     p.ContentEN,
		})
	}
	return sections, nil
}
