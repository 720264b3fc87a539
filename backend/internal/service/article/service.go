package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/article"
	"packsite/backend/internal/i18n"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/metrics"
	"packsite/backend/internal/repository"
)

// Sentinel errors the handlers map onto response codes.
var (
	ErrNotFound      = errors.New("article not found")
	ErrDuplicateSlug = errors.New("slug already in use")
	ErrValidation    = errors.New("invalid article payload")
)

// RelatedLimit caps the related-articles strip on a detail page.
const RelatedLimit = 4

// Service covers the public article read path and the admin mutation
// path.
type Service struct {
	articles *repository.ArticleRepository
	log      *zap.SugaredLogger
}

// NewService constructs the article service.
func NewService(articles *repository.ArticleRepository) *Service {
	return &Service{
		articles: articles,
		log:      logger.S().With("component", "article-service"),
	}
}

// Card is the localized list representation of an article.
type Card struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"cover_image"`
	Category    string     `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   uint64     `json:"view_count"`
}

// Detail is the full localized article page payload.
type Detail struct {
	Card
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	Related         []Card `json:"related"`
}

// CreateParams describes a new article. Both language layers of the
// title are mandatory, as is the slug.
type CreateParams struct {
	TitleTH         string `json:"title_th"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	ExcerptTH       string `json:"excerpt_th"`
	Excerpt         string `json:"excerpt"`
	ContentTH       string `json:"content_th"`
	Content         string `json:"content"`
	CoverImage      string `json:"cover_image"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	AuthorID        *uint  `json:"author_id"`
}

// UpdateParams is a partial patch: nil fields stay untouched.
type UpdateParams struct {
	TitleTH         *string `json:"title_th"`
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	ExcerptTH       *string `json:"excerpt_th"`
	Excerpt         *string `json:"excerpt"`
	ContentTH       *string `json:"content_th"`
	Content         *string `json:"content"`
	CoverImage      *string `json:"cover_image"`
	Category        *string `json:"category"`
	Status          *string `json:"status"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// GetBySlug returns the published article behind slug, localized, and
// counts the view. Drafts and archived entries look exactly like
// missing slugs. Storage failures on this public read degrade to
// NotFound.
func (s *Service) GetBySlug(ctx context.Context, slug, locale string) (*Detail, error) {
	lang := i18n.Normalize(locale)

	entry, err := s.articles.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Warnw("article lookup degraded to not found", "slug", slug, "error", err)
		return nil, ErrNotFound
	}

	if err := s.articles.IncrementViewCount(ctx, entry.ID); err != nil {
		s.log.Warnw("view count increment failed", "article_id", entry.ID, "error", err)
	} else {
		entry.ViewCount++
	}
	metrics.ObserveContentView("article")

	detail := &Detail{
		Card:            toCard(entry, lang),
		Content:         entry.LocalizedContent(lang),
		MetaTitle:       entry.MetaTitle,
		MetaDescription: entry.MetaDescription,
		Related:         []Card{},
	}

	related, err := s.articles.ListRelated(ctx, entry.ID, entry.Category, RelatedLimit)
	if err != nil {
		s.log.Warnw("related articles unavailable", "article_id", entry.ID, "error", err)
	} else {
		for i := range related {
			detail.Related = append(detail.Related, toCard(&related[i], lang))
		}
	}

	return detail, nil
}

// List returns published articles newest-first, localized, optionally
// filtered by the free-text category and truncated to limit. Storage
// failures on this public read degrade to an empty list.
func (s *Service) List(ctx context.Context, locale, category string, limit int) ([]Card, error) {
	lang := i18n.Normalize(locale)

	entries, err := s.articles.ListPublished(ctx, strings.TrimSpace(category), limit)
	if err != nil {
		s.log.Warnw("article list degraded to empty", "error", err)
		return []Card{}, nil
	}

	cards := make([]Card, 0, len(entries))
	for i := range entries {
		cards = append(cards, toCard(&entries[i], lang))
	}
	return cards, nil
}

// ListAll returns every article for the admin dashboard with a total
// count for pagination.
func (s *Service) ListAll(ctx context.Context, offset, limit int) ([]domain.Article, int64, error) {
	entries, total, err := s.articles.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return entries, total, nil
}

// GetByID loads one article regardless of status.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Article, error) {
	entry, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load article: %w", err)
	}
	return entry, nil
}

// Create stores a new article. An article born published gets its
// publishedAt stamped immediately.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Article, error) {
	titleTH := strings.TrimSpace(params.TitleTH)
	title := strings.TrimSpace(params.Title)
	slug := strings.TrimSpace(params.Slug)
	if titleTH == "" || title == "" {
		return nil, fmt.Errorf("%w: both title layers are required", ErrValidation)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrValidation)
	}

	status := strings.TrimSpace(params.Status)
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, params.Status)
	}

	taken, err := s.articles.SlugExists(ctx, slug, 0)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	entry := &domain.Article{
		TitleTH:         titleTH,
		Title:           title,
		Slug:            slug,
		ExcerptTH:       params.ExcerptTH,
		Excerpt:         params.Excerpt,
		ContentTH:       params.ContentTH,
		Content:         params.Content,
		CoverImage:      strings.TrimSpace(params.CoverImage),
		Category:        strings.TrimSpace(params.Category),
		Status:          status,
		MetaTitle:       strings.TrimSpace(params.MetaTitle),
		MetaDescription: strings.TrimSpace(params.MetaDescription),
		AuthorID:        params.AuthorID,
	}
	if status == domain.StatusPublished {
		now := time.Now()
		entry.PublishedAt = &now
	}

	if err := s.articles.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return entry, nil
}

// Update patches an article. The first transition to published stamps
// publishedAt; archiving or re-drafting keeps the original timestamp,
// and so does a later republish.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*domain.Article, error) {
	entry, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load article: %w", err)
	}

	if params.TitleTH != nil {
		titleTH := strings.TrimSpace(*params.TitleTH)
		if titleTH == "" {
			return nil, fmt.Errorf("%w: thai title cannot be blank", ErrValidation)
		}
		entry.TitleTH = titleTH
	}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: english title cannot be blank", ErrValidation)
		}
		entry.Title = title
	}
	if params.Slug != nil {
		slug := strings.TrimSpace(*params.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be blank", ErrValidation)
		}
		if slug != entry.Slug {
			taken, err := s.articles.SlugExists(ctx, slug, entry.ID)
			if err != nil {
				return nil, fmt.Errorf("check slug: %w", err)
			}
			if taken {
				return nil, ErrDuplicateSlug
			}
		}
		entry.Slug = slug
	}
	if params.ExcerptTH != nil {
		entry.ExcerptTH = *params.ExcerptTH
	}
	if params.Excerpt != nil {
		entry.Excerpt = *params.Excerpt
	}
	if params.ContentTH != nil {
		entry.ContentTH = *params.ContentTH
	}
	if params.Content != nil {
		entry.Content = *params.Content
	}
	if params.CoverImage != nil {
		entry.CoverImage = strings.TrimSpace(*params.CoverImage)
	}
	if params.Category != nil {
		entry.Category = strings.TrimSpace(*params.Category)
	}
	if params.MetaTitle != nil {
		entry.MetaTitle = strings.TrimSpace(*params.MetaTitle)
	}
	if params.MetaDescription != nil {
		entry.MetaDescription = strings.TrimSpace(*params.MetaDescription)
	}
	if params.Status != nil {
		status := strings.TrimSpace(*params.Status)
		if !domain.ValidStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *params.Status)
		}
		entry.Status = status
		if status == domain.StatusPublished && entry.PublishedAt == nil {
			now := time.Now()
			entry.PublishedAt = &now
		}
	}

	if err := s.articles.Update(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return entry, nil
}

// Delete removes an article.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func toCard(entry *domain.Article, lang i18n.Locale) Card {
	return Card{
		ID:          entry.ID,
		Slug:        entry.Slug,
		Title:       entry.LocalizedTitle(lang),
		Excerpt:     entry.LocalizedExcerpt(lang),
		CoverImage:  entry.CoverImage,
		Category:    entry.Category,
		PublishedAt: entry.PublishedAt,
		ViewCount:   entry.ViewCount,
	}
}
