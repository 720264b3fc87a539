package repository

import (
	"context"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/article"
)

// ArticleRepository wraps the articles table.
type ArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository constructs the repository.
func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindPublishedBySlug looks up a published article by slug. Drafts and
// archived entries fail with gorm.ErrRecordNotFound, exactly like a
// missing row.
func (r *ArticleRepository) FindPublishedBySlug(ctx context.Context, slug string) (*article.Article, error) {
	var entry article.Article
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, article.StatusPublished).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByID loads an article regardless of status. Admin-side only.
func (r *ArticleRepository) FindByID(ctx context.Context, id uint) (*article.Article, error) {
	var entry article.Article
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListPublished returns published articles newest-first, optionally
// filtered by the free-text category and truncated to limit.
func (r *ArticleRepository) ListPublished(ctx context.Context, category string, limit int) ([]article.Article, error) {
	var entries []article.Article

	query := r.db.WithContext(ctx).
		Model(&article.Article{}).
		Where("status = ?", article.StatusPublished).
		Order("published_at DESC, id DESC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll returns every article for the admin dashboard with a total
// count for pagination.
func (r *ArticleRepository) ListAll(ctx context.Context, offset, limit int) ([]article.Article, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&article.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []article.Article
	query := r.db.WithContext(ctx).
		Model(&article.Article{}).
		Order("created_at DESC, id DESC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListRelated returns up to limit other published articles, preferring
// the same free-text category, newest-first.
func (r *ArticleRepository) ListRelated(ctx context.Context, excludeID uint, category string, limit int) ([]article.Article, error) {
	if limit <= 0 {
		return nil, nil
	}

	var entries []article.Article

	if category != "" {
		err := r.db.WithContext(ctx).
			Model(&article.Article{}).
			Where("status = ? AND id <> ? AND category = ?", article.StatusPublished, excludeID, category).
			Order("published_at DESC, id DESC").
			Limit(limit).
			Find(&entries).Error
		if err != nil {
			return nil, err
		}
	}

	if remaining := limit - len(entries); remaining > 0 {
		seen := make([]uint, 0, len(entries)+1)
		seen = append(seen, excludeID)
		for _, entry := range entries {
			seen = append(seen, entry.ID)
		}

		var filler []article.Article
		err := r.db.WithContext(ctx).
			Model(&article.Article{}).
			Where("status = ? AND id NOT IN ?", article.StatusPublished, seen).
			Order("published_at DESC, id DESC").
			Limit(remaining).
			Find(&filler).Error
		if err != nil {
			return nil, err
		}
		entries = append(entries, filler...)
	}

	return entries, nil
}

// SlugExists reports whether another article already uses slug.
func (r *ArticleRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&article.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts an article.
func (r *ArticleRepository) Create(ctx context.Context, entry *article.Article) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update saves an article by primary key.
func (r *ArticleRepository) Update(ctx context.Context, entry *article.Article) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// IncrementViewCount bumps the approximate view counter atomically.
func (r *ArticleRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&article.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Delete removes an article, reporting gorm.ErrRecordNotFound for a
// missing id.
func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&article.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
