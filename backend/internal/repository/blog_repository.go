package repository

import (
	"context"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/blog"
)

// BlogRepository wraps access to the blogs, blog_sections and
// blog_categories tables.
type BlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository constructs the repository.
func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// withSections preloads the section collection in rendering order and
// the category when present.
func (r *BlogRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC")
		}).
		Preload("Category")
}

// FindPublishedBySlug looks up a published blog by slug. Unpublished
// rows are filtered in the query itself, so a draft is indistinguishable
// from a missing row: both surface gorm.ErrRecordNotFound.
func (r *BlogRepository) FindPublishedBySlug(ctx context.Context, slug string) (*blog.Blog, error) {
	var entry blog.Blog
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByID loads a blog with its relations regardless of publish state.
// Admin-side only.
func (r *BlogRepository) FindByID(ctx context.Context, id uint) (*blog.Blog, error) {
	var entry blog.Blog
	err := r.withRelations(r.db.WithContext(ctx)).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListPublished returns published blogs newest-first, optionally
// restricted to a category and truncated to limit.
func (r *BlogRepository) ListPublished(ctx context.Context, categoryID *uint, limit int) ([]blog.Blog, error) {
	var entries []blog.Blog

	query := r.db.WithContext(ctx).
		Model(&blog.Blog{}).
		Preload("Category").
		Where("is_published = ?", true).
		Order("published_at DESC, id DESC")

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll returns every blog for the admin dashboard, drafts included,
// with a total count for pagination.
func (r *BlogRepository) ListAll(ctx context.Context, offset, limit int) ([]blog.Blog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&blog.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []blog.Blog
	query := r.db.WithContext(ctx).
		Model(&blog.Blog{}).
		Preload("Category").
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

// ListRelated returns up to limit other published blogs for the
// related-posts strip. Same-category entries fill the list first; when
// they run short the remainder comes from the rest of the published
// pool, both halves newest-first.
func (r *BlogRepository) ListRelated(ctx context.Context, excludeID uint, categoryID *uint, limit int) ([]blog.Blog, error) {
	if limit <= 0 {
		return nil, nil
	}

	var entries []blog.Blog

	if categoryID != nil {
		err := r.db.WithContext(ctx).
			Model(&blog.Blog{}).
			Preload("Category").
			Where("is_published = ? AND id <> ? AND category_id = ?", true, excludeID, *categoryID).
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

		var filler []blog.Blog
		err := r.db.WithContext(ctx).
			Model(&blog.Blog{}).
			Preload("Category").
			Where("is_published = ? AND id NOT IN ?", true, seen).
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

// SlugExists reports whether another blog already uses slug. excludeID
// skips the row being updated.
func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&blog.Blog{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateWithSections inserts the blog and its sections in a single
// transaction, so a failed section insert never leaves a half-created
// blog behind.
func (r *BlogRepository) CreateWithSections(ctx context.Context, entry *blog.Blog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sections := entry.Sections
		entry.Sections = nil

		if err := tx.Omit("Category").Create(entry).Error; err != nil {
			return err
		}

		for i := range sections {
			sections[i].BlogID = entry.ID
		}
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return err
			}
		}
		entry.Sections = sections
		return nil
	})
}

// UpdateWithSections saves the blog row and, when replace is true,
// swaps its section set in the same transaction.
func (r *BlogRepository) UpdateWithSections(ctx context.Context, entry *blog.Blog, replace bool, sections []blog.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry.Sections = nil
		if err := tx.Omit("Category", "Sections").Save(entry).Error; err != nil {
			return err
		}

		if !replace {
			return nil
		}

		if err := tx.Where("blog_id = ?", entry.ID).Delete(&blog.Section{}).Error; err != nil {
			return err
		}
		for i := range sections {
			sections[i].ID = 0
			sections[i].BlogID = entry.ID
		}
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return err
			}
		}
		entry.Sections = sections
		return nil
	})
}

// IncrementViewCount bumps the approximate view counter without a
// read-modify-write round trip; concurrent losses are acceptable.
func (r *BlogRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&blog.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Delete removes the blog and its sections in one transaction. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (r *BlogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&blog.Section{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&blog.Blog{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountSections counts the sections attached to a blog. Used by tests
// and the admin overview.
func (r *BlogRepository) CountSections(ctx context.Context, blogID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&blog.Section{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}
