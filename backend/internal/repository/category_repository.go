package repository

import (
	"context"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/blog"
)

// CategoryRepository wraps the blog_categories table.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository constructs the repository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]blog.Category, error) {
	var categories []blog.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID loads a category by primary key.
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*blog.Category, error) {
	var category blog.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug loads a category by slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*blog.Category, error) {
	var category blog.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugExists reports whether another category already uses slug.
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&blog.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, category *blog.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves a category by primary key.
func (r *CategoryRepository) Update(ctx context.Context, category *blog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category and nulls out the weak references blogs
// hold to it, in one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&blog.Blog{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&blog.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
