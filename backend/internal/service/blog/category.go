package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/blog"
)

// CategoryParams describes a category create or full update.
type CategoryParams struct {
	Name   string `json:"name"`
	NameEN string `json:"name_en"`
	Slug   string `json:"slug"`
	Color  string `json:"color"`
}

// ListCategories returns all categories for the admin dashboard, with
// every translation intact.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	entries, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return entries, nil
}

// CreateCategory stores a new category behind a unique slug.
func (s *Service) CreateCategory(ctx context.Context, params CategoryParams) (*domain.Category, error) {
	name := strings.TrimSpace(params.Name)
	slug := strings.TrimSpace(params.Slug)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: category slug is required", ErrValidation)
	}

	taken, err := s.categories.SlugExists(ctx, slug, 0)
	if err != nil {
		return nil, fmt.Errorf("check category slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	entry := &domain.Category{
		Name:   name,
		NameEN: strings.TrimSpace(params.NameEN),
		Slug:   slug,
		Color:  strings.TrimSpace(params.Color),
	}
	if err := s.categories.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return entry, nil
}

// UpdateCategory replaces a category's fields.
func (s *Service) UpdateCategory(ctx context.Context, id uint, params CategoryParams) (*domain.Category, error) {
	entry, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	name := strings.TrimSpace(params.Name)
	slug := strings.TrimSpace(params.Slug)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: category slug is required", ErrValidation)
	}
	if slug != entry.Slug {
		taken, err := s.categories.SlugExists(ctx, slug, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("check category slug: %w", err)
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
	}

	entry.Name = name
	entry.NameEN = strings.TrimSpace(params.NameEN)
	entry.Slug = slug
	entry.Color = strings.TrimSpace(params.Color)

	if err := s.categories.Update(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return entry, nil
}

// DeleteCategory removes a category. Blogs pointing at it keep living
// with a null category.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
