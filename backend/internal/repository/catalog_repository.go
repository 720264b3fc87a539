package repository

import (
	"context"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/catalog"
)

// CatalogRepository covers both showcase tables, products and portfolio
// items. The two entities share a shape so the repository keeps their
// methods side by side.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListActiveProducts returns active products ordered by their manual
// sort order, optionally filtered by category.
func (r *CatalogRepository) ListActiveProducts(ctx context.Context, category string) ([]catalog.Product, error) {
	var entries []catalog.Product
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("is_active = ?", true).
		Order("sort_order ASC, id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAllProducts returns every product for the admin dashboard.
func (r *CatalogRepository) ListAllProducts(ctx context.Context) ([]catalog.Product, error) {
	var entries []catalog.Product
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindProductByID loads a product regardless of active state.
func (r *CatalogRepository) FindProductByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var entry catalog.Product
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateProduct inserts a product.
func (r *CatalogRepository) CreateProduct(ctx context.Context, entry *catalog.Product) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// UpdateProduct saves a product by primary key.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, entry *catalog.Product) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteProduct removes a product, reporting gorm.ErrRecordNotFound
// for a missing id.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActivePortfolio returns active portfolio items ordered by their
// manual sort order, optionally filtered by category.
func (r *CatalogRepository) ListActivePortfolio(ctx context.Context, category string) ([]catalog.Portfolio, error) {
	var entries []catalog.Portfolio
	query := r.db.WithContext(ctx).
		Model(&catalog.Portfolio{}).
		Where("is_active = ?", true).
		Order("sort_order ASC, id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAllPortfolio returns every portfolio item for the admin dashboard.
func (r *CatalogRepository) ListAllPortfolio(ctx context.Context) ([]catalog.Portfolio, error) {
	var entries []catalog.Portfolio
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindPortfolioByID loads a portfolio item regardless of active state.
func (r *CatalogRepository) FindPortfolioByID(ctx context.Context, id uint) (*catalog.Portfolio, error) {
	var entry catalog.Portfolio
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreatePortfolio inserts a portfolio item.
func (r *CatalogRepository) CreatePortfolio(ctx context.Context, entry *catalog.Portfolio) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// UpdatePortfolio saves a portfolio item by primary key.
func (r *CatalogRepository) UpdatePortfolio(ctx context.Context, entry *catalog.Portfolio) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeletePortfolio removes a portfolio item, reporting
// gorm.ErrRecordNotFound for a missing id.
func (r *CatalogRepository) DeletePortfolio(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Portfolio{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
