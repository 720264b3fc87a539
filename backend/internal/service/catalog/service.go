package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/catalog"
	"packsite/backend/internal/i18n"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/repository"
)

// Sentinel errors the handlers map onto response codes.
var (
	ErrNotFound   = errors.New("catalog entry not found")
	ErrValidation = errors.New("invalid catalog payload")
)

// Service covers products and portfolio items: public active-only
// listings plus admin CRUD.
type Service struct {
	catalog *repository.CatalogRepository
	log     *zap.SugaredLogger
}

// NewService constructs the catalog service.
func NewService(catalog *repository.CatalogRepository) *Service {
	return &Service{
		catalog: catalog,
		log:     logger.S().With("component", "catalog-service"),
	}
}

// ProductView is the localized public representation of a product.
type ProductView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery"`
	IsFeatured  bool     `json:"is_featured"`
	SortOrder   int      `json:"sort_order"`
}

// PortfolioView is the localized public representation of a portfolio
// item.
type PortfolioView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Image       string `json:"image"`
	IsFeatured  bool   `json:"is_featured"`
	SortOrder   int    `json:"sort_order"`
}

// ProductParams describes a product create or full update.
type ProductParams struct {
	Name          string   `json:"name"`
	NameEN        string   `json:"name_en"`
	Description   string   `json:"description"`
	DescriptionEN string   `json:"description_en"`
	Category      string   `json:"category"`
	Image         string   `json:"image"`
	Gallery       []string `json:"gallery"`
	IsActive      *bool    `json:"is_active"`
	IsFeatured    bool     `json:"is_featured"`
	SortOrder     int      `json:"sort_order"`
}

// PortfolioParams describes a portfolio create or full update.
type PortfolioParams struct {
	Title         string `json:"title"`
	TitleEN       string `json:"title_en"`
	Description   string `json:"description"`
	DescriptionEN string `json:"description_en"`
	Category      string `json:"category"`
	Image         string `json:"image"`
	IsActive      *bool  `json:"is_active"`
	IsFeatured    bool   `json:"is_featured"`
	SortOrder     int    `json:"sort_order"`
}

// ListProducts returns active products in manual sort order, localized,
// optionally filtered by category. Storage failures on this public read
// degrade to an empty list.
func (s *Service) ListProducts(ctx context.Context, locale, category string) ([]ProductView, error) {
	lang := i18n.Normalize(locale)

	entries, err := s.catalog.ListActiveProducts(ctx, strings.TrimSpace(category))
	if err != nil {
		s.log.Warnw("product list degraded to empty", "error", err)
		return []ProductView{}, nil
	}

	views := make([]ProductView, 0, len(entries))
	for i := range entries {
		views = append(views, s.toProductView(&entries[i], lang))
	}
	return views, nil
}

// ListPortfolio returns active portfolio items in manual sort order,
// localized, optionally filtered by category. Storage failures on this
// public read degrade to an empty list.
func (s *Service) ListPortfolio(ctx context.Context, locale, category string) ([]PortfolioView, error) {
	lang := i18n.Normalize(locale)

	entries, err := s.catalog.ListActivePortfolio(ctx, strings.TrimSpace(category))
	if err != nil {
		s.log.Warnw("portfolio list degraded to empty", "error", err)
		return []PortfolioView{}, nil
	}

	views := make([]PortfolioView, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		views = append(views, PortfolioView{
			ID:          entry.ID,
			Title:       entry.LocalizedTitle(lang),
			Description: entry.LocalizedDescription(lang),
			Category:    entry.Category,
			Image:       entry.Image,
			IsFeatured:  entry.IsFeatured,
			SortOrder:   entry.SortOrder,
		})
	}
	return views, nil
}

// ListAllProducts returns every product for the admin dashboard,
// inactive ones included.
func (s *Service) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	entries, err := s.catalog.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return entries, nil
}

// ListAllPortfolio returns every portfolio item for the admin
// dashboard, inactive ones included.
func (s *Service) ListAllPortfolio(ctx context.Context) ([]domain.Portfolio, error) {
	entries, err := s.catalog.ListAllPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return entries, nil
}

// CreateProduct stores a new product. Active by default.
func (s *Service) CreateProduct(ctx context.Context, params ProductParams) (*domain.Product, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	gallery, err := encodeGallery(params.Gallery)
	if err != nil {
		return nil, err
	}

	entry := &domain.Product{
		Name:          name,
		NameEN:        strings.TrimSpace(params.NameEN),
		Description:   params.Description,
		DescriptionEN: params.DescriptionEN,
		Category:      strings.TrimSpace(params.Category),
		Image:         strings.TrimSpace(params.Image),
		Gallery:       gallery,
		IsActive:      true,
		IsFeatured:    params.IsFeatured,
		SortOrder:     params.SortOrder,
	}
	if params.IsActive != nil {
		entry.IsActive = *params.IsActive
	}

	if err := s.catalog.CreateProduct(ctx, entry); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return entry, nil
}

// UpdateProduct replaces a product's fields.
func (s *Service) UpdateProduct(ctx context.Context, id uint, params ProductParams) (*domain.Product, error) {
	entry, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	gallery, err := encodeGallery(params.Gallery)
	if err != nil {
		return nil, err
	}

	entry.Name = name
	entry.NameEN = strings.TrimSpace(params.NameEN)
	entry.Description = params.Description
	entry.DescriptionEN = params.DescriptionEN
	entry.Category = strings.TrimSpace(params.Category)
	entry.Image = strings.TrimSpace(params.Image)
	entry.Gallery = gallery
	entry.IsFeatured = params.IsFeatured
	entry.SortOrder = params.SortOrder
	if params.IsActive != nil {
		entry.IsActive = *params.IsActive
	}

	if err := s.catalog.UpdateProduct(ctx, entry); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return entry, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CreatePortfolio stores a new portfolio item. Active by default.
func (s *Service) CreatePortfolio(ctx context.Context, params PortfolioParams) (*domain.Portfolio, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: portfolio title is required", ErrValidation)
	}

	entry := &domain.Portfolio{
		Title:         title,
		TitleEN:       strings.TrimSpace(params.TitleEN),
		Description:   params.Description,
		DescriptionEN: params.DescriptionEN,
		Category:      strings.TrimSpace(params.Category),
		Image:         strings.TrimSpace(params.Image),
		IsActive:      true,
		IsFeatured:    params.IsFeatured,
		SortOrder:     params.SortOrder,
	}
	if params.IsActive != nil {
		entry.IsActive = *params.IsActive
	}

	if err := s.catalog.CreatePortfolio(ctx, entry); err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}
	return entry, nil
}

// UpdatePortfolio replaces a portfolio item's fields.
func (s *Service) UpdatePortfolio(ctx context.Context, id uint, params PortfolioParams) (*domain.Portfolio, error) {
	entry, err := s.catalog.FindPortfolioByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: portfolio title is required", ErrValidation)
	}

	entry.Title = title
	entry.TitleEN = strings.TrimSpace(params.TitleEN)
	entry.Description = params.Description
	entry.DescriptionEN = params.DescriptionEN
	entry.Category = strings.TrimSpace(params.Category)
	entry.Image = strings.TrimSpace(params.Image)
	entry.IsFeatured = params.IsFeatured
	entry.SortOrder = params.SortOrder
	if params.IsActive != nil {
		entry.IsActive = *params.IsActive
	}

	if err := s.catalog.UpdatePortfolio(ctx, entry); err != nil {
		return nil, fmt.Errorf("update portfolio: %w", err)
	}
	return entry, nil
}

// DeletePortfolio removes a portfolio item.
func (s *Service) DeletePortfolio(ctx context.Context, id uint) error {
	if err := s.catalog.DeletePortfolio(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete portfolio: %w", err)
	}
	return nil
}

func (s *Service) toProductView(entry *domain.Product, lang i18n.Locale) ProductView {
	view := ProductView{
		ID:          entry.ID,
		Name:        entry.LocalizedName(lang),
		Description: entry.LocalizedDescription(lang),
		Category:    entry.Category,
		Image:       entry.Image,
		Gallery:     []string{},
		IsFeatured:  entry.IsFeatured,
		SortOrder:   entry.SortOrder,
	}
	if len(entry.Gallery) > 0 {
		if err := json.Unmarshal(entry.Gallery, &view.Gallery); err != nil {
			s.log.Warnw("gallery decode failed", "product_id", entry.ID, "error", err)
		}
	}
	return view
}

func encodeGallery(urls []string) (datatypes.JSON, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode gallery: %w", err)
	}
	return datatypes.JSON(raw), nil
}
