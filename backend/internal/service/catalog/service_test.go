package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "packsite/backend/internal/domain/catalog"
	"packsite/backend/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}, &domain.Portfolio{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(repository.NewCatalogRepository(db))
}

func TestProductGalleryRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, ProductParams{
		Name:    "ขวดปั๊ม 50ml",
		NameEN:  "Pump Bottle 50ml",
		Gallery: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := svc.ListProducts(ctx, "en", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 product, got %d", len(views))
	}
	if views[0].Name != "Pump Bottle 50ml" {
		t.Fatalf("expected english name, got %q", views[0].Name)
	}
	if len(views[0].Gallery) != 2 || views[0].Gallery[0] != "/uploads/a.jpg" {
		t.Fatalf("gallery did not round-trip: %+v", views[0].Gallery)
	}
}

func TestInactiveProductsHiddenFromPublicList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inactive := false
	if _, err := svc.CreateProduct(ctx, ProductParams{Name: "เลิกขาย", IsActive: &inactive}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, ProductParams{Name: "ขายอยู่"}); err != nil {
		t.Fatalf("create active: %v", err)
	}

	public, err := svc.ListProducts(ctx, "th", "")
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(public) != 1 || public[0].Name != "ขายอยู่" {
		t.Fatalf("expected only the active product publicly, got %+v", public)
	}

	all, err := svc.ListAllProducts(ctx)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list must include inactive products, got %d", len(all))
	}
}

func TestProductsOrderedBySortOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, params := range []ProductParams{
		{Name: "ที่สอง", SortOrder: 2},
		{Name: "ที่หนึ่ง", SortOrder: 1},
	} {
		if _, err := svc.CreateProduct(ctx, params); err != nil {
			t.Fatalf("create %s: %v", params.Name, err)
		}
	}

	views, err := svc.ListProducts(ctx, "th", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 || views[0].Name != "ที่หนึ่ง" {
		t.Fatalf("expected manual sort order, got %+v", views)
	}
}

func TestPortfolioCategoryFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, params := range []PortfolioParams{
		{Title: "แบรนด์ครีม", Category: "cosmetics"},
		{Title: "กล่องอาหารเสริม", Category: "supplements"},
	} {
		if _, err := svc.CreatePortfolio(ctx, params); err != nil {
			t.Fatalf("create %s: %v", params.Title, err)
		}
	}

	views, err := svc.ListPortfolio(ctx, "th", "cosmetics")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Title != "แบรนด์ครีม" {
		t.Fatalf("expected the cosmetics item only, got %+v", views)
	}
}

func TestUpdateProductUnknownID(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.UpdateProduct(context.Background(), 77, ProductParams{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateProductRequiresName(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateProduct(context.Background(), ProductParams{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
