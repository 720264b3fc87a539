package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "packsite/backend/internal/domain/article"
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
	if err := db.AutoMigrate(&domain.Article{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(repository.NewArticleRepository(db))
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := newTestService(t)

	entry, err := svc.Create(context.Background(), CreateParams{
		TitleTH: "ความรู้เรื่องบรรจุภัณฑ์",
		Title:   "Packaging Basics",
		Slug:    "packaging-basics",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", entry.Status)
	}
	if entry.PublishedAt != nil {
		t.Fatal("draft must not carry a publish timestamp")
	}
}

func TestCreateRequiresBothTitles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Title: "English only", Slug: "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without thai title, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateParams{TitleTH: "ไทยอย่างเดียว", Slug: "y"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without english title, got %v", err)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		TitleTH: "สถานะผิด",
		Title:   "Bad Status",
		Slug:    "bad-status",
		Status:  "pending",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{TitleTH: "ก", Title: "A", Slug: "shared"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateParams{TitleTH: "ข", Title: "B", Slug: "shared"}); !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestPublishedAtSurvivesStatusFlips(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateParams{
		TitleTH: "วงจรสถานะ",
		Title:   "Status Cycle",
		Slug:    "status-cycle",
		Status:  domain.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.PublishedAt == nil {
		t.Fatal("publishing on create should stamp publishedAt")
	}
	stamped := *entry.PublishedAt

	for _, status := range []string{domain.StatusArchived, domain.StatusDraft, domain.StatusPublished} {
		s := status
		entry, err = svc.Update(ctx, entry.ID, UpdateParams{Status: &s})
		if err != nil {
			t.Fatalf("move to %s: %v", status, err)
		}
		if entry.PublishedAt == nil || !entry.PublishedAt.Equal(stamped) {
			t.Fatalf("status %s must keep the original timestamp, got %v", status, entry.PublishedAt)
		}
	}
}

func TestGetBySlugOnlyServesPublished(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for slug, status := range map[string]string{
		"visible":  domain.StatusPublished,
		"drafted":  domain.StatusDraft,
		"archived": domain.StatusArchived,
	} {
		if _, err := svc.Create(ctx, CreateParams{TitleTH: "ท", Title: "T", Slug: slug, Status: status}); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}

	if _, err := svc.GetBySlug(ctx, "visible", "th"); err != nil {
		t.Fatalf("published article should be readable: %v", err)
	}
	for _, slug := range []string{"drafted", "archived"} {
		if _, err := svc.GetBySlug(ctx, slug, "th"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s should look missing, got %v", slug, err)
		}
	}
}

func TestRelatedPrefersSameCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []CreateParams{
		{TitleTH: "หลัก", Title: "Main", Slug: "main", Category: "howto", Status: domain.StatusPublished},
		{TitleTH: "เพื่อนร่วมหมวด", Title: "Sibling", Slug: "sibling", Category: "howto", Status: domain.StatusPublished},
		{TitleTH: "นอกหมวด", Title: "Other", Slug: "other", Category: "news", Status: domain.StatusPublished},
	}
	for _, params := range seed {
		if _, err := svc.Create(ctx, params); err != nil {
			t.Fatalf("create %s: %v", params.Slug, err)
		}
	}

	detail, err := svc.GetBySlug(ctx, "main", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Related) != 2 {
		t.Fatalf("expected 2 related articles, got %d", len(detail.Related))
	}
	if detail.Related[0].Slug != "sibling" {
		t.Fatalf("same-category article should rank first, got %q", detail.Related[0].Slug)
	}
	for _, card := range detail.Related {
		if card.Slug == "main" {
			t.Fatal("an article must not be related to itself")
		}
	}
}

func TestListLocalizesAndFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{
		TitleTH:   "ข่าวสาร",
		Title:     "News Update",
		ExcerptTH: "สรุปภาษาไทย",
		Slug:      "news-update",
		Category:  "news",
		Status:    domain.StatusPublished,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	cards, err := svc.List(ctx, "en", "news", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Title != "News Update" {
		t.Fatalf("expected english title, got %q", cards[0].Title)
	}
	if cards[0].Excerpt != "สรุปภาษาไทย" {
		t.Fatalf("expected thai fallback excerpt, got %q", cards[0].Excerpt)
	}

	cards, err = svc.List(ctx, "th", "howto", 0)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty list for unmatched category, got %d", len(cards))
	}
}
