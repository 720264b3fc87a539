package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "packsite/backend/internal/domain/blog"
	"packsite/backend/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.BlogRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Blog{}, &domain.Section{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	blogs := repository.NewBlogRepository(db)
	return NewService(blogs, repository.NewCategoryRepository(db)), blogs
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Title: "กล่องครีม", Slug: "cream-box"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateParams{Title: "กล่องครีมใหม่", Slug: "cream-box"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestCreateRequiresTitleAndSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Slug: "no-title"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing title, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateParams{Title: "ไม่มี slug"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing slug, got %v", err)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	missing := uint(99)
	_, err := svc.Create(context.Background(), CreateParams{
		Title:      "หลอดครีม",
		Slug:       "cream-tube",
		CategoryID: &missing,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Title: "ฉบับร่าง", Slug: "draft-post"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetBySlug(ctx, "draft-post", "th"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected draft to look missing, got %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "never-existed", "th"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing slug to be not found, got %v", err)
	}
}

func TestGetBySlugCountsViews(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{Title: "ขวดปั๊ม", Slug: "pump", IsPublished: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.GetBySlug(ctx, "pump", "th")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if first.ViewCount != 1 {
		t.Fatalf("expected view count 1 after first read, got %d", first.ViewCount)
	}

	second, err := svc.GetBySlug(ctx, "pump", "th")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if second.ViewCount != 2 {
		t.Fatalf("expected view count 2 after second read, got %d", second.ViewCount)
	}
}

func TestSectionsOrderedByArrayPosition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateParams{
		Title:       "ขั้นตอนการผลิต",
		Slug:        "production-steps",
		IsPublished: true,
		Sections: []SectionParams{
			{Content: "หนึ่ง"},
			{Content: "สอง", ImagePosition: domain.ImagePositionRight},
			{Content: "สาม"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i, section := range entry.Sections {
		if section.Order != i {
			t.Fatalf("section %d stored with order %d", i, section.Order)
		}
	}
	if entry.Sections[0].ImagePosition != domain.ImagePositionLeft {
		t.Fatalf("expected default image position left, got %q", entry.Sections[0].ImagePosition)
	}

	// A full replacement reorders purely by array position.
	reversed := []SectionParams{
		{Content: "สาม"},
		{Content: "สอง"},
		{Content: "หนึ่ง"},
		{Content: "ศูนย์"},
	}
	updated, err := svc.Update(ctx, entry.ID, UpdateParams{Sections: &reversed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Sections) != 4 {
		t.Fatalf("expected 4 sections after replace, got %d", len(updated.Sections))
	}
	for i, section := range updated.Sections {
		if section.Order != i {
			t.Fatalf("replaced section %d stored with order %d", i, section.Order)
		}
	}
	if updated.Sections[0].Content != "สาม" {
		t.Fatalf("expected reordered first section, got %q", updated.Sections[0].Content)
	}
}

func TestUpdateRejectsInvalidImagePosition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateParams{Title: "ทดสอบ", Slug: "position-check"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := []SectionParams{{Content: "x", ImagePosition: "center"}}
	if _, err := svc.Update(ctx, entry.ID, UpdateParams{Sections: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishTimestampSetOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateParams{Title: "บทความ", Slug: "publish-once"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.PublishedAt != nil {
		t.Fatal("draft should have no publish timestamp")
	}

	published := true
	entry, err = svc.Update(ctx, entry.ID, UpdateParams{IsPublished: &published})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if entry.PublishedAt == nil {
		t.Fatal("publishing should stamp publishedAt")
	}
	stamped := *entry.PublishedAt

	unpublished := false
	entry, err = svc.Update(ctx, entry.ID, UpdateParams{IsPublished: &unpublished})
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if entry.PublishedAt == nil || !entry.PublishedAt.Equal(stamped) {
		t.Fatalf("unpublishing must keep the original timestamp, got %v", entry.PublishedAt)
	}

	entry, err = svc.Update(ctx, entry.ID, UpdateParams{IsPublished: &published})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !entry.PublishedAt.Equal(stamped) {
		t.Fatalf("republishing must not rewrite the timestamp, got %v", entry.PublishedAt)
	}
}

func TestUpdateClearCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryParams{Name: "ความรู้", Slug: "knowledge"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	entry, err := svc.Create(ctx, CreateParams{Title: "มีหมวด", Slug: "categorized", CategoryID: &category.ID})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if entry.CategoryID == nil {
		t.Fatal("expected category to be attached")
	}

	entry, err = svc.Update(ctx, entry.ID, UpdateParams{ClearCategory: true})
	if err != nil {
		t.Fatalf("clear category: %v", err)
	}
	if entry.CategoryID != nil {
		t.Fatalf("expected category cleared, got %v", *entry.CategoryID)
	}
}

func TestListFiltersByCategoryAndHidesDrafts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryParams{Name: "โปรโมชั่น", Slug: "promo"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	seed := []CreateParams{
		{Title: "ในหมวด เผยแพร่", Slug: "in-published", CategoryID: &category.ID, IsPublished: true},
		{Title: "ในหมวด ร่าง", Slug: "in-draft", CategoryID: &category.ID},
		{Title: "นอกหมวด", Slug: "outside", IsPublished: true},
	}
	for _, params := range seed {
		if _, err := svc.Create(ctx, params); err != nil {
			t.Fatalf("create %s: %v", params.Slug, err)
		}
	}

	cards, err := svc.List(ctx, "th", "promo", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 1 || cards[0].Slug != "in-published" {
		t.Fatalf("expected only the published in-category blog, got %+v", cards)
	}

	// Unknown category slugs yield an empty list, not an error.
	cards, err = svc.List(ctx, "th", "no-such-category", 0)
	if err != nil {
		t.Fatalf("list unknown category: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(cards))
	}
}

func TestDeleteRemovesSections(t *testing.T) {
	svc, blogs := newTestService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateParams{
		Title:    "จะถูกลบ",
		Slug:     "doomed",
		Sections: []SectionParams{{Content: "a"}, {Content: "b"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	count, err := blogs.CountSections(ctx, entry.ID)
	if err != nil {
		t.Fatalf("count sections: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected sections removed with the blog, %d left", count)
	}

	if err := svc.Delete(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
}

func TestLocalizedCardFallsBackToThai(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateParams{
		Title:       "กล่องสบู่",
		TitleEN:     "Soap Box",
		Excerpt:     "รายละเอียดภาษาไทย",
		Slug:        "soap-box",
		IsPublished: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := svc.GetBySlug(ctx, "soap-box", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Title != "Soap Box" {
		t.Fatalf("expected english title, got %q", detail.Title)
	}
	if detail.Excerpt != "รายละเอียดภาษาไทย" {
		t.Fatalf("expected thai fallback excerpt, got %q", detail.Excerpt)
	}
}
