package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "packsite/backend/internal/domain/lead"
	"packsite/backend/internal/repository"
)

// recordingPusher captures pushed messages; when fail is set every push
// errors, standing in for an unreachable chat API.
type recordingPusher struct {
	fail     bool
	messages []string
}

func (p *recordingPusher) PushMessage(_ context.Context, _ string, text string) error {
	if p.fail {
		return errors.New("chat api unreachable")
	}
	p.messages = append(p.messages, text)
	return nil
}

func newTestService(t *testing.T, pusher *recordingPusher) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Contact{}, &domain.AgentApplication{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if pusher == nil {
		return NewService(repository.NewLeadRepository(db), nil, "")
	}
	return NewService(repository.NewLeadRepository(db), pusher, "agent-room")
}

func TestSubmitContactDenormalizesLabels(t *testing.T) {
	svc := newTestService(t, nil)

	entry, err := svc.SubmitContact(context.Background(), ContactParams{
		Name:          "สมชาย",
		Phone:         "0812345678",
		PackagingType: "creamTube",
		Size:          "30ml",
		Quantity:      "500",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.Subject != "หลอดครีม / Cream Tube" {
		t.Fatalf("unexpected subject: %q", entry.Subject)
	}
	if entry.Message != "ขนาด/Size: 30ml\nจำนวน/Quantity: 500 ชิ้น/pcs" {
		t.Fatalf("unexpected message: %q", entry.Message)
	}
}

func TestSubmitContactWithoutAnswersKeepsPlaceholder(t *testing.T) {
	svc := newTestService(t, nil)

	entry, err := svc.SubmitContact(context.Background(), ContactParams{Name: "สมหญิง", Phone: "021234567"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.Message != "-" {
		t.Fatalf("expected placeholder message, got %q", entry.Message)
	}
	if entry.Subject != "" {
		t.Fatalf("expected empty subject without packaging type, got %q", entry.Subject)
	}
}

func TestSubmitContactRequiresNameAndPhone(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.SubmitContact(ctx, ContactParams{Phone: "0811111111"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without name, got %v", err)
	}
	if _, err := svc.SubmitContact(ctx, ContactParams{Name: "ไม่มีเบอร์"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without phone, got %v", err)
	}
}

func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	pusher := &recordingPusher{fail: true}
	svc := newTestService(t, pusher)

	entry, err := svc.SubmitContact(context.Background(), ContactParams{Name: "ทดสอบ", Phone: "0800000000"})
	if err != nil {
		t.Fatalf("submission must not fail on a broken notifier: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("submission should have been persisted")
	}
}

func TestSubmitContactNotificationContent(t *testing.T) {
	pusher := &recordingPusher{}
	svc := newTestService(t, pusher)

	_, err := svc.SubmitContact(context.Background(), ContactParams{
		Name:          "วิชัย",
		Phone:         "0899999999",
		Company:       "ไทยแพ็ค",
		PackagingType: "jar",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(pusher.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(pusher.messages))
	}
	text := pusher.messages[0]
	for _, want := range []string{"New contact inquiry", "วิชัย", "0899999999", "ไทยแพ็ค", "กระปุกครีม / Cream Jar"} {
		if !strings.Contains(text, want) {
			t.Fatalf("notification missing %q:\n%s", want, text)
		}
	}
}

func TestSubmitApplicationResolvesLabelsAndSnapshot(t *testing.T) {
	svc := newTestService(t, nil)

	params := ApplicationParams{
		Name:              "อรทัย",
		Phone:             "0822222222",
		Province:          "เชียงใหม่",
		CurrentWork:       "onlineSeller",
		ExpectedIncome:    "10k-30k",
		PricingApproach:   "notSure",
		ConfirmCommission: true,
	}
	entry, err := svc.SubmitAgentApplication(context.Background(), params)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if entry.CurrentWorkLabel != "แม่ค้าออนไลน์ / Online Seller" {
		t.Fatalf("unexpected work label: %q", entry.CurrentWorkLabel)
	}
	if entry.ExpectedIncomeLabel != "10,000 - 30,000 บาท / 10,000 - 30,000 THB" {
		t.Fatalf("unexpected income label: %q", entry.ExpectedIncomeLabel)
	}
	if entry.PricingApproachLabel != "ยังไม่แน่ใจ / Not sure yet" {
		t.Fatalf("unexpected pricing label: %q", entry.PricingApproachLabel)
	}
	if !entry.ConfirmCommission || entry.ConfirmPricing {
		t.Fatalf("confirmation flags must be stored verbatim: %+v", entry)
	}

	var snapshot ApplicationParams
	if err := json.Unmarshal(entry.Answers, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snapshot != params {
		t.Fatalf("snapshot drifted from the submitted payload: %+v", snapshot)
	}
}

func TestUnknownEnumKeysStayVisible(t *testing.T) {
	svc := newTestService(t, nil)

	entry, err := svc.SubmitAgentApplication(context.Background(), ApplicationParams{
		Name:        "ผู้สมัคร",
		Phone:       "0833333333",
		CurrentWork: "astronaut",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.CurrentWorkLabel != "astronaut" {
		t.Fatalf("unknown keys should pass through, got %q", entry.CurrentWorkLabel)
	}
}

func TestContactedAtTracksFlag(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	entry, err := svc.SubmitContact(ctx, ContactParams{Name: "ติดตาม", Phone: "0844444444"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	entry, err = svc.MarkContactContacted(ctx, entry.ID, true)
	if err != nil {
		t.Fatalf("mark contacted: %v", err)
	}
	if !entry.IsContacted || entry.ContactedAt == nil {
		t.Fatalf("expected contactedAt stamped, got %+v", entry)
	}

	entry, err = svc.MarkContactContacted(ctx, entry.ID, false)
	if err != nil {
		t.Fatalf("unmark contacted: %v", err)
	}
	if entry.IsContacted || entry.ContactedAt != nil {
		t.Fatalf("expected contactedAt cleared, got %+v", entry)
	}
}

func TestListContactsCountsUnread(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.SubmitContact(ctx, ContactParams{Name: "หนึ่ง", Phone: "0855555551"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SubmitContact(ctx, ContactParams{Name: "สอง", Phone: "0855555552"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.MarkContactRead(ctx, first.ID, true); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	list, err := svc.ListContacts(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 2 || list.Unread != 1 {
		t.Fatalf("expected total 2 unread 1, got total %d unread %d", list.Total, list.Unread)
	}
	if list.Entries[0].Name != "สอง" {
		t.Fatalf("expected newest-first listing, got %q first", list.Entries[0].Name)
	}
}

func TestExportContactsCSV(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	for _, params := range []ContactParams{
		{Name: "ก", Phone: "0861111111", PackagingType: "box"},
		{Name: "ข", Phone: "0862222222"},
	} {
		if _, err := svc.SubmitContact(ctx, params); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	var buf strings.Builder
	if err := svc.ExportContactsCSV(ctx, &buf, time.Time{}); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,created_at,name,phone") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// Oldest first.
	if !strings.Contains(lines[1], "0861111111") || !strings.Contains(lines[2], "0862222222") {
		t.Fatalf("rows out of order:\n%s", buf.String())
	}
}

func TestDeleteContactNotFound(t *testing.T) {
	svc := newTestService(t, nil)

	if err := svc.DeleteContact(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
