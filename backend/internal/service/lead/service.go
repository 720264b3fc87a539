package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/lead"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/metrics"
	"packsite/backend/internal/infra/notify"
	"packsite/backend/internal/repository"
)

// Sentinel errors the handlers map onto response codes.
var (
	ErrNotFound   = errors.New("lead not found")
	ErrValidation = errors.New("invalid lead payload")
)

// Service handles the two public intake forms and the admin follow-up
// workflow on their submissions.
type Service struct {
	leads     *repository.LeadRepository
	pusher    notify.Pusher
	recipient string
	log       *zap.SugaredLogger
}

// NewService constructs the lead service. pusher may be nil when the
// chat webhook is not configured; submissions then persist without a
// notification.
func NewService(leads *repository.LeadRepository, pusher notify.Pusher, recipient string) *Service {
	return &Service{
		leads:     leads,
		pusher:    pusher,
		recipient: recipient,
		log:       logger.S().With("component", "lead-service"),
	}
}

// ContactParams is the public contact form payload.
type ContactParams struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Company       string `json:"company"`
	PackagingType string `json:"packaging_type"`
	Size          string `json:"size"`
	Quantity      string `json:"quantity"`
}

// ApplicationParams is the public agent application payload.
type ApplicationParams struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	LineID            string `json:"line_id"`
	Province          string `json:"province"`
	CurrentWork       string `json:"current_work"`
	ExpectedIncome    string `json:"expected_income"`
	PricingApproach   string `json:"pricing_approach"`
	ConfirmCommission bool   `json:"confirm_commission"`
	ConfirmPricing    bool   `json:"confirm_pricing"`
}

// ContactList is an admin contact listing with pagination and the
// unread badge counter.
type ContactList struct {
	Entries []domain.Contact `json:"entries"`
	Total   int64            `json:"total"`
	Unread  int64            `json:"unread"`
}

// ApplicationList is an admin application listing with pagination and
// the unread badge counter.
type ApplicationList struct {
	Entries []domain.AgentApplication `json:"entries"`
	Total   int64                     `json:"total"`
	Unread  int64                     `json:"unread"`
}

// SubmitContact stores a contact form submission, denormalizing the
// packaging type into a bilingual subject and the size/quantity answers
// into the message. The chat notification afterwards is best effort:
// its failure is logged and never surfaced to the visitor.
func (s *Service) SubmitContact(ctx context.Context, params ContactParams) (*domain.Contact, error) {
	name := strings.TrimSpace(params.Name)
	phone := strings.TrimSpace(params.Phone)
	if name == "" || phone == "" {
		metrics.ObserveLeadSubmission("contact", "rejected")
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}

	entry := &domain.Contact{
		Name:          name,
		Phone:         phone,
		Email:         strings.TrimSpace(params.Email),
		Company:       strings.TrimSpace(params.Company),
		PackagingType: strings.TrimSpace(params.PackagingType),
		Subject:       domain.PackagingTypeLabel(params.PackagingType),
		Size:          strings.TrimSpace(params.Size),
		Quantity:      strings.TrimSpace(params.Quantity),
		Message:       domain.BuildContactMessage(params.Size, params.Quantity),
	}

	if err := s.leads.CreateContact(ctx, entry); err != nil {
		metrics.ObserveLeadSubmission("contact", "error")
		return nil, fmt.Errorf("store contact: %w", err)
	}
	metrics.ObserveLeadSubmission("contact", "ok")

	s.pushNotification(ctx, contactNotification(entry))
	return entry, nil
}

// SubmitAgentApplication stores an agent application, resolving the
// three enumerated answers into bilingual labels and snapshotting the
// full payload as JSON. The confirmation flags are recorded exactly as
// submitted. Notification is best effort, as for contacts.
func (s *Service) SubmitAgentApplication(ctx context.Context, params ApplicationParams) (*domain.AgentApplication, error) {
	name := strings.TrimSpace(params.Name)
	phone := strings.TrimSpace(params.Phone)
	if name == "" || phone == "" {
		metrics.ObserveLeadSubmission("agent", "rejected")
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}

	snapshot, err := json.Marshal(params)
	if err != nil {
		metrics.ObserveLeadSubmission("agent", "error")
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	entry := &domain.AgentApplication{
		Name:                 name,
		Phone:                phone,
		Email:                strings.TrimSpace(params.Email),
		LineID:               strings.TrimSpace(params.LineID),
		Province:             strings.TrimSpace(params.Province),
		CurrentWork:          strings.TrimSpace(params.CurrentWork),
		CurrentWorkLabel:     domain.CurrentWorkLabel(params.CurrentWork),
		ExpectedIncome:       strings.TrimSpace(params.ExpectedIncome),
		ExpectedIncomeLabel:  domain.ExpectedIncomeLabel(params.ExpectedIncome),
		PricingApproach:      strings.TrimSpace(params.PricingApproach),
		PricingApproachLabel: domain.PricingApproachLabel(params.PricingApproach),
		Answers:              datatypes.JSON(snapshot),
		ConfirmCommission:    params.ConfirmCommission,
		ConfirmPricing:       params.ConfirmPricing,
	}

	if err := s.leads.CreateApplication(ctx, entry); err != nil {
		metrics.ObserveLeadSubmission("agent", "error")
		return nil, fmt.Errorf("store application: %w", err)
	}
	metrics.ObserveLeadSubmission("agent", "ok")

	s.pushNotification(ctx, applicationNotification(entry))
	return entry, nil
}

// ListContacts returns contact submissions newest-first for the admin
// dashboard, with the unread counter for the sidebar badge.
func (s *Service) ListContacts(ctx context.Context, offset, limit int) (*ContactList, error) {
	entries, total, err := s.leads.ListContacts(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	unread, err := s.leads.CountUnreadContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count unread contacts: %w", err)
	}
	return &ContactList{Entries: entries, Total: total, Unread: unread}, nil
}

// ListApplications returns agent applications newest-first for the
// admin dashboard, with the unread counter.
func (s *Service) ListApplications(ctx context.Context, offset, limit int) (*ApplicationList, error) {
	entries, total, err := s.leads.ListApplications(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	unread, err := s.leads.CountUnreadApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("count unread applications: %w", err)
	}
	return &ApplicationList{Entries: entries, Total: total, Unread: unread}, nil
}

// MarkContactRead flips the read flag on a contact submission.
func (s *Service) MarkContactRead(ctx context.Context, id uint, read bool) (*domain.Contact, error) {
	entry, err := s.loadContact(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.IsRead = read
	if err := s.leads.UpdateContact(ctx, entry); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return entry, nil
}

// MarkContactContacted flips the follow-up flag on a contact
// submission. ContactedAt tracks the flag exactly: stamped when it
// turns on, cleared when it turns off.
func (s *Service) MarkContactContacted(ctx context.Context, id uint, contacted bool) (*domain.Contact, error) {
	entry, err := s.loadContact(ctx, id)
	if err != nil {
		return nil, err
	}
	applyContacted(&entry.IsContacted, &entry.ContactedAt, contacted)
	if err := s.leads.UpdateContact(ctx, entry); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return entry, nil
}

// SetContactNotes replaces the admin notes on a contact submission.
func (s *Service) SetContactNotes(ctx context.Context, id uint, notes string) (*domain.Contact, error) {
	entry, err := s.loadContact(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Notes = notes
	if err := s.leads.UpdateContact(ctx, entry); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return entry, nil
}

// DeleteContact removes a contact submission.
func (s *Service) DeleteContact(ctx context.Context, id uint) error {
	if err := s.leads.DeleteContact(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// MarkApplicationRead flips the read flag on an agent application.
func (s *Service) MarkApplicationRead(ctx context.Context, id uint, read bool) (*domain.AgentApplication, error) {
	entry, err := s.loadApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.IsRead = read
	if err := s.leads.UpdateApplication(ctx, entry); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return entry, nil
}

// MarkApplicationContacted flips the follow-up flag on an agent
// application, with the same contactedAt coupling as contacts.
func (s *Service) MarkApplicationContacted(ctx context.Context, id uint, contacted bool) (*domain.AgentApplication, error) {
	entry, err := s.loadApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	applyContacted(&entry.IsContacted, &entry.ContactedAt, contacted)
	if err := s.leads.UpdateApplication(ctx, entry); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return entry, nil
}

// SetApplicationNotes replaces the admin notes on an agent application.
func (s *Service) SetApplicationNotes(ctx context.Context, id uint, notes string) (*domain.AgentApplication, error) {
	entry, err := s.loadApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Notes = notes
	if err := s.leads.UpdateApplication(ctx, entry); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return entry, nil
}

// DeleteApplication removes an agent application.
func (s *Service) DeleteApplication(ctx context.Context, id uint) error {
	if err := s.leads.DeleteApplication(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

func (s *Service) loadContact(ctx context.Context, id uint) (*domain.Contact, error) {
	entry, err := s.leads.FindContactByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load contact: %w", err)
	}
	return entry, nil
}

func (s *Service) loadApplication(ctx context.Context, id uint) (*domain.AgentApplication, error) {
	entry, err := s.leads.FindApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load application: %w", err)
	}
	return entry, nil
}

// applyContacted couples the contactedAt timestamp to the flag: set on
// the true edge, cleared on the false edge, freely togglable.
func applyContacted(flag *bool, at **time.Time, contacted bool) {
	*flag = contacted
	if contacted {
		now := time.Now()
		*at = &now
	} else {
		*at = nil
	}
}

// pushNotification sends the chat message without tying its fate to the
// request: the submission is already stored, so the push runs on a
// detached context and only logs on failure.
func (s *Service) pushNotification(ctx context.Context, text string) {
	if s.pusher == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	if err := s.pusher.PushMessage(detached, s.recipient, text); err != nil {
		metrics.ObserveChatPush("error")
		s.log.Warnw("chat notification failed", "error", err)
		return
	}
	metrics.ObserveChatPush("ok")
}

func contactNotification(entry *domain.Contact) string {
	lines := []string{
		"มีข้อความติดต่อใหม่ / New contact inquiry",
		"ชื่อ/Name: " + entry.Name,
		"โทร/Phone: " + entry.Phone,
	}
	if entry.Email != "" {
		lines = append(lines, "อีเมล/Email: "+entry.Email)
	}
	if entry.Company != "" {
		lines = append(lines, "บริษัท/Company: "+entry.Company)
	}
	if entry.Subject != "" {
		lines = append(lines, "สนใจ/Interested in: "+entry.Subject)
	}
	lines = append(lines, entry.Message)
	return strings.Join(lines, "\n")
}

func applicationNotification(entry *domain.AgentApplication) string {
	lines := []string{
		"มีผู้สมัครตัวแทนใหม่ / New agent application",
		"ชื่อ/Name: " + entry.Name,
		"โทร/Phone: " + entry.Phone,
	}
	if entry.Province != "" {
		lines = append(lines, "จังหวัด/Province: "+entry.Province)
	}
	if entry.CurrentWorkLabel != "" {
		lines = append(lines, "อาชีพ/Work: "+entry.CurrentWorkLabel)
	}
	if entry.ExpectedIncomeLabel != "" {
		lines = append(lines, "รายได้ที่คาดหวัง/Income: "+entry.ExpectedIncomeLabel)
	}
	return strings.Join(lines, "\n")
}
