package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/lead"
)

// LeadRepository handles both inbound lead tables: contact form
// submissions and sales-agent applications.
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository constructs the repository.
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// CreateContact inserts a contact submission.
func (r *LeadRepository) CreateContact(ctx context.Context, entry *lead.Contact) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListContacts returns contact submissions newest-first with a total
// count for pagination.
func (r *LeadRepository) ListContacts(ctx context.Context, offset, limit int) ([]lead.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&lead.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []lead.Contact
	query := r.db.WithContext(ctx).
		Model(&lead.Contact{}).
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

// FindContactByID loads a contact submission.
func (r *LeadRepository) FindContactByID(ctx context.Context, id uint) (*lead.Contact, error) {
	var entry lead.Contact
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateContact saves a contact submission by primary key.
func (r *LeadRepository) UpdateContact(ctx context.Context, entry *lead.Contact) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteContact removes a contact submission, reporting
// gorm.ErrRecordNotFound for a missing id.
func (r *LeadRepository) DeleteContact(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&lead.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUnreadContacts returns the number of unread contact submissions.
func (r *LeadRepository) CountUnreadContacts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&lead.Contact{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// ContactsCreatedSince returns contact submissions created at or after
// the cutoff, oldest-first. Used by the CSV export.
func (r *LeadRepository) ContactsCreatedSince(ctx context.Context, cutoff time.Time) ([]lead.Contact, error) {
	var entries []lead.Contact
	query := r.db.WithContext(ctx).Model(&lead.Contact{}).Order("created_at ASC, id ASC")
	if !cutoff.IsZero() {
		query = query.Where("created_at >= ?", cutoff)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateApplication inserts an agent application.
func (r *LeadRepository) CreateApplication(ctx context.Context, entry *lead.AgentApplication) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListApplications returns agent applications newest-first with a total
// count for pagination.
func (r *LeadRepository) ListApplications(ctx context.Context, offset, limit int) ([]lead.AgentApplication, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&lead.AgentApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []lead.AgentApplication
	query := r.db.WithContext(ctx).
		Model(&lead.AgentApplication{}).
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

// FindApplicationByID loads an agent application.
func (r *LeadRepository) FindApplicationByID(ctx context.Context, id uint) (*lead.AgentApplication, error) {
	var entry lead.AgentApplication
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateApplication saves an agent application by primary key.
func (r *LeadRepository) UpdateApplication(ctx context.Context, entry *lead.AgentApplication) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteApplication removes an agent application, reporting
// gorm.ErrRecordNotFound for a missing id.
func (r *LeadRepository) DeleteApplication(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&lead.AgentApplication{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUnreadApplications returns the number of unread agent
// applications.
func (r *LeadRepository) CountUnreadApplications(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&lead.AgentApplication{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// ApplicationsCreatedSince returns agent applications created at or
// after the cutoff, oldest-first. Used by the CSV export.
func (r *LeadRepository) ApplicationsCreatedSince(ctx context.Context, cutoff time.Time) ([]lead.AgentApplication, error) {
	var entries []lead.AgentApplication
	query := r.db.WithContext(ctx).Model(&lead.AgentApplication{}).Order("created_at ASC, id ASC")
	if !cutoff.IsZero() {
		query = query.Where("created_at >= ?", cutoff)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
