package lead

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSV column layouts for the two export flavours. Timestamps render as
// RFC 3339 so spreadsheets and scripts parse them the same way.

var contactCSVHeader = []string{
	"id", "created_at", "name", "phone", "email", "company",
	"packaging_type", "subject", "size", "quantity", "message",
	"is_read", "is_contacted", "contacted_at", "notes",
}

var applicationCSVHeader = []string{
	"id", "created_at", "name", "phone", "email", "line_id", "province",
	"current_work", "current_work_label", "expected_income",
	"expected_income_label", "pricing_approach", "pricing_approach_label",
	"confirm_commission", "confirm_pricing",
	"is_read", "is_contacted", "contacted_at", "notes",
}

// ExportContactsCSV streams contact submissions created at or after
// since (zero = all) as CSV rows, oldest-first.
func (s *Service) ExportContactsCSV(ctx context.Context, w io.Writer, since time.Time) error {
	entries, err := s.leads.ContactsCreatedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(contactCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range entries {
		entry := &entries[i]
		row := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.CreatedAt.Format(time.RFC3339),
			entry.Name,
			entry.Phone,
			entry.Email,
			entry.Company,
			entry.PackagingType,
			entry.Subject,
			entry.Size,
			entry.Quantity,
			entry.Message,
			strconv.FormatBool(entry.IsRead),
			strconv.FormatBool(entry.IsContacted),
			formatNullableTime(entry.ContactedAt),
			entry.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportApplicationsCSV streams agent applications created at or after
// since (zero = all) as CSV rows, oldest-first.
func (s *Service) ExportApplicationsCSV(ctx context.Context, w io.Writer, since time.Time) error {
	entries, err := s.leads.ApplicationsCreatedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("load applications: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(applicationCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range entries {
		entry := &entries[i]
		row := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.CreatedAt.Format(time.RFC3339),
			entry.Name,
			entry.Phone,
			entry.Email,
			entry.LineID,
			entry.Province,
			entry.CurrentWork,
			entry.CurrentWorkLabel,
			entry.ExpectedIncome,
			entry.ExpectedIncomeLabel,
			entry.PricingApproach,
			entry.PricingApproachLabel,
			strconv.FormatBool(entry.ConfirmCommission),
			strconv.FormatBool(entry.ConfirmPricing),
			strconv.FormatBool(entry.IsRead),
			strconv.FormatBool(entry.IsContacted),
			formatNullableTime(entry.ContactedAt),
			entry.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatNullableTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
