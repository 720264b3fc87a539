package lead

import (
	"time"

	"gorm.io/datatypes"
)

// Contact is a submission from the public contact form. The subject and
// message columns are denormalized at intake time from the enumerated
// packaging type and the free-form size/quantity answers, so the admin
// list renders without re-running the label tables.
type Contact struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:128;not null" json:"name"`
	Phone         string     `gorm:"size:32;not null" json:"phone"`
	Email         string     `gorm:"size:255" json:"email"`
	Company       string     `gorm:"size:255" json:"company"`
	PackagingType string     `gorm:"size:64" json:"packaging_type"` // Raw enum key as submitted.
	Subject       string     `gorm:"size:255" json:"subject"`       // Bilingual label resolved from PackagingType.
	Size          string     `gorm:"size:64" json:"size"`
	Quantity      string     `gorm:"size:64" json:"quantity"`
	Message       string     `gorm:"type:text" json:"message"` // Built from size/quantity, "-" when both absent.
	IsRead        bool       `gorm:"not null;default:false;index" json:"is_read"`
	IsContacted   bool       `gorm:"not null;default:false;index" json:"is_contacted"`
	ContactedAt   *time.Time `json:"contacted_at"` // Set when IsContacted flips true, cleared when it flips false.
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AgentApplication is a submission from the reseller-agent signup form.
// The three enumerated answers keep both the raw key and the resolved
// bilingual label; the full answer set is additionally snapshotted as
// JSON so the form can evolve without schema churn.
//
// The two confirmation flags are stored exactly as the client sent them.
// The form gates submission on them client-side; the server records, it
// does not re-enforce (see DESIGN.md).
type AgentApplication struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"size:128;not null" json:"name"`
	Phone               string         `gorm:"size:32;not null" json:"phone"`
	Email               string         `gorm:"size:255" json:"email"`
	LineID              string         `gorm:"size:128" json:"line_id"`
	Province            string         `gorm:"size:128" json:"province"`
	CurrentWork         string         `gorm:"size:64" json:"current_work"`
	CurrentWorkLabel    string         `gorm:"size:255" json:"current_work_label"`
	ExpectedIncome      string         `gorm:"size:64" json:"expected_income"`
	ExpectedIncomeLabel string         `gorm:"size:255" json:"expected_income_label"`
	PricingApproach     string         `gorm:"size:64" json:"pricing_approach"`
	PricingApproachLabel string        `gorm:"size:255" json:"pricing_approach_label"`
	Answers             datatypes.JSON `gorm:"type:text" json:"answers"`
	ConfirmCommission   bool           `gorm:"not null;default:false" json:"confirm_commission"`
	ConfirmPricing      bool           `gorm:"not null;default:false" json:"confirm_pricing"`
	IsRead              bool           `gorm:"not null;default:false;index" json:"is_read"`
	IsContacted         bool           `gorm:"not null;default:false;index" json:"is_contacted"`
	ContactedAt         *time.Time     `json:"contacted_at"`
	Notes               string         `gorm:"type:text" json:"notes"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
