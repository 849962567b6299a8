package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Expense categories.
const (
	CategoryGeneral        = "General"
	CategoryPersonnel      = "Personnel"
	CategoryInfrastructure = "Infrastructure"
	CategoryMarketing      = "Marketing"
	CategoryTaxes          = "Taxes"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryGeneral, CategoryPersonnel, CategoryInfrastructure, CategoryMarketing, CategoryTaxes:
		return true
	default:
		return false
	}
}

// Expense is a firm-level outflow. It lives outside the
// client/process/phase/payment graph and never cascades.
type Expense struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	Description string         `gorm:"not null" json:"description"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	IncurredOn  datatypes.Date `gorm:"not null;index" json:"incurred_on"`
	Category    string         `gorm:"not null;default:General" json:"category"`
	Paid        bool           `gorm:"not null;default:true" json:"paid"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Expense) TableName() string { return "expenses" }
