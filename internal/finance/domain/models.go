package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Payment is a money receipt recorded against a phase. Terminal
// entity, no children.
type Payment struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	PhaseID     snowflake.ID   `gorm:"not null;index" json:"phase_id"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	ReceivedOn  datatypes.Date `gorm:"not null;index" json:"received_on"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// ProcessPayment is a payment row joined with its phase description,
// as shown in the per-process receipt history.
type ProcessPayment struct {
	ID               snowflake.ID   `json:"id"`
	PhaseID          snowflake.ID   `json:"phase_id"`
	PhaseDescription string         `json:"phase_description"`
	AmountCents      int64          `json:"amount_cents"`
	ReceivedOn       datatypes.Date `json:"received_on"`
}

// ProcessFinancials are the derived figures for one process. Balance
// may be negative on overpayment; nothing clamps it.
type ProcessFinancials struct {
	ContractedCents  int64   `json:"contracted_cents"`
	ReceivedCents    int64   `json:"received_cents"`
	BalanceCents     int64   `json:"balance_cents"`
	FractionReceived float64 `json:"fraction_received"`
}

// GlobalFinancials are the same sums across every process.
type GlobalFinancials struct {
	ContractedCents int64 `json:"contracted_cents"`
	ReceivedCents   int64 `json:"received_cents"`
	BalanceCents    int64 `json:"balance_cents"`
}

// Receivable is a process that still has money outstanding, joined
// with its client for display.
type Receivable struct {
	ProcessID       snowflake.ID `json:"process_id"`
	ProcessTitle    string       `json:"process_title"`
	ClientID        snowflake.ID `json:"client_id"`
	ClientName      string       `json:"client_name"`
	ContractedCents int64        `json:"contracted_cents"`
	ReceivedCents   int64        `json:"received_cents"`
	BalanceCents    int64        `json:"balance_cents"`
}
