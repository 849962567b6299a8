package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Process statuses.
const (
	StatusActive    = "Active"
	StatusClosed    = "Closed"
	StatusSuspended = "Suspended"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusClosed, StatusSuspended:
		return true
	default:
		return false
	}
}

// Process is a legal matter tracked for a client. Payment phases
// attach to it; deleting a process removes its phases and payments.
type Process struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID    snowflake.ID `gorm:"not null;index" json:"client_id"`
	CaseNumber  string       `gorm:"column:case_number" json:"case_number,omitempty"`
	Title       string       `gorm:"not null" json:"title"`
	Responsible string       `json:"responsible,omitempty"`
	Status      string       `gorm:"not null;default:Active" json:"status"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Process) TableName() string { return "processes" }

// Phase is a conditional payment milestone within a process.
type Phase struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	ProcessID          snowflake.ID `gorm:"not null;index" json:"process_id"`
	Description        string       `gorm:"not null" json:"description"`
	Condition          string       `json:"condition,omitempty"`
	PlannedAmountCents int64        `gorm:"not null;default:0" json:"planned_amount_cents"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Phase) TableName() string { return "phases" }
