package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is the firm's customer. It owns zero or more processes;
// deleting a client removes its whole process/phase/payment subtree.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	TaxID     string       `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
