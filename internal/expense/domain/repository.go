package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, expense *Expense) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Expense, error)
	List(ctx context.Context, db *gorm.DB) ([]*Expense, error)
	// ListPaid returns only cash-settled expenses; accrued but unpaid
	// rows are excluded from every financial figure.
	ListPaid(ctx context.Context, db *gorm.DB) ([]*Expense, error)
	Update(ctx context.Context, db *gorm.DB, expense *Expense) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	TotalPaid(ctx context.Context, db *gorm.DB) (int64, error)
}
