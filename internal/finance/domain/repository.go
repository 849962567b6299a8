package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	Update(ctx context.Context, db *gorm.DB, payment *Payment) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	List(ctx context.Context, db *gorm.DB) ([]*Payment, error)
	ListByPhase(ctx context.Context, db *gorm.DB, phaseID snowflake.ID) ([]*Payment, error)
	ListByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) ([]*ProcessPayment, error)

	// Aggregates run as single SUM queries; row sets are only
	// materialized for the month-grouping views.
	SumPlannedByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) (int64, error)
	SumReceivedByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) (int64, error)
	SumPlanned(ctx context.Context, db *gorm.DB) (int64, error)
	SumReceived(ctx context.Context, db *gorm.DB) (int64, error)

	// ListReceivables returns processes whose contracted total exceeds
	// what was received, largest balance first.
	ListReceivables(ctx context.Context, db *gorm.DB) ([]*Receivable, error)
}
