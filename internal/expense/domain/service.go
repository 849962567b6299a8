package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lexflow/lexfin/pkg/monthly"
)

type CreateExpenseRequest struct {
	Description string
	AmountCents int64
	IncurredOn  time.Time
	Category    string
	Paid        *bool
}

// UpdateExpenseRequest is a field-level patch: only non-nil fields
// are applied.
type UpdateExpenseRequest struct {
	ID          string
	Description *string
	AmountCents *int64
	IncurredOn  *time.Time
	Category    *string
	Paid        *bool
}

type GetExpenseRequest struct {
	ID string
}

type DeleteExpenseRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateExpenseRequest) (Expense, error)
	List(context.Context) ([]Expense, error)
	GetByID(context.Context, GetExpenseRequest) (Expense, error)
	Update(context.Context, UpdateExpenseRequest) (Expense, error)
	Delete(context.Context, DeleteExpenseRequest) error

	// TotalPaid sums paid expenses only.
	TotalPaid(context.Context) (int64, error)
	// MonthlyTotals groups paid expenses by year-month, ascending.
	MonthlyTotals(context.Context) ([]monthly.Total, error)
}

var (
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidDate        = errors.New("invalid_date")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
