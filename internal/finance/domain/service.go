package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lexflow/lexfin/pkg/monthly"
)

type CreatePaymentRequest struct {
	PhaseID     string
	AmountCents int64
	ReceivedOn  time.Time
}

// UpdatePaymentRequest is a field-level patch: only non-nil fields
// are applied.
type UpdatePaymentRequest struct {
	ID          string
	AmountCents *int64
	ReceivedOn  *time.Time
}

type DeletePaymentRequest struct {
	ID string
}

type ListByProcessRequest struct {
	ProcessID string
}

type ProcessFinancialsRequest struct {
	ProcessID string
}

type Service interface {
	CreatePayment(context.Context, CreatePaymentRequest) (Payment, error)
	UpdatePayment(context.Context, UpdatePaymentRequest) (Payment, error)
	DeletePayment(context.Context, DeletePaymentRequest) error
	ListByProcess(context.Context, ListByProcessRequest) ([]ProcessPayment, error)

	ProcessFinancials(context.Context, ProcessFinancialsRequest) (ProcessFinancials, error)
	GlobalFinancials(context.Context) (GlobalFinancials, error)
	MonthlyRevenue(context.Context) ([]monthly.Total, error)
	Cashflow(context.Context) ([]monthly.Flow, error)
	Receivables(context.Context) ([]Receivable, error)
}

var (
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidDate   = errors.New("invalid_date")
	ErrInvalidID     = errors.New("invalid_id")
	ErrPhaseNotFound = errors.New("phase_not_found")
	ErrNotFound      = errors.New("not_found")
)
