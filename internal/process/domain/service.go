package domain

import (
	"context"
	"errors"
)

type CreateProcessRequest struct {
	ClientID    string
	CaseNumber  string
	Title       string
	Responsible string
	Status      string
	Notes       string
}

// UpdateProcessRequest is a field-level patch: only non-nil fields are
// applied. ClientID may be patched to move the process to another
// client; the target client must exist.
type UpdateProcessRequest struct {
	ID          string
	ClientID    *string
	CaseNumber  *string
	Title       *string
	Responsible *string
	Status      *string
	Notes       *string
}

type GetProcessRequest struct {
	ID string
}

type DeleteProcessRequest struct {
	ID string
}

type ListByClientRequest struct {
	ClientID string
}

type CreatePhaseRequest struct {
	ProcessID          string
	Description        string
	Condition          string
	PlannedAmountCents int64
}

type UpdatePhaseRequest struct {
	ID                 string
	Description        *string
	Condition          *string
	PlannedAmountCents *int64
}

type ListPhasesRequest struct {
	ProcessID string
}

type DeletePhaseRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateProcessRequest) (Process, error)
	List(context.Context) ([]Process, error)
	ListByClient(context.Context, ListByClientRequest) ([]Process, error)
	GetByID(context.Context, GetProcessRequest) (Process, error)
	Update(context.Context, UpdateProcessRequest) (Process, error)
	Delete(context.Context, DeleteProcessRequest) error

	CreatePhase(context.Context, CreatePhaseRequest) (Phase, error)
	ListPhases(context.Context, ListPhasesRequest) ([]Phase, error)
	UpdatePhase(context.Context, UpdatePhaseRequest) (Phase, error)
	DeletePhase(context.Context, DeletePhaseRequest) error
}

var (
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidID          = errors.New("invalid_id")
	ErrClientNotFound     = errors.New("client_not_found")
	ErrNotFound           = errors.New("not_found")
)
