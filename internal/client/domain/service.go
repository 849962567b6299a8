package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name  string
	TaxID string
	Email string
	Phone string
}

// UpdateClientRequest is a field-level patch: only non-nil fields are
// applied to the stored record.
type UpdateClientRequest struct {
	ID    string
	Name  *string
	TaxID *string
	Email *string
	Phone *string
}

type GetClientRequest struct {
	ID string
}

type DeleteClientRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context) ([]Client, error)
	GetByID(context.Context, GetClientRequest) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(context.Context, DeleteClientRequest) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
