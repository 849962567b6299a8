package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, process *Process) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Process, error)
	List(ctx context.Context, db *gorm.DB) ([]*Process, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]*Process, error)
	Update(ctx context.Context, db *gorm.DB, process *Process) error
	// DeleteCascade removes the process, its phases and their payments
	// in child-to-parent order. Callers run it inside a transaction.
	DeleteCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error

	InsertPhase(ctx context.Context, db *gorm.DB, phase *Phase) error
	FindPhaseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Phase, error)
	ListPhasesByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) ([]*Phase, error)
	UpdatePhase(ctx context.Context, db *gorm.DB, phase *Phase) error
	DeletePhaseCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error
}
