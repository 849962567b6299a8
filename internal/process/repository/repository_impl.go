package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/process/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, process *domain.Process) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO processes (id, client_id, case_number, title, responsible, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		process.ID,
		process.ClientID,
		process.CaseNumber,
		process.Title,
		process.Responsible,
		process.Status,
		process.Notes,
		process.CreatedAt,
		process.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Process, error) {
	var process domain.Process
	err := db.WithContext(ctx).Raw(
		`SELECT id, client_id, case_number, title, responsible, status, notes, created_at, updated_at
		 FROM processes WHERE id = ?`,
		id,
	).Scan(&process).Error
	if err != nil {
		return nil, err
	}
	if process.ID == 0 {
		return nil, nil
	}
	return &process, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Process, error) {
	var processes []*domain.Process
	err := db.WithContext(ctx).
		Model(&domain.Process{}).
		Order("title asc").
		Find(&processes).Error
	if err != nil {
		return nil, err
	}
	return processes, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]*domain.Process, error) {
	var processes []*domain.Process
	err := db.WithContext(ctx).
		Model(&domain.Process{}).
		Where("client_id = ?", clientID).
		Order("title asc").
		Find(&processes).Error
	if err != nil {
		return nil, err
	}
	return processes, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, process *domain.Process) error {
	return db.WithContext(ctx).Exec(
		`UPDATE processes SET client_id = ?, case_number = ?, title = ?, responsible = ?, status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		process.ClientID,
		process.CaseNumber,
		process.Title,
		process.Responsible,
		process.Status,
		process.Notes,
		process.UpdatedAt,
		process.ID,
	).Error
}

func (r *repo) DeleteCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	steps := []string{
		`DELETE FROM payments WHERE phase_id IN (
			SELECT id FROM phases WHERE process_id = ?)`,
		`DELETE FROM phases WHERE process_id = ?`,
		`DELETE FROM processes WHERE id = ?`,
	}
	for _, stmt := range steps {
		if err := tx.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) InsertPhase(ctx context.Context, db *gorm.DB, phase *domain.Phase) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO phases (id, process_id, description, condition, planned_amount_cents, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		phase.ID,
		phase.ProcessID,
		phase.Description,
		phase.Condition,
		phase.PlannedAmountCents,
		phase.CreatedAt,
		phase.UpdatedAt,
	).Error
}

func (r *repo) FindPhaseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Phase, error) {
	var phase domain.Phase
	err := db.WithContext(ctx).Raw(
		`SELECT id, process_id, description, condition, planned_amount_cents, created_at, updated_at
		 FROM phases WHERE id = ?`,
		id,
	).Scan(&phase).Error
	if err != nil {
		return nil, err
	}
	if phase.ID == 0 {
		return nil, nil
	}
	return &phase, nil
}

func (r *repo) ListPhasesByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	err := db.WithContext(ctx).
		Model(&domain.Phase{}).
		Where("process_id = ?", processID).
		Order("id asc").
		Find(&phases).Error
	if err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *repo) UpdatePhase(ctx context.Context, db *gorm.DB, phase *domain.Phase) error {
	return db.WithContext(ctx).Exec(
		`UPDATE phases SET description = ?, condition = ?, planned_amount_cents = ?, updated_at = ?
		 WHERE id = ?`,
		phase.Description,
		phase.Condition,
		phase.PlannedAmountCents,
		phase.UpdatedAt,
		phase.ID,
	).Error
}

func (r *repo) DeletePhaseCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	steps := []string{
		`DELETE FROM payments WHERE phase_id = ?`,
		`DELETE FROM phases WHERE id = ?`,
	}
	for _, stmt := range steps {
		if err := tx.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
