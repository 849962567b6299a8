package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/finance/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, phase_id, amount_cents, received_on, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.PhaseID,
		payment.AmountCents,
		payment.ReceivedOn,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT id, phase_id, amount_cents, received_on, created_at, updated_at
		 FROM payments WHERE id = ?`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payments SET amount_cents = ?, received_on = ?, updated_at = ?
		 WHERE id = ?`,
		payment.AmountCents,
		payment.ReceivedOn,
		payment.UpdatedAt,
		payment.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM payments WHERE id = ?`, id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	err := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Order("received_on asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) ListByPhase(ctx context.Context, db *gorm.DB, phaseID snowflake.ID) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	err := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("phase_id = ?", phaseID).
		Order("received_on asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) ListByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) ([]*domain.ProcessPayment, error) {
	var payments []*domain.ProcessPayment
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.phase_id, ph.description AS phase_description, p.amount_cents, p.received_on
		 FROM payments p
		 JOIN phases ph ON ph.id = p.phase_id
		 WHERE ph.process_id = ?
		 ORDER BY p.received_on DESC, p.id DESC`,
		processID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) SumPlannedByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) (int64, error) {
	return r.sum(ctx, db,
		`SELECT COALESCE(SUM(planned_amount_cents), 0) FROM phases WHERE process_id = ?`,
		processID)
}

func (r *repo) SumReceivedByProcess(ctx context.Context, db *gorm.DB, processID snowflake.ID) (int64, error) {
	return r.sum(ctx, db,
		`SELECT COALESCE(SUM(p.amount_cents), 0)
		 FROM payments p
		 JOIN phases ph ON ph.id = p.phase_id
		 WHERE ph.process_id = ?`,
		processID)
}

func (r *repo) SumPlanned(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.sum(ctx, db, `SELECT COALESCE(SUM(planned_amount_cents), 0) FROM phases`)
}

func (r *repo) SumReceived(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.sum(ctx, db, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments`)
}

func (r *repo) ListReceivables(ctx context.Context, db *gorm.DB) ([]*domain.Receivable, error) {
	var receivables []*domain.Receivable
	err := db.WithContext(ctx).Raw(
		`SELECT pr.id AS process_id,
		        pr.title AS process_title,
		        c.id AS client_id,
		        c.name AS client_name,
		        COALESCE(SUM(ph.planned_amount_cents), 0) AS contracted_cents,
		        COALESCE((SELECT SUM(p.amount_cents)
		                  FROM payments p
		                  JOIN phases ph2 ON ph2.id = p.phase_id
		                  WHERE ph2.process_id = pr.id), 0) AS received_cents,
		        COALESCE(SUM(ph.planned_amount_cents), 0) -
		        COALESCE((SELECT SUM(p.amount_cents)
		                  FROM payments p
		                  JOIN phases ph2 ON ph2.id = p.phase_id
		                  WHERE ph2.process_id = pr.id), 0) AS balance_cents
		 FROM processes pr
		 JOIN clients c ON c.id = pr.client_id
		 LEFT JOIN phases ph ON ph.process_id = pr.id
		 GROUP BY pr.id, pr.title, c.id, c.name
		 HAVING COALESCE(SUM(ph.planned_amount_cents), 0) -
		        COALESCE((SELECT SUM(p.amount_cents)
		                  FROM payments p
		                  JOIN phases ph2 ON ph2.id = p.phase_id
		                  WHERE ph2.process_id = pr.id), 0) > 0
		 ORDER BY balance_cents DESC, pr.id ASC`,
	).Scan(&receivables).Error
	if err != nil {
		return nil, err
	}
	return receivables, nil
}

func (r *repo) sum(ctx context.Context, db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(query, args...).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
