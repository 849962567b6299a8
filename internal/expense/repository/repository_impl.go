package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/expense/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO expenses (id, description, amount_cents, incurred_on, category, paid, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.Description,
		expense.AmountCents,
		expense.IncurredOn,
		expense.Category,
		expense.Paid,
		expense.CreatedAt,
		expense.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.WithContext(ctx).Raw(
		`SELECT id, description, amount_cents, incurred_on, category, paid, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&expense).Error
	if err != nil {
		return nil, err
	}
	if expense.ID == 0 {
		return nil, nil
	}
	return &expense, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	err := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Order("incurred_on desc, id desc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repo) ListPaid(ctx context.Context, db *gorm.DB) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	err := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where("paid = ?", true).
		Order("incurred_on asc, id asc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Exec(
		`UPDATE expenses SET description = ?, amount_cents = ?, incurred_on = ?, category = ?, paid = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Description,
		expense.AmountCents,
		expense.IncurredOn,
		expense.Category,
		expense.Paid,
		expense.UpdatedAt,
		expense.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM expenses WHERE id = ?`, id).Error
}

func (r *repo) TotalPaid(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE paid = ?`,
		true,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
