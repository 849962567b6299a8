package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clients (id, name, tax_id, email, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		client.ID,
		client.Name,
		client.TaxID,
		client.Email,
		client.Phone,
		client.CreatedAt,
		client.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, tax_id, email, phone, created_at, updated_at
		 FROM clients WHERE id = ?`,
		id,
	).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Client, error) {
	var clients []*domain.Client
	err := db.WithContext(ctx).
		Model(&domain.Client{}).
		Order("name asc").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clients SET name = ?, tax_id = ?, email = ?, phone = ?, updated_at = ?
		 WHERE id = ?`,
		client.Name,
		client.TaxID,
		client.Email,
		client.Phone,
		client.UpdatedAt,
		client.ID,
	).Error
}

func (r *repo) DeleteCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	steps := []string{
		`DELETE FROM payments WHERE phase_id IN (
			SELECT id FROM phases WHERE process_id IN (
				SELECT id FROM processes WHERE client_id = ?))`,
		`DELETE FROM phases WHERE process_id IN (
			SELECT id FROM processes WHERE client_id = ?)`,
		`DELETE FROM processes WHERE client_id = ?`,
		`DELETE FROM clients WHERE id = ?`,
	}
	for _, stmt := range steps {
		if err := tx.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}
	return nil
}
