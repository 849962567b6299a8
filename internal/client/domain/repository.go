package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	List(ctx context.Context, db *gorm.DB) ([]*Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	// DeleteCascade removes the client and every descendant row in
	// child-to-parent order. Callers run it inside a transaction.
	DeleteCascade(ctx context.Context, tx *gorm.DB, id snowflake.ID) error
}
