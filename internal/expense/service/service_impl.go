package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lexflow/lexfin/internal/expense/domain"
	"github.com/lexflow/lexfin/pkg/monthly"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateExpenseRequest) (domain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Expense{}, domain.ErrInvalidDescription
	}
	if req.AmountCents <= 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	if req.IncurredOn.IsZero() {
		return domain.Expense{}, domain.ErrInvalidDate
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !domain.ValidCategory(category) {
		return domain.Expense{}, domain.ErrInvalidCategory
	}

	paid := true
	if req.Paid != nil {
		paid = *req.Paid
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ID:          s.genID.Generate(),
		Description: description,
		AmountCents: req.AmountCents,
		IncurredOn:  datatypes.Date(req.IncurredOn),
		Category:    category,
		Paid:        paid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &expense); err != nil {
		return domain.Expense{}, err
	}

	return expense, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		expenses = append(expenses, *item)
	}
	return expenses, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetExpenseRequest) (domain.Expense, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Expense{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if item == nil {
		return domain.Expense{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateExpenseRequest) (domain.Expense, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Expense{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if item == nil {
		return domain.Expense{}, domain.ErrNotFound
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Expense{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return domain.Expense{}, domain.ErrInvalidAmount
		}
		item.AmountCents = *req.AmountCents
	}
	if req.IncurredOn != nil {
		if req.IncurredOn.IsZero() {
			return domain.Expense{}, domain.ErrInvalidDate
		}
		item.IncurredOn = datatypes.Date(*req.IncurredOn)
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if !domain.ValidCategory(category) {
			return domain.Expense{}, domain.ErrInvalidCategory
		}
		item.Category = category
	}
	if req.Paid != nil {
		item.Paid = *req.Paid
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Expense{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteExpenseRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) TotalPaid(ctx context.Context) (int64, error) {
	return s.repo.TotalPaid(ctx, s.db)
}

func (s *Service) MonthlyTotals(ctx context.Context) ([]monthly.Total, error) {
	items, err := s.repo.ListPaid(ctx, s.db)
	if err != nil {
		return nil, err
	}

	points := make([]monthly.Point, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		points = append(points, monthly.Point{
			When:  time.Time(item.IncurredOn),
			Cents: item.AmountCents,
		})
	}
	return monthly.Group(points), nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
