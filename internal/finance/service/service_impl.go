package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	expensedomain "github.com/lexflow/lexfin/internal/expense/domain"
	"github.com/lexflow/lexfin/internal/finance/domain"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"github.com/lexflow/lexfin/pkg/db"
	"github.com/lexflow/lexfin/pkg/monthly"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Processes processdomain.Repository
	Expenses  expensedomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	processes processdomain.Repository
	expenses  expensedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("finance.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		processes: p.Processes,
		expenses:  p.Expenses,
	}
}

func (s *Service) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	phaseID, err := s.parseID(req.PhaseID)
	if err != nil {
		return domain.Payment{}, err
	}
	if req.AmountCents <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	if req.ReceivedOn.IsZero() {
		return domain.Payment{}, domain.ErrInvalidDate
	}

	phase, err := s.processes.FindPhaseByID(ctx, s.db, phaseID)
	if err != nil {
		return domain.Payment{}, err
	}
	if phase == nil {
		return domain.Payment{}, domain.ErrPhaseNotFound
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:          s.genID.Generate(),
		PhaseID:     phaseID,
		AmountCents: req.AmountCents,
		ReceivedOn:  datatypes.Date(req.ReceivedOn),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		// The existence check above can race a concurrent phase delete.
		if db.IsForeignKeyErr(err) {
			return domain.Payment{}, domain.ErrPhaseNotFound
		}
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *Service) UpdatePayment(ctx context.Context, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Payment{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if item == nil {
		return domain.Payment{}, domain.ErrNotFound
	}

	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		item.AmountCents = *req.AmountCents
	}
	if req.ReceivedOn != nil {
		if req.ReceivedOn.IsZero() {
			return domain.Payment{}, domain.ErrInvalidDate
		}
		item.ReceivedOn = datatypes.Date(*req.ReceivedOn)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Payment{}, err
	}

	return *item, nil
}

func (s *Service) DeletePayment(ctx context.Context, req domain.DeletePaymentRequest) error {
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

func (s *Service) ListByProcess(ctx context.Context, req domain.ListByProcessRequest) ([]domain.ProcessPayment, error) {
	processID, err := s.parseID(req.ProcessID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByProcess(ctx, s.db, processID)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.ProcessPayment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}
	return payments, nil
}

// ProcessFinancials derives the contracted/received/balance figures
// for one process. A process with no phases yields all zeros; the
// fraction is defined as exactly 0 when nothing is contracted, even
// if payments exist.
func (s *Service) ProcessFinancials(ctx context.Context, req domain.ProcessFinancialsRequest) (domain.ProcessFinancials, error) {
	processID, err := s.parseID(req.ProcessID)
	if err != nil {
		return domain.ProcessFinancials{}, err
	}

	contracted, err := s.repo.SumPlannedByProcess(ctx, s.db, processID)
	if err != nil {
		return domain.ProcessFinancials{}, err
	}
	received, err := s.repo.SumReceivedByProcess(ctx, s.db, processID)
	if err != nil {
		return domain.ProcessFinancials{}, err
	}

	fraction := 0.0
	if contracted > 0 {
		fraction = float64(received) / float64(contracted)
	}

	return domain.ProcessFinancials{
		ContractedCents:  contracted,
		ReceivedCents:    received,
		BalanceCents:     contracted - received,
		FractionReceived: fraction,
	}, nil
}

func (s *Service) GlobalFinancials(ctx context.Context) (domain.GlobalFinancials, error) {
	contracted, err := s.repo.SumPlanned(ctx, s.db)
	if err != nil {
		return domain.GlobalFinancials{}, err
	}
	received, err := s.repo.SumReceived(ctx, s.db)
	if err != nil {
		return domain.GlobalFinancials{}, err
	}

	return domain.GlobalFinancials{
		ContractedCents: contracted,
		ReceivedCents:   received,
		BalanceCents:    contracted - received,
	}, nil
}

func (s *Service) MonthlyRevenue(ctx context.Context) ([]monthly.Total, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	points := make([]monthly.Point, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		points = append(points, monthly.Point{
			When:  time.Time(item.ReceivedOn),
			Cents: item.AmountCents,
		})
	}
	return monthly.Group(points), nil
}

func (s *Service) Cashflow(ctx context.Context) ([]monthly.Flow, error) {
	revenue, err := s.MonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	return monthly.Merge(revenue, expenses), nil
}

func (s *Service) Receivables(ctx context.Context) ([]domain.Receivable, error) {
	items, err := s.repo.ListReceivables(ctx, s.db)
	if err != nil {
		return nil, err
	}

	receivables := make([]domain.Receivable, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receivables = append(receivables, *item)
	}
	return receivables, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
