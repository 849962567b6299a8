package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	"github.com/lexflow/lexfin/internal/process/domain"
	"github.com/lexflow/lexfin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clients clientdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	clients clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("process.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clients: p.Clients,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProcessRequest) (domain.Process, error) {
	clientID, err := s.parseID(req.ClientID)
	if err != nil {
		return domain.Process{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Process{}, domain.ErrInvalidTitle
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return domain.Process{}, domain.ErrInvalidStatus
	}

	owner, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Process{}, err
	}
	if owner == nil {
		return domain.Process{}, domain.ErrClientNotFound
	}

	now := time.Now().UTC()
	process := domain.Process{
		ID:          s.genID.Generate(),
		ClientID:    clientID,
		CaseNumber:  strings.TrimSpace(req.CaseNumber),
		Title:       title,
		Responsible: strings.TrimSpace(req.Responsible),
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &process); err != nil {
		// The existence check above can race a concurrent client delete.
		if db.IsForeignKeyErr(err) {
			return domain.Process{}, domain.ErrClientNotFound
		}
		return domain.Process{}, err
	}

	return process, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Process, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) ListByClient(ctx context.Context, req domain.ListByClientRequest) ([]domain.Process, error) {
	clientID, err := s.parseID(req.ClientID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProcessRequest) (domain.Process, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Process{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Process{}, err
	}
	if item == nil {
		return domain.Process{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProcessRequest) (domain.Process, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Process{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Process{}, err
	}
	if item == nil {
		return domain.Process{}, domain.ErrNotFound
	}

	if req.ClientID != nil {
		clientID, err := s.parseID(*req.ClientID)
		if err != nil {
			return domain.Process{}, err
		}
		owner, err := s.clients.FindByID(ctx, s.db, clientID)
		if err != nil {
			return domain.Process{}, err
		}
		if owner == nil {
			return domain.Process{}, domain.ErrClientNotFound
		}
		item.ClientID = clientID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Process{}, domain.ErrInvalidTitle
		}
		item.Title = title
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !domain.ValidStatus(status) {
			return domain.Process{}, domain.ErrInvalidStatus
		}
		item.Status = status
	}
	if req.CaseNumber != nil {
		item.CaseNumber = strings.TrimSpace(*req.CaseNumber)
	}
	if req.Responsible != nil {
		item.Responsible = strings.TrimSpace(*req.Responsible)
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Process{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteProcessRequest) error {
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

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("process deleted", zap.String("process_id", id.String()))
	return nil
}

func (s *Service) CreatePhase(ctx context.Context, req domain.CreatePhaseRequest) (domain.Phase, error) {
	processID, err := s.parseID(req.ProcessID)
	if err != nil {
		return domain.Phase{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Phase{}, domain.ErrInvalidDescription
	}
	if req.PlannedAmountCents <= 0 {
		return domain.Phase{}, domain.ErrInvalidAmount
	}

	parent, err := s.repo.FindByID(ctx, s.db, processID)
	if err != nil {
		return domain.Phase{}, err
	}
	if parent == nil {
		return domain.Phase{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	phase := domain.Phase{
		ID:                 s.genID.Generate(),
		ProcessID:          processID,
		Description:        description,
		Condition:          strings.TrimSpace(req.Condition),
		PlannedAmountCents: req.PlannedAmountCents,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.InsertPhase(ctx, s.db, &phase); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.Phase{}, domain.ErrNotFound
		}
		return domain.Phase{}, err
	}

	return phase, nil
}

func (s *Service) ListPhases(ctx context.Context, req domain.ListPhasesRequest) ([]domain.Phase, error) {
	processID, err := s.parseID(req.ProcessID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPhasesByProcess(ctx, s.db, processID)
	if err != nil {
		return nil, err
	}

	phases := make([]domain.Phase, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		phases = append(phases, *item)
	}
	return phases, nil
}

func (s *Service) UpdatePhase(ctx context.Context, req domain.UpdatePhaseRequest) (domain.Phase, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Phase{}, err
	}

	item, err := s.repo.FindPhaseByID(ctx, s.db, id)
	if err != nil {
		return domain.Phase{}, err
	}
	if item == nil {
		return domain.Phase{}, domain.ErrNotFound
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Phase{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.Condition != nil {
		item.Condition = strings.TrimSpace(*req.Condition)
	}
	if req.PlannedAmountCents != nil {
		if *req.PlannedAmountCents < 0 {
			return domain.Phase{}, domain.ErrInvalidAmount
		}
		item.PlannedAmountCents = *req.PlannedAmountCents
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePhase(ctx, s.db, item); err != nil {
		return domain.Phase{}, err
	}

	return *item, nil
}

func (s *Service) DeletePhase(ctx context.Context, req domain.DeletePhaseRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindPhaseByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeletePhaseCascade(ctx, tx, id)
	})
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func deref(items []*domain.Process) []domain.Process {
	processes := make([]domain.Process, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		processes = append(processes, *item)
	}
	return processes
}
