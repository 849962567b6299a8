package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	clientrepository "github.com/lexflow/lexfin/internal/client/repository"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	"github.com/lexflow/lexfin/internal/process/domain"
	"github.com/lexflow/lexfin/internal/process/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProcessService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&clientdomain.Client{},
		&domain.Process{},
		&domain.Phase{},
		&financedomain.Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node := mustNode(t)
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		Clients: clientrepository.Provide(),
	})
	return svc, db, node
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}

func seedClient(t *testing.T, db *gorm.DB, node *snowflake.Node, name string) snowflake.ID {
	t.Helper()
	id := node.Generate()
	err := db.Exec(
		`INSERT INTO clients (id, name, tax_id, email, phone, created_at, updated_at)
		 VALUES (?, ?, '', '', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		id, name,
	).Error
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return id
}

func TestCreateRequiresExistingClient(t *testing.T) {
	svc, _, node := setupProcessService(t)

	_, err := svc.Create(context.Background(), domain.CreateProcessRequest{
		ClientID: node.Generate().String(),
		Title:    "Labor claim",
	})
	if err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestCreateDefaultsStatusToActive(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	clientID := seedClient(t, db, node, "Acme Ltda")

	created, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusActive {
		t.Fatalf("expected status %q, got %q", domain.StatusActive, created.Status)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, db, node := setupProcessService(t)
	clientID := seedClient(t, db, node, "Acme Ltda")

	_, err := svc.Create(context.Background(), domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
		Status:   "archived",
	})
	if err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateReassignsClient(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	firstID := seedClient(t, db, node, "First")
	secondID := seedClient(t, db, node, "Second")

	created, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: firstID.String(),
		Title:    "Contract review",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	target := secondID.String()
	updated, err := svc.Update(ctx, domain.UpdateProcessRequest{
		ID:       created.ID.String(),
		ClientID: &target,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ClientID != secondID {
		t.Fatalf("expected client %s, got %s", secondID, updated.ClientID)
	}

	missing := node.Generate().String()
	_, err = svc.Update(ctx, domain.UpdateProcessRequest{
		ID:       created.ID.String(),
		ClientID: &missing,
	})
	if err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestCreatePhaseRequiresPositiveAmount(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	clientID := seedClient(t, db, node, "Acme Ltda")

	created, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
	})
	if err != nil {
		t.Fatalf("create process: %v", err)
	}

	_, err = svc.CreatePhase(ctx, domain.CreatePhaseRequest{
		ProcessID:          created.ID.String(),
		Description:        "Initial hearing",
		PlannedAmountCents: 0,
	})
	if err != domain.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreatePhaseRequiresExistingProcess(t *testing.T) {
	svc, _, node := setupProcessService(t)

	_, err := svc.CreatePhase(context.Background(), domain.CreatePhaseRequest{
		ProcessID:          node.Generate().String(),
		Description:        "Initial hearing",
		PlannedAmountCents: 100000,
	})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePhaseAllowsZeroPlanned(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	clientID := seedClient(t, db, node, "Acme Ltda")

	process, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
	})
	if err != nil {
		t.Fatalf("create process: %v", err)
	}
	phase, err := svc.CreatePhase(ctx, domain.CreatePhaseRequest{
		ProcessID:          process.ID.String(),
		Description:        "Initial hearing",
		PlannedAmountCents: 100000,
	})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}

	zero := int64(0)
	updated, err := svc.UpdatePhase(ctx, domain.UpdatePhaseRequest{
		ID:                 phase.ID.String(),
		PlannedAmountCents: &zero,
	})
	if err != nil {
		t.Fatalf("update phase: %v", err)
	}
	if updated.PlannedAmountCents != 0 {
		t.Fatalf("expected planned 0, got %d", updated.PlannedAmountCents)
	}

	negative := int64(-1)
	_, err = svc.UpdatePhase(ctx, domain.UpdatePhaseRequest{
		ID:                 phase.ID.String(),
		PlannedAmountCents: &negative,
	})
	if err != domain.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDeleteProcessCascadesPhasesAndPayments(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	clientID := seedClient(t, db, node, "Acme Ltda")

	process, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
	})
	if err != nil {
		t.Fatalf("create process: %v", err)
	}
	phase, err := svc.CreatePhase(ctx, domain.CreatePhaseRequest{
		ProcessID:          process.ID.String(),
		Description:        "Initial hearing",
		PlannedAmountCents: 100000,
	})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	err = db.Exec(
		`INSERT INTO payments (id, phase_id, amount_cents, received_on, created_at, updated_at)
		 VALUES (?, ?, 50000, '2025-01-15', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		node.Generate(), phase.ID,
	).Error
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if err := svc.Delete(ctx, domain.DeleteProcessRequest{ID: process.ID.String()}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, table := range []string{"processes", "phases", "payments"} {
		var count int
		if err := db.Raw(`SELECT COUNT(1) FROM ` + table).Scan(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s empty, got %d rows", table, count)
		}
	}
}

func TestDeletePhaseCascadesPayments(t *testing.T) {
	svc, db, node := setupProcessService(t)
	ctx := context.Background()
	clientID := seedClient(t, db, node, "Acme Ltda")

	process, err := svc.Create(ctx, domain.CreateProcessRequest{
		ClientID: clientID.String(),
		Title:    "Labor claim",
	})
	if err != nil {
		t.Fatalf("create process: %v", err)
	}
	phase, err := svc.CreatePhase(ctx, domain.CreatePhaseRequest{
		ProcessID:          process.ID.String(),
		Description:        "Initial hearing",
		PlannedAmountCents: 100000,
	})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	err = db.Exec(
		`INSERT INTO payments (id, phase_id, amount_cents, received_on, created_at, updated_at)
		 VALUES (?, ?, 50000, '2025-01-15', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		node.Generate(), phase.ID,
	).Error
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if err := svc.DeletePhase(ctx, domain.DeletePhaseRequest{ID: phase.ID.String()}); err != nil {
		t.Fatalf("delete phase: %v", err)
	}

	var payments int
	if err := db.Raw(`SELECT COUNT(1) FROM payments`).Scan(&payments).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if payments != 0 {
		t.Fatalf("expected no payments, got %d", payments)
	}

	var processes int
	if err := db.Raw(`SELECT COUNT(1) FROM processes`).Scan(&processes).Error; err != nil {
		t.Fatalf("count processes: %v", err)
	}
	if processes != 1 {
		t.Fatalf("parent process should survive, got %d rows", processes)
	}
}
