package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lexflow/lexfin/internal/client/domain"
	"github.com/lexflow/lexfin/internal/client/repository"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupClientService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
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
		&domain.Client{},
		&processdomain.Process{},
		&processdomain.Phase{},
		&financedomain.Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node := mustNode(t)
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
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

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _, _ := setupClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateClientRequest{Name: "   "})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "Maria Souza",
		TaxID: "123.456.789-00",
		Email: "maria@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, domain.GetClientRequest{ID: created.ID.String()})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Maria Souza" || got.TaxID != "123.456.789-00" {
		t.Fatalf("unexpected client: %+v", got)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc, _, node := setupClientService(t)

	_, err := svc.GetByID(context.Background(), domain.GetClientRequest{ID: node.Generate().String()})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "Old Name",
		Email: "old@example.com",
		Phone: "11 99999-0000",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "New Name"
	updated, err := svc.Update(ctx, domain.UpdateClientRequest{
		ID:   created.ID.String(),
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Email != "old@example.com" || updated.Phone != "11 99999-0000" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateRejectsBlankName(t *testing.T) {
	svc, _, _ := setupClientService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Keep Me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := "  "
	_, err = svc.Update(ctx, domain.UpdateClientRequest{ID: created.ID.String(), Name: &blank})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	svc, _, node := setupClientService(t)

	err := svc.Delete(context.Background(), domain.DeleteClientRequest{ID: node.Generate().String()})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Deleting a client removes its whole ownership chain: processes,
// their phases and every payment under those phases. Rows owned by
// other clients must survive.
func TestDeleteCascadesThroughOwnershipChain(t *testing.T) {
	svc, db, node := setupClientService(t)
	ctx := context.Background()

	doomed, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Doomed"})
	if err != nil {
		t.Fatalf("create doomed: %v", err)
	}
	survivor, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Survivor"})
	if err != nil {
		t.Fatalf("create survivor: %v", err)
	}

	seedChain(t, db, node, doomed.ID, 2, 2, 2)
	seedChain(t, db, node, survivor.ID, 1, 1, 1)

	if err := svc.Delete(ctx, domain.DeleteClientRequest{ID: doomed.ID.String()}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n := countRows(t, db, "clients"); n != 1 {
		t.Fatalf("expected 1 client left, got %d", n)
	}
	if n := countRows(t, db, "processes"); n != 1 {
		t.Fatalf("expected 1 process left, got %d", n)
	}
	if n := countRows(t, db, "phases"); n != 1 {
		t.Fatalf("expected 1 phase left, got %d", n)
	}
	if n := countRows(t, db, "payments"); n != 1 {
		t.Fatalf("expected 1 payment left, got %d", n)
	}

	var orphanClient int
	err = db.Raw(`SELECT COUNT(1) FROM processes WHERE client_id = ?`, doomed.ID).Scan(&orphanClient).Error
	if err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphanClient != 0 {
		t.Fatalf("expected no orphaned processes, got %d", orphanClient)
	}
}

// seedChain inserts processes, phases and payments directly under the
// given client.
func seedChain(t *testing.T, db *gorm.DB, node *snowflake.Node, clientID snowflake.ID, processes, phasesPer, paymentsPer int) {
	t.Helper()

	for i := 0; i < processes; i++ {
		processID := node.Generate()
		err := db.Exec(
			`INSERT INTO processes (id, client_id, case_number, title, responsible, status, notes, created_at, updated_at)
			 VALUES (?, ?, '', ?, '', 'Active', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			processID, clientID, fmt.Sprintf("Case %d", i),
		).Error
		if err != nil {
			t.Fatalf("seed process: %v", err)
		}

		for j := 0; j < phasesPer; j++ {
			phaseID := node.Generate()
			err := db.Exec(
				`INSERT INTO phases (id, process_id, description, "condition", planned_amount_cents, created_at, updated_at)
				 VALUES (?, ?, ?, '', 100000, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
				phaseID, processID, fmt.Sprintf("Phase %d", j),
			).Error
			if err != nil {
				t.Fatalf("seed phase: %v", err)
			}

			for k := 0; k < paymentsPer; k++ {
				err := db.Exec(
					`INSERT INTO payments (id, phase_id, amount_cents, received_on, created_at, updated_at)
					 VALUES (?, ?, 50000, '2025-01-15', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
					node.Generate(), phaseID,
				).Error
				if err != nil {
					t.Fatalf("seed payment: %v", err)
				}
			}
		}
	}
}

func countRows(t *testing.T, db *gorm.DB, table string) int {
	t.Helper()
	var count int
	if err := db.Raw(`SELECT COUNT(1) FROM ` + table).Scan(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
