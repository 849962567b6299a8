package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupExportService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&processdomain.Process{},
		&processdomain.Phase{},
		&financedomain.Payment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{DB: db, Log: zap.NewNop()})
	return svc, db, node
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportClients(t *testing.T) {
	svc, db, node := setupExportService(t)

	clientID := node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO clients (id, name, tax_id, email, phone, created_at, updated_at)
		 VALUES (?, 'Maria, Souza & Co', '123', 'maria@example.com', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		clientID,
	).Error)

	file, err := svc.ExportTable(context.Background(), TableClients)
	require.NoError(t, err)
	require.Equal(t, "clients.csv", file.Name)

	records := parseCSV(t, file.Data)
	require.Len(t, records, 2)
	require.Equal(t, []string{"id", "name", "tax_id", "email", "phone"}, records[0])
	require.Equal(t, clientID.String(), records[1][0])
	require.Equal(t, "Maria, Souza & Co", records[1][1])
}

func TestExportPayments(t *testing.T) {
	svc, db, node := setupExportService(t)

	clientID := node.Generate()
	processID := node.Generate()
	phaseID := node.Generate()
	paymentID := node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO clients (id, name, tax_id, email, phone, created_at, updated_at)
		 VALUES (?, 'Maria Souza', '', '', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		clientID,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO processes (id, client_id, case_number, title, responsible, status, notes, created_at, updated_at)
		 VALUES (?, ?, '', 'Labor claim', '', 'Active', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		processID, clientID,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO phases (id, process_id, description, "condition", planned_amount_cents, created_at, updated_at)
		 VALUES (?, ?, 'Initial hearing', '', 100000, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		phaseID, processID,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO payments (id, phase_id, amount_cents, received_on, created_at, updated_at)
		 VALUES (?, ?, 50000, '2025-01-15', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		paymentID, phaseID,
	).Error)

	file, err := svc.ExportTable(context.Background(), TablePayments)
	require.NoError(t, err)

	records := parseCSV(t, file.Data)
	require.Len(t, records, 2)
	require.Equal(t, []string{"id", "phase_id", "amount_cents", "received_on"}, records[0])
	require.Equal(t, []string{paymentID.String(), phaseID.String(), "50000", "2025-01-15"}, records[1])
}

func TestExportAllReturnsEveryTable(t *testing.T) {
	svc, _, _ := setupExportService(t)

	files, err := svc.ExportAll(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 4)

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}
	require.Equal(t, []string{"clients.csv", "processes.csv", "phases.csv", "payments.csv"}, names)
}

func TestExportUnknownTable(t *testing.T) {
	svc, _, _ := setupExportService(t)

	_, err := svc.ExportTable(context.Background(), "expenses")
	require.ErrorIs(t, err, ErrUnknownTable)
}
