package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	clientrepository "github.com/lexflow/lexfin/internal/client/repository"
	clientservice "github.com/lexflow/lexfin/internal/client/service"
	"github.com/lexflow/lexfin/internal/config"
	expensedomain "github.com/lexflow/lexfin/internal/expense/domain"
	expenserepository "github.com/lexflow/lexfin/internal/expense/repository"
	expenseservice "github.com/lexflow/lexfin/internal/expense/service"
	"github.com/lexflow/lexfin/internal/export"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	financerepository "github.com/lexflow/lexfin/internal/finance/repository"
	financeservice "github.com/lexflow/lexfin/internal/finance/service"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	processrepository "github.com/lexflow/lexfin/internal/process/repository"
	processservice "github.com/lexflow/lexfin/internal/process/service"
	"github.com/lexflow/lexfin/internal/report"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
		&expensedomain.Expense{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()

	clientSvc := clientservice.New(clientservice.Params{
		DB: db, Log: logger, GenID: node,
		Repo: clientrepository.Provide(),
	})
	processSvc := processservice.New(processservice.Params{
		DB: db, Log: logger, GenID: node,
		Repo:    processrepository.Provide(),
		Clients: clientrepository.Provide(),
	})
	expenseSvc := expenseservice.New(expenseservice.Params{
		DB: db, Log: logger, GenID: node,
		Repo: expenserepository.Provide(),
	})
	financeSvc := financeservice.New(financeservice.Params{
		DB: db, Log: logger, GenID: node,
		Repo:      financerepository.Provide(),
		Processes: processrepository.Provide(),
		Expenses:  expenseSvc,
	})
	reportSvc := report.New(report.Params{
		DB: db, Log: logger,
		Clients:   clientrepository.Provide(),
		Processes: processrepository.Provide(),
		Payments:  financerepository.Provide(),
	})
	exportSvc := export.New(export.Params{DB: db, Log: logger})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{AppName: "lexfin-test"},
		ClientSvc:  clientSvc,
		ProcessSvc: processSvc,
		FinanceSvc: financeSvc,
		ExpenseSvc: expenseSvc,
		ReportSvc:  reportSvc,
		ExportSvc:  exportSvc,
	})
	srv.RegisterAPIRoutes()
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestClientProcessPaymentFlow(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/clients", gin.H{"name": "Maria Souza"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	clientID := dataField(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/processes", gin.H{
		"client_id": clientID,
		"title":     "Labor claim",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	processID := dataField(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/phases", gin.H{
		"process_id":     processID,
		"description":    "Initial hearing",
		"planned_amount": "1000.00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	phaseID := dataField(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/payments", gin.H{
		"phase_id":    phaseID,
		"amount":      "500.00",
		"received_on": "2025-01-15",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/processes/"+processID+"/financials", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fin := dataField(t, rec)
	require.EqualValues(t, 100000, fin["contracted_cents"])
	require.EqualValues(t, 50000, fin["received_cents"])
	require.EqualValues(t, 50000, fin["balance_cents"])
	require.InDelta(t, 0.5, fin["fraction_received"].(float64), 1e-9)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := dataField(t, rec)
	display := summary["display"].(map[string]any)
	require.Equal(t, "R$ 500,00", display["received"])
	require.Equal(t, "R$ 1.000,00", display["contracted"])
}

func TestCreatePaymentRejectsBadAmount(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/payments", gin.H{
		"phase_id":    "1",
		"amount":      "not-a-number",
		"received_on": "2025-01-15",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestGetMissingClientIs404(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/clients/123456789", nil)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestExportUnknownTableIs404(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/export/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestClientReportDownload(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/clients", gin.H{"name": "Maria Souza"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	clientID := dataField(t, rec)["id"].(string)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/clients/"+clientID+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "Report_Maria_Souza_")
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
