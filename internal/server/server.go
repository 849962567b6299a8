package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/lexflow/lexfin/internal/client"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	"github.com/lexflow/lexfin/internal/config"
	"github.com/lexflow/lexfin/internal/expense"
	expensedomain "github.com/lexflow/lexfin/internal/expense/domain"
	"github.com/lexflow/lexfin/internal/export"
	"github.com/lexflow/lexfin/internal/finance"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	"github.com/lexflow/lexfin/internal/process"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"github.com/lexflow/lexfin/internal/report"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	client.Module,
	process.Module,
	finance.Module,
	expense.Module,
	report.Module,
	export.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)

func NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(metricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	clientSvc  clientdomain.Service
	processSvc processdomain.Service
	financeSvc financedomain.Service
	expenseSvc expensedomain.Service
	reportSvc  *report.Service
	exportSvc  *export.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	ClientSvc  clientdomain.Service
	ProcessSvc processdomain.Service
	FinanceSvc financedomain.Service
	ExpenseSvc expensedomain.Service
	ReportSvc  *report.Service
	ExportSvc  *export.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		clientSvc:  p.ClientSvc,
		processSvc: p.ProcessSvc,
		financeSvc: p.FinanceSvc,
		expenseSvc: p.ExpenseSvc,
		reportSvc:  p.ReportSvc,
		exportSvc:  p.ExportSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	clients := api.Group("/clients")
	{
		clients.GET("", s.ListClients)
		clients.POST("", s.CreateClient)
		clients.GET("/:id", s.GetClientByID)
		clients.PATCH("/:id", s.UpdateClient)
		clients.DELETE("/:id", s.DeleteClient)
		clients.GET("/:id/processes", s.ListClientProcesses)
		clients.GET("/:id/report", s.GetClientReport)
	}

	processes := api.Group("/processes")
	{
		processes.GET("", s.ListProcesses)
		processes.POST("", s.CreateProcess)
		processes.GET("/:id", s.GetProcessByID)
		processes.PATCH("/:id", s.UpdateProcess)
		processes.DELETE("/:id", s.DeleteProcess)
		processes.GET("/:id/phases", s.ListProcessPhases)
		processes.GET("/:id/payments", s.ListProcessPayments)
		processes.GET("/:id/financials", s.GetProcessFinancials)
	}

	phases := api.Group("/phases")
	{
		phases.POST("", s.CreatePhase)
		phases.PATCH("/:id", s.UpdatePhase)
		phases.DELETE("/:id", s.DeletePhase)
	}

	payments := api.Group("/payments")
	{
		payments.POST("", s.CreatePayment)
		payments.PATCH("/:id", s.UpdatePayment)
		payments.DELETE("/:id", s.DeletePayment)
	}

	expenses := api.Group("/expenses")
	{
		expenses.GET("", s.ListExpenses)
		expenses.POST("", s.CreateExpense)
		expenses.GET("/:id", s.GetExpenseByID)
		expenses.PATCH("/:id", s.UpdateExpense)
		expenses.DELETE("/:id", s.DeleteExpense)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/summary", s.GetDashboardSummary)
		dashboard.GET("/revenue", s.GetMonthlyRevenue)
		dashboard.GET("/cashflow", s.GetCashflow)
		dashboard.GET("/receivables", s.GetReceivables)
	}

	exports := api.Group("/export")
	{
		exports.GET("", s.ListExportTables)
		exports.GET("/:table", s.ExportTable)
	}
}
