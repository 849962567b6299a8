package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexflow/lexfin/pkg/money"
)

// GetDashboardSummary returns the firm-wide figures: contracted,
// received, outstanding and paid expenses, with display strings
// formatted in pt-BR.
func (s *Server) GetDashboardSummary(c *gin.Context) {
	ctx := c.Request.Context()

	global, err := s.financeSvc.GlobalFinancials(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	expensesPaid, err := s.expenseSvc.TotalPaid(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"contracted_cents":    global.ContractedCents,
		"received_cents":      global.ReceivedCents,
		"balance_cents":       global.BalanceCents,
		"expenses_paid_cents": expensesPaid,
		"net_cents":           global.ReceivedCents - expensesPaid,
		"display": gin.H{
			"contracted":    money.FormatBRL(global.ContractedCents),
			"received":      money.FormatBRL(global.ReceivedCents),
			"balance":       money.FormatBRL(global.BalanceCents),
			"expenses_paid": money.FormatBRL(expensesPaid),
			"net":           money.FormatBRL(global.ReceivedCents - expensesPaid),
		},
	}})
}

func (s *Server) GetMonthlyRevenue(c *gin.Context) {
	resp, err := s.financeSvc.MonthlyRevenue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCashflow(c *gin.Context) {
	resp, err := s.financeSvc.Cashflow(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceivables(c *gin.Context) {
	resp, err := s.financeSvc.Receivables(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
