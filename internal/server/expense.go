package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/lexflow/lexfin/internal/expense/domain"
)

type createExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	IncurredOn  string `json:"incurred_on"`
	Category    string `json:"category"`
	Paid        *bool  `json:"paid"`
}

type updateExpenseRequest struct {
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	IncurredOn  *string `json:"incurred_on"`
	Category    *string `json:"category"`
	Paid        *bool   `json:"paid"`
}

func (s *Server) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	amountCents, err := parseAmount("amount", req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	incurredOn, err := parseDate("incurred_on", req.IncurredOn)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.expenseSvc.Create(c.Request.Context(), expensedomain.CreateExpenseRequest{
		Description: strings.TrimSpace(req.Description),
		AmountCents: amountCents,
		IncurredOn:  incurredOn,
		Category:    strings.TrimSpace(req.Category),
		Paid:        req.Paid,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExpenses(c *gin.Context) {
	resp, err := s.expenseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetExpenseByID(c *gin.Context) {
	resp, err := s.expenseSvc.GetByID(c.Request.Context(), expensedomain.GetExpenseRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateExpense(c *gin.Context) {
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := expensedomain.UpdateExpenseRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Description: req.Description,
		Category:    req.Category,
		Paid:        req.Paid,
	}
	if req.Amount != nil {
		amountCents, err := parseAmount("amount", *req.Amount)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		patch.AmountCents = &amountCents
	}
	if req.IncurredOn != nil {
		incurredOn, err := parseDate("incurred_on", *req.IncurredOn)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		patch.IncurredOn = &incurredOn
	}

	resp, err := s.expenseSvc.Update(c.Request.Context(), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteExpense(c *gin.Context) {
	err := s.expenseSvc.Delete(c.Request.Context(), expensedomain.DeleteExpenseRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
