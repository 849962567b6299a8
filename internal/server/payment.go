package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
)

type createPaymentRequest struct {
	PhaseID    string `json:"phase_id"`
	Amount     string `json:"amount"`
	ReceivedOn string `json:"received_on"`
}

type updatePaymentRequest struct {
	Amount     *string `json:"amount"`
	ReceivedOn *string `json:"received_on"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	amountCents, err := parseAmount("amount", req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	receivedOn, err := parseDate("received_on", req.ReceivedOn)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.financeSvc.CreatePayment(c.Request.Context(), financedomain.CreatePaymentRequest{
		PhaseID:     strings.TrimSpace(req.PhaseID),
		AmountCents: amountCents,
		ReceivedOn:  receivedOn,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := financedomain.UpdatePaymentRequest{
		ID: strings.TrimSpace(c.Param("id")),
	}
	if req.Amount != nil {
		amountCents, err := parseAmount("amount", *req.Amount)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		patch.AmountCents = &amountCents
	}
	if req.ReceivedOn != nil {
		receivedOn, err := parseDate("received_on", *req.ReceivedOn)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		patch.ReceivedOn = &receivedOn
	}

	resp, err := s.financeSvc.UpdatePayment(c.Request.Context(), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePayment(c *gin.Context) {
	err := s.financeSvc.DeletePayment(c.Request.Context(), financedomain.DeletePaymentRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListProcessPayments(c *gin.Context) {
	resp, err := s.financeSvc.ListByProcess(c.Request.Context(), financedomain.ListByProcessRequest{
		ProcessID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProcessFinancials(c *gin.Context) {
	resp, err := s.financeSvc.ProcessFinancials(c.Request.Context(), financedomain.ProcessFinancialsRequest{
		ProcessID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
