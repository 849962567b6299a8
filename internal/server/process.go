package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
)

type createProcessRequest struct {
	ClientID    string `json:"client_id"`
	CaseNumber  string `json:"case_number"`
	Title       string `json:"title"`
	Responsible string `json:"responsible"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type updateProcessRequest struct {
	ClientID    *string `json:"client_id"`
	CaseNumber  *string `json:"case_number"`
	Title       *string `json:"title"`
	Responsible *string `json:"responsible"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

type createPhaseRequest struct {
	ProcessID     string `json:"process_id"`
	Description   string `json:"description"`
	Condition     string `json:"condition"`
	PlannedAmount string `json:"planned_amount"`
}

type updatePhaseRequest struct {
	Description   *string `json:"description"`
	Condition     *string `json:"condition"`
	PlannedAmount *string `json:"planned_amount"`
}

func (s *Server) CreateProcess(c *gin.Context) {
	var req createProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.processSvc.Create(c.Request.Context(), processdomain.CreateProcessRequest{
		ClientID:    strings.TrimSpace(req.ClientID),
		CaseNumber:  strings.TrimSpace(req.CaseNumber),
		Title:       strings.TrimSpace(req.Title),
		Responsible: strings.TrimSpace(req.Responsible),
		Status:      strings.TrimSpace(req.Status),
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProcesses(c *gin.Context) {
	resp, err := s.processSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProcessByID(c *gin.Context) {
	resp, err := s.processSvc.GetByID(c.Request.Context(), processdomain.GetProcessRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProcess(c *gin.Context) {
	var req updateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.processSvc.Update(c.Request.Context(), processdomain.UpdateProcessRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		ClientID:    req.ClientID,
		CaseNumber:  req.CaseNumber,
		Title:       req.Title,
		Responsible: req.Responsible,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProcess(c *gin.Context) {
	err := s.processSvc.Delete(c.Request.Context(), processdomain.DeleteProcessRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListProcessPhases(c *gin.Context) {
	resp, err := s.processSvc.ListPhases(c.Request.Context(), processdomain.ListPhasesRequest{
		ProcessID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePhase(c *gin.Context) {
	var req createPhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plannedCents, err := parseAmount("planned_amount", req.PlannedAmount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.processSvc.CreatePhase(c.Request.Context(), processdomain.CreatePhaseRequest{
		ProcessID:          strings.TrimSpace(req.ProcessID),
		Description:        strings.TrimSpace(req.Description),
		Condition:          strings.TrimSpace(req.Condition),
		PlannedAmountCents: plannedCents,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePhase(c *gin.Context) {
	var req updatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := processdomain.UpdatePhaseRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Description: req.Description,
		Condition:   req.Condition,
	}
	if req.PlannedAmount != nil {
		plannedCents, err := parseAmount("planned_amount", *req.PlannedAmount)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		patch.PlannedAmountCents = &plannedCents
	}

	resp, err := s.processSvc.UpdatePhase(c.Request.Context(), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePhase(c *gin.Context) {
	err := s.processSvc.DeletePhase(c.Request.Context(), processdomain.DeletePhaseRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
