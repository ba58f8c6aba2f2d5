package handlers

import (
	"errors"
	"net/http"

	"factcheck-backend/service"

	"github.com/gin-gonic/gin"
)

// ClaimHandler handles HTTP requests for fact-checking
type ClaimHandler struct {
	checker *service.CheckerService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(checker *service.CheckerService) *ClaimHandler {
	return &ClaimHandler{checker: checker}
}

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClaimTooShort),
		errors.Is(err, service.ErrClaimTooLong),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrBadFormat):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrPreprocessFailed),
		errors.Is(err, service.ErrAnalysisFailed):
		respondError(c, http.StatusBadGateway, "COLLABORATOR_ERROR", err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// CheckRequest represents the request body for fact-checking a claim
type CheckRequest struct {
	Claim     string  `json:"claim" binding:"required"`
	SessionID *string `json:"session_id"`
}

// Check handles POST /check
func (h *ClaimHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.checker.CheckFact(c.Request.Context(), service.CheckFactRequest{
		Claim:     req.Claim,
		SessionID: req.SessionID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result.Claim)
}

// History handles GET /history
func (h *ClaimHandler) History(c *gin.Context) {
	var query struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.checker.History(c.Request.Context(), service.HistoryRequest{
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Entries)
}

// Search handles GET /search
func (h *ClaimHandler) Search(c *gin.Context) {
	var query struct {
		Q     string `form:"q"`
		Query string `form:"query"`
		Limit int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if query.Q == "" {
		query.Q = query.Query
	}

	result, err := h.checker.Search(c.Request.Context(), service.SearchRequest{
		Query: query.Q,
		Limit: query.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Entries)
}

// Stats handles GET /stats
func (h *ClaimHandler) Stats(c *gin.Context) {
	stats, err := h.checker.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Health handles GET /health
func (h *ClaimHandler) Health(c *gin.Context) {
	result := h.checker.Health(c.Request.Context())

	status := http.StatusOK
	if result.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, result)
}

// Root handles GET /
func (h *ClaimHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Fact Checker API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"check":   "POST /check",
			"history": "GET /history",
			"search":  "GET /search",
			"stats":   "GET /stats",
			"health":  "GET /health",
			"export":  "POST /export",
		},
	})
}
