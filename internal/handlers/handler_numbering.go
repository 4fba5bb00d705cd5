package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/Alialhaj1/SLMS-sub007/internal/middleware"
	"github.com/gin-gonic/gin"
)

// numberingHandler handles HTTP requests related to document numbering.
type numberingHandler struct {
	numberingService portssvc.NumberingSvcFacade
}

// newNumberingHandler creates a new numberingHandler.
func newNumberingHandler(numberingService portssvc.NumberingSvcFacade) *numberingHandler {
	return &numberingHandler{
		numberingService: numberingService,
	}
}

// generateNumber godoc
// @Summary Allocate the next document number
// @Description Atomically allocates the next sequence value for the tenant and document type and returns the formatted number
// @Tags numbering
// @Accept json
// @Produce json
// @Param docType path string true "Document type (e.g. purchase_order)"
// @Param request body dto.GenerateNumberRequest false "Optional branch code"
// @Success 200 {object} dto.GeneratedNumberResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate number"
// @Security BearerAuth
// @Router /numbering/{docType}/generate [post]
func (h *numberingHandler) generateNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docType := domain.DocumentType(c.Param("docType"))

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Body is optional; an empty body means no branch code.
	genReq := dto.GenerateNumberRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&genReq); err != nil {
			logger.Error("Failed to bind JSON for generateNumber", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	generated, err := h.numberingService.GenerateNumber(c.Request.Context(), tenantID, docType, genReq.BranchCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating number", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate number", slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate number"})
		return
	}

	c.JSON(http.StatusOK, dto.GeneratedNumberResponse{
		Number:     generated.Number,
		Sequence:   generated.Sequence,
		FiscalYear: generated.FiscalYear,
	})
}

// previewNumber godoc
// @Summary Preview the next document number
// @Description Computes the number the next allocation would produce without consuming it. A concurrent allocation can invalidate the preview.
// @Tags numbering
// @Produce json
// @Param docType path string true "Document type"
// @Param branchCode query string false "Branch code"
// @Success 200 {object} dto.GeneratedNumberResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Failed to preview number"
// @Security BearerAuth
// @Router /numbering/{docType}/preview [get]
func (h *numberingHandler) previewNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docType := domain.DocumentType(c.Param("docType"))

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	number, err := h.numberingService.PreviewNextNumber(c.Request.Context(), tenantID, docType, c.Query("branchCode"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error previewing number", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to preview number", slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview number"})
		return
	}

	c.JSON(http.StatusOK, dto.GeneratedNumberResponse{Number: number})
}

// getCounter godoc
// @Summary Get counter configuration and state
// @Description Retrieves the numbering counter for a document type
// @Tags numbering
// @Produce json
// @Param docType path string true "Document type"
// @Success 200 {object} dto.CounterResponse
// @Failure 404 {object} map[string]string "Counter not found"
// @Failure 500 {object} map[string]string "Failed to retrieve counter"
// @Security BearerAuth
// @Router /numbering/{docType}/counter [get]
func (h *numberingHandler) getCounter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docType := domain.DocumentType(c.Param("docType"))

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counter, err := h.numberingService.GetCounter(c.Request.Context(), tenantID, docType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Counter not found", slog.String("document_type", string(docType)))
			c.JSON(http.StatusNotFound, gin.H{"error": "Counter not found"})
			return
		}
		logger.Error("Failed to get counter", slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve counter"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterResponse(counter))
}

// updateCounterConfig godoc
// @Summary Update counter configuration
// @Description Applies partial formatting/reset configuration changes to a counter, creating it with defaults when absent
// @Tags numbering
// @Accept json
// @Produce json
// @Param docType path string true "Document type"
// @Param config body dto.UpdateCounterConfigRequest true "Configuration changes"
// @Success 200 {object} dto.CounterResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to update counter"
// @Security BearerAuth
// @Router /numbering/{docType}/config [put]
func (h *numberingHandler) updateCounterConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docType := domain.DocumentType(c.Param("docType"))

	updateReq := dto.UpdateCounterConfigRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateCounterConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counter, err := h.numberingService.UpdateCounterConfig(c.Request.Context(), tenantID, docType, updateReq, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating counter config", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update counter config", slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update counter"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterResponse(counter))
}

// setCurrentNumber godoc
// @Summary Manually override the counter value
// @Description Sets the counter's current number. This can produce duplicate or out-of-order document numbers; every use is audited.
// @Tags numbering
// @Accept json
// @Produce json
// @Param docType path string true "Document type"
// @Param request body dto.SetCurrentNumberRequest true "New counter value"
// @Success 204 "Counter updated"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Counter not found"
// @Failure 500 {object} map[string]string "Failed to set counter value"
// @Security BearerAuth
// @Router /numbering/{docType}/current-number [put]
func (h *numberingHandler) setCurrentNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	docType := domain.DocumentType(c.Param("docType"))

	setReq := dto.SetCurrentNumberRequest{}
	if err := c.ShouldBindJSON(&setReq); err != nil {
		logger.Error("Failed to bind JSON for setCurrentNumber", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.numberingService.SetCurrentNumber(c.Request.Context(), tenantID, docType, setReq.CurrentNumber, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Counter not found for override", slog.String("document_type", string(docType)))
			c.JSON(http.StatusNotFound, gin.H{"error": "Counter not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error setting counter value", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to set counter value", slog.String("document_type", string(docType)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set counter value"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterNumberingRoutes registers numbering specific routes
func RegisterNumberingRoutes(group *gin.RouterGroup, numberingService portssvc.NumberingSvcFacade, generateLimiter gin.HandlerFunc) {
	h := newNumberingHandler(numberingService)

	numbering := group.Group("/numbering")
	{
		numbering.POST("/:docType/generate", generateLimiter, h.generateNumber)
		numbering.GET("/:docType/preview", h.previewNumber)
		numbering.GET("/:docType/counter", h.getCounter)
		numbering.PUT("/:docType/config", h.updateCounterConfig)
		numbering.PUT("/:docType/current-number", h.setCurrentNumber)
	}
}
