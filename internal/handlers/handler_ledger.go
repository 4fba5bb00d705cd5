package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/Alialhaj1/SLMS-sub007/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// createEntry godoc
// @Summary Post a ledger entry
// @Description Validates a balanced set of lines and persists them atomically with an allocated entry number
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Entry and lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), tenantID, createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	logger.Info("Entry posted successfully", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted ledger entry
// @Description Creates a contra entry with swapped amounts and cross-links it to the original
// @Tags ledger
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Security BearerAuth
// @Router /ledger/entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	reverseReq := dto.ReverseEntryRequest{}
	if err := c.ShouldBindJSON(&reverseReq); err != nil {
		logger.Error("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
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

	reversal, err := h.ledgerService.ReverseEntry(c.Request.Context(), tenantID, entryID, reverseReq.Reason, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Entry not found for reversal", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Entry reversal conflict", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error reversing entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry in service", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed successfully",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// getEntry godoc
// @Summary Get a ledger entry with its lines
// @Description Retrieves a ledger entry and its lines by entry ID
// @Tags ledger
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /ledger/entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	logger.Debug("Entry retrieved successfully", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a paginated list of the tenant's entries, newest first
// @Tags ledger
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Param includeReversals query bool false "Include reversed entries and their contra entries"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntriesByReference godoc
// @Summary Get entries for a business document
// @Description Retrieves all entries posted against a reference document, newest first
// @Tags ledger
// @Produce json
// @Param referenceType path string true "Reference type (e.g. purchase_invoice)"
// @Param referenceID path string true "Reference document ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve entries"
// @Security BearerAuth
// @Router /ledger/references/{referenceType}/{referenceID}/entries [get]
func (h *ledgerHandler) getEntriesByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	referenceType := c.Param("referenceType")
	referenceID := c.Param("referenceID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.ledgerService.GetEntriesForReference(c.Request.Context(), tenantID, referenceType, referenceID)
	if err != nil {
		logger.Error("Failed to get entries for reference",
			slog.String("error", err.Error()),
			slog.String("reference_type", referenceType),
			slog.String("reference_id", referenceID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// RegisterLedgerRoutes registers ledger specific routes
func RegisterLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := group.Group("/ledger")
	{
		ledger.POST("/entries", h.createEntry)
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.POST("/entries/:entryID/reverse", h.reverseEntry)
		ledger.GET("/references/:referenceType/:referenceID/entries", h.getEntriesByReference)
	}
}
