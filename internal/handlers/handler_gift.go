package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// giftHandler serves read access to gifts and their ledgers.
type giftHandler struct {
	giftService portssvc.GiftSvcFacade
}

// newGiftHandler creates a new giftHandler.
func newGiftHandler(giftService portssvc.GiftSvcFacade) *giftHandler {
	return &giftHandler{giftService: giftService}
}

// registerGiftRoutes sets up the gift read routes.
func registerGiftRoutes(rg *gin.RouterGroup, giftService portssvc.GiftSvcFacade) {
	h := newGiftHandler(giftService)
	rg.GET("/gifts", h.listGifts)
	rg.GET("/gifts/:giftID", h.getGift)
	rg.GET("/transactions", h.listTransactions)
}

// listGifts godoc
// @Summary List gifts
// @Description Retrieves a paginated list of gifts, newest first.
// @Tags gifts
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListGiftsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /gifts [get]
func (h *giftHandler) listGifts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListGiftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.giftService.ListGifts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list gifts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getGift godoc
// @Summary Get a gift
// @Description Retrieves a gift by its searchable id with its full transaction history.
// @Tags gifts
// @Produce json
// @Param giftID path string true "Gift searchable id (uuid)"
// @Success 200 {object} dto.GetGiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /gifts/{giftID} [get]
func (h *giftHandler) getGift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	searchableID, err := uuid.Parse(c.Param("giftID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid gift id format"})
		return
	}

	resp, err := h.giftService.GetGift(c.Request.Context(), searchableID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get gift")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a paginated list of ledger transactions across all gifts.
// @Tags gifts
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *giftHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.giftService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
