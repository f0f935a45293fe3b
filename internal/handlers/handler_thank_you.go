package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// thankYouHandler serves the thank-you letter queue.
type thankYouHandler struct {
	thankYouService portssvc.ThankYouSvcFacade
}

// newThankYouHandler creates a new thankYouHandler.
func newThankYouHandler(thankYouService portssvc.ThankYouSvcFacade) *thankYouHandler {
	return &thankYouHandler{thankYouService: thankYouService}
}

// registerThankYouRoutes sets up the thank-you letter queue routes.
func registerThankYouRoutes(rg *gin.RouterGroup, thankYouService portssvc.ThankYouSvcFacade) {
	h := newThankYouHandler(thankYouService)
	rg.GET("/thank-you-queue", h.listQueue)
	rg.POST("/thank-you-queue/:id/sent", h.markSent)
}

// listQueue godoc
// @Summary List the thank-you letter queue
// @Description Retrieves gifts whose running total crossed the letter threshold and still await a letter.
// @Tags thank-you
// @Produce json
// @Success 200 {object} dto.ListThankYouResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /thank-you-queue [get]
func (h *thankYouHandler) listQueue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.thankYouService.ListQueue(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list thank you queue")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markSent godoc
// @Summary Mark a thank-you letter sent
// @Description Stamps the receipt time on the gift's latest transaction, appends the note and removes the queue entry.
// @Tags thank-you
// @Produce json
// @Param id path int true "Queue marker id"
// @Success 204 "Recorded"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /thank-you-queue/{id}/sent [post]
func (h *thankYouHandler) markSent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid marker id"})
		return
	}

	if err := h.thankYouService.MarkSent(c.Request.Context(), id, agentID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark thank you letter sent")
		return
	}
	c.Status(http.StatusNoContent)
}
