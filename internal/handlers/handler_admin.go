package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// adminDonationHandler serves the staff-facing donation actions: manual
// entry, refunds, voids, corrections and bounced checks, plus the manual
// reconciliation trigger.
type adminDonationHandler struct {
	donationService  portssvc.DonationSvcFacade
	reconcileService portssvc.ReconcileSvcFacade
}

// newAdminDonationHandler creates a new adminDonationHandler.
func newAdminDonationHandler(donationService portssvc.DonationSvcFacade, reconcileService portssvc.ReconcileSvcFacade) *adminDonationHandler {
	return &adminDonationHandler{
		donationService:  donationService,
		reconcileService: reconcileService,
	}
}

// registerAdminDonationRoutes sets up the staff donation action routes.
func registerAdminDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade, reconcileService portssvc.ReconcileSvcFacade) {
	h := newAdminDonationHandler(donationService, reconcileService)
	rg.POST("/donations", h.createDonation)
	rg.POST("/donations/refund", h.refundSale)
	rg.POST("/donations/void", h.voidSale)
	rg.POST("/donations/correct", h.correctGift)
	rg.POST("/donations/bounced-check", h.recordBouncedCheck)
	rg.POST("/reconcile", h.runReconciliation)
}

// createDonation godoc
// @Summary Record a staff-entered donation
// @Description Records a donation received by mail, phone or in person. Check-like methods are dated at the instrument and immediately marked deposited.
// @Tags admin
// @Accept json
// @Produce json
// @Param donation body dto.CreateAdminDonationRequest true "Donation"
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Processor declined the sale"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations [post]
func (h *adminDonationHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAdminDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.CreateAdminDonation(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record donation")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// refundSale godoc
// @Summary Refund a settled sale
// @Description Refunds up to the gift's current running total and appends the Refund transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Param refund body dto.RefundRequest true "Refund"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale not refundable or amount exceeds balance"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations/refund [post]
func (h *adminDonationHandler) refundSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.RefundSale(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to refund sale")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// voidSale godoc
// @Summary Void an unsettled sale
// @Description Cancels a sale that has not settled yet and appends the Void transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Param void body dto.VoidRequest true "Void"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale already settled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations/void [post]
func (h *adminDonationHandler) voidSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.VoidSale(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void sale")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// correctGift godoc
// @Summary Correct a gift's beneficiary
// @Description Reallocates a gift to another beneficiary account, updating the subscription amount when one is given.
// @Tags admin
// @Accept json
// @Produce json
// @Param correction body dto.CorrectionRequest true "Correction"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations/correct [post]
func (h *adminDonationHandler) correctGift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.CorrectGift(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to correct gift")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recordBouncedCheck godoc
// @Summary Record a bounced check
// @Description Reverses a deposited check that failed to clear.
// @Tags admin
// @Accept json
// @Produce json
// @Param bounce body dto.BouncedCheckRequest true "Bounced check"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse "Gift was not paid by check"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations/bounced-check [post]
func (h *adminDonationHandler) recordBouncedCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agentID, ok := getAgentIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.BouncedCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.RecordBouncedCheck(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record bounced check")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// runReconciliation godoc
// @Summary Run reconciliation now
// @Description Triggers the batch reconciliation sweep immediately instead of waiting for the schedule.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ReconcileSummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reconcile [post]
func (h *adminDonationHandler) runReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reconcileService.Run(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Reconciliation run failed")
		return
	}
	logger.Info("Manual reconciliation run finished",
		slog.Int("transactions_written", summary.TransactionsWritten),
		slog.Int("gifts_created", summary.GiftsCreated))
	c.JSON(http.StatusOK, summary)
}
