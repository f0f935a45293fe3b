package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// donateHandler serves the public donation surface used by the web form.
type donateHandler struct {
	donationService portssvc.DonationSvcFacade
	campaignService portssvc.CampaignSvcFacade
}

// newDonateHandler creates a new donateHandler.
func newDonateHandler(donationService portssvc.DonationSvcFacade, campaignService portssvc.CampaignSvcFacade) *donateHandler {
	return &donateHandler{
		donationService: donationService,
		campaignService: campaignService,
	}
}

// registerDonateRoutes sets up the public, rate limited donation routes.
func registerDonateRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newDonateHandler(services.Donation, services.Campaign)

	rate, err := limiter.NewRateFromFormatted(cfg.DonateRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	donate := r.Group("/api/v1/donate", middleware.RateLimit(ipLimiter))
	{
		donate.POST("", h.createDonation)
		donate.GET("/client-token", h.getClientToken)
		donate.GET("/campaigns", h.listActiveCampaigns)
	}
}

// createDonation godoc
// @Summary Create a donation
// @Description Charges the donor through the payment processor and records the gift.
// @Tags donate
// @Accept json
// @Produce json
// @Param donation body dto.CreateDonationRequest true "Donation"
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Processor declined the sale"
// @Failure 500 {object} ErrorResponse
// @Router /donate [post]
func (h *donateHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind donation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.donationService.CreateWebDonation(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create donation")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getClientToken godoc
// @Summary Get a processor client token
// @Description Returns the short-lived token the hosted payment fields initialize with.
// @Tags donate
// @Produce json
// @Success 200 {object} dto.ClientTokenResponse
// @Failure 500 {object} ErrorResponse
// @Router /donate/client-token [get]
func (h *donateHandler) getClientToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, err := h.donationService.GetClientToken(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate client token")
		return
	}
	c.JSON(http.StatusOK, dto.ClientTokenResponse{ClientToken: token})
}

// listActiveCampaigns godoc
// @Summary List active campaigns
// @Description Returns the campaigns the donation form can offer, with suggested amounts.
// @Tags donate
// @Produce json
// @Success 200 {array} dto.CampaignResponse
// @Failure 500 {object} ErrorResponse
// @Router /donate/campaigns [get]
func (h *donateHandler) listActiveCampaigns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaigns, err := h.campaignService.ListCampaigns(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}
