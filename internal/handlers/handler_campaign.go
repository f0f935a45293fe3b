package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// campaignHandler manages fundraising campaigns for the admin surface.
type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
}

// newCampaignHandler creates a new campaignHandler.
func newCampaignHandler(campaignService portssvc.CampaignSvcFacade) *campaignHandler {
	return &campaignHandler{campaignService: campaignService}
}

// registerCampaignRoutes sets up the campaign management routes.
func registerCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := newCampaignHandler(campaignService)
	rg.GET("/campaigns", h.listCampaigns)
	rg.GET("/campaigns/:id", h.getCampaign)
	rg.POST("/campaigns", h.createCampaign)
	rg.PATCH("/campaigns/:id", h.updateCampaign)
}

// listCampaigns godoc
// @Summary List campaigns
// @Description Retrieves all campaigns, active and inactive.
// @Tags campaigns
// @Produce json
// @Success 200 {array} dto.CampaignResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns [get]
func (h *campaignHandler) listCampaigns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaigns, err := h.campaignService.ListCampaigns(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// getCampaign godoc
// @Summary Get a campaign
// @Description Retrieves one campaign with its suggested amounts.
// @Tags campaigns
// @Produce json
// @Param id path int true "Campaign id"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{id} [get]
func (h *campaignHandler) getCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid campaign id"})
		return
	}

	resp, err := h.campaignService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get campaign")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createCampaign godoc
// @Summary Create a campaign
// @Description Persists a new campaign with its suggested donation amounts.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign body dto.CreateCampaignRequest true "Campaign"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns [post]
func (h *campaignHandler) createCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.campaignService.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create campaign")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// updateCampaign godoc
// @Summary Update a campaign
// @Description Updates campaign fields and replaces its suggested amounts when given.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path int true "Campaign id"
// @Param campaign body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{id} [patch]
func (h *campaignHandler) updateCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid campaign id"})
		return
	}

	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.campaignService.UpdateCampaign(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update campaign")
		return
	}
	c.JSON(http.StatusOK, resp)
}
