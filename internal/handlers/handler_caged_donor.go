package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// cagedDonorHandler serves the manual donor review queue.
type cagedDonorHandler struct {
	donorService portssvc.DonorSvcFacade
}

// newCagedDonorHandler creates a new cagedDonorHandler.
func newCagedDonorHandler(donorService portssvc.DonorSvcFacade) *cagedDonorHandler {
	return &cagedDonorHandler{donorService: donorService}
}

// registerCagedDonorRoutes sets up the caged donor review routes.
func registerCagedDonorRoutes(rg *gin.RouterGroup, donorService portssvc.DonorSvcFacade) {
	h := newCagedDonorHandler(donorService)
	rg.GET("/caged-donors", h.listCagedDonors)
	rg.GET("/caged-donors/:id", h.viewCagedDonor)
	rg.POST("/caged-donors/:id/resolve", h.resolveCagedDonor)
}

// listCagedDonors godoc
// @Summary List caged donors
// @Description Retrieves a page of donors awaiting manual identity review.
// @Tags caged-donors
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListCagedDonorsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /caged-donors [get]
func (h *cagedDonorHandler) listCagedDonors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCagedDonorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.donorService.ListCagedDonors(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list caged donors")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// viewCagedDonor godoc
// @Summary View a caged donor
// @Description Retrieves one caged donor and bumps its review counter.
// @Tags caged-donors
// @Produce json
// @Param id path int true "Caged donor id"
// @Success 200 {object} dto.CagedDonorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /caged-donors/{id} [get]
func (h *cagedDonorHandler) viewCagedDonor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid caged donor id"})
		return
	}

	resp, err := h.donorService.ViewCagedDonor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to view caged donor")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resolveCagedDonor godoc
// @Summary Resolve a caged donor
// @Description Attaches the caged donor to an existing directory user or registers a new one, then rewrites the gift's donor reference.
// @Tags caged-donors
// @Accept json
// @Produce json
// @Param id path int true "Caged donor id"
// @Param resolution body dto.ResolveCagedDonorRequest true "Resolution"
// @Success 204 "Resolved"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /caged-donors/{id}/resolve [post]
func (h *cagedDonorHandler) resolveCagedDonor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid caged donor id"})
		return
	}

	var req dto.ResolveCagedDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	if err := h.donorService.ResolveCagedDonor(c.Request.Context(), id, req); err != nil {
		respondServiceError(c, logger, err, "Failed to resolve caged donor")
		return
	}
	c.Status(http.StatusNoContent)
}
