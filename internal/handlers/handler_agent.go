package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// agentHandler lists the agents transactions can be attributed to.
type agentHandler struct {
	agentService portssvc.AgentSvcFacade
}

// newAgentHandler creates a new agentHandler.
func newAgentHandler(agentService portssvc.AgentSvcFacade) *agentHandler {
	return &agentHandler{agentService: agentService}
}

// registerAgentRoutes sets up the agent routes.
func registerAgentRoutes(rg *gin.RouterGroup, agentService portssvc.AgentSvcFacade) {
	h := newAgentHandler(agentService)
	rg.GET("/agents", h.listAgents)
}

// listAgents godoc
// @Summary List agents
// @Description Retrieves the staff, organization and automated agents known to the ledger.
// @Tags agents
// @Produce json
// @Success 200 {array} domain.Agent
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents [get]
func (h *agentHandler) listAgents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agents, err := h.agentService.ListAgents(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list agents")
		return
	}
	c.JSON(http.StatusOK, agents)
}
