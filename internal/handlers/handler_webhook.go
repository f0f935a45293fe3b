package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// webhookHandler receives payment processor webhook deliveries.
type webhookHandler struct {
	webhookService portssvc.WebhookSvcFacade
}

// newWebhookHandler creates a new webhookHandler.
func newWebhookHandler(webhookService portssvc.WebhookSvcFacade) *webhookHandler {
	return &webhookHandler{webhookService: webhookService}
}

// registerWebhookRoutes sets up the processor webhook route. It is public;
// authenticity comes from the payload signature, not a bearer token.
func registerWebhookRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newWebhookHandler(services.Webhook)
	r.POST("/api/v1/webhooks/processor", h.handleProcessorWebhook)
}

// handleProcessorWebhook godoc
// @Summary Receive a processor webhook
// @Description Verifies the delivery signature and applies subscription billing events to the ledger. Failures after verification are acknowledged so the processor does not retry forever.
// @Tags webhooks
// @Accept x-www-form-urlencoded
// @Produce json
// @Param bt_signature formData string true "Delivery signature"
// @Param bt_payload formData string true "Delivery payload"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Signature verification failed"
// @Router /webhooks/processor [post]
func (h *webhookHandler) handleProcessorWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	signature := c.PostForm("bt_signature")
	payload := c.PostForm("bt_payload")

	err := h.webhookService.HandleSubscriptionEvent(c.Request.Context(), signature, payload)
	if err != nil {
		if errors.Is(err, clients.ErrInvalidSignature) {
			logger.Warn("Webhook signature verification failed")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid signature"})
			return
		}
		// Acknowledge anyway; the nightly reconciliation sweep picks up
		// whatever this delivery failed to record.
		logger.Error("Failed to apply webhook", slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
