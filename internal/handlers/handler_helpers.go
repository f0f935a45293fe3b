package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// getAgentIDFromContext reads the authenticated agent id the auth
// middleware stored as the token subject.
func getAgentIDFromContext(c *gin.Context) (int64, bool) {
	subject, ok := middleware.GetAgentIDFromContext(c)
	if !ok {
		return 0, false
	}
	agentID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return agentID, true
}

// respondServiceError maps service errors onto HTTP statuses. Anything
// unrecognized is logged and returned as a 500 with the fallback message so
// internal detail never leaks.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var declined *clients.DeclinedError
	switch {
	case errors.As(err, &declined):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: declined.Message})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnsupportedBeneficiary),
		errors.Is(err, services.ErrNoMerchantAccount),
		errors.Is(err, services.ErrMethodNotFound),
		errors.Is(err, services.ErrNotACheck):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, services.ErrSaleNotRefundable),
		errors.Is(err, services.ErrSaleNotVoidable),
		errors.Is(err, services.ErrRefundExceedsBalance):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
