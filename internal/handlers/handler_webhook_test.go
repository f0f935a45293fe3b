package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/handlers"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// --- Mock WebhookService ---
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) HandleSubscriptionEvent(ctx context.Context, signature, payload string) error {
	args := m.Called(ctx, signature, payload)
	return args.Error(0)
}

var _ portssvc.WebhookSvcFacade = (*MockWebhookService)(nil)

// --- Test Suite ---
type WebhookHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockWebhookService *MockWebhookService
}

func (suite *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockWebhookService = new(MockWebhookService)

	cfg := &config.Config{JWTSecret: "test-secret-key-that-is-long-enough"}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Webhook: suite.mockWebhookService,
	})
}

func (suite *WebhookHandlerTestSuite) postWebhook(signature, payload string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("bt_signature", signature)
	form.Set("bt_payload", payload)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/webhooks/processor", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *WebhookHandlerTestSuite) TestProcessorWebhook_Applied() {
	suite.mockWebhookService.On("HandleSubscriptionEvent", mock.Anything, "sig", "payload").
		Return(nil).Once()

	w := suite.postWebhook("sig", "payload")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWebhookService.AssertExpectations(suite.T())
}

func (suite *WebhookHandlerTestSuite) TestProcessorWebhook_BadSignatureIsUnauthorized() {
	suite.mockWebhookService.On("HandleSubscriptionEvent", mock.Anything, "forged", "payload").
		Return(clients.ErrInvalidSignature).Once()

	w := suite.postWebhook("forged", "payload")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *WebhookHandlerTestSuite) TestProcessorWebhook_ApplyFailureStillAcknowledged() {
	// The reconciliation sweep recovers what a failed delivery misses, so
	// the processor must not keep retrying.
	suite.mockWebhookService.On("HandleSubscriptionEvent", mock.Anything, "sig", "payload").
		Return(errors.New("database unavailable")).Once()

	w := suite.postWebhook("sig", "payload")

	suite.Equal(http.StatusOK, w.Code)
}

func TestWebhookHandler(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}
