package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/platform/config"
	"github.com/civicgift/donate-backend/internal/utils"
)

func TestLoginWithPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	agent := &domain.Agent{ID: 3, Email: "staff@example.org", PasswordHash: hash, Type: domain.AgentStaff}

	t.Run("valid credentials", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		agentRepo.On("FindAgentByEmail", ctx, "staff@example.org").Return(agent, nil).Once()

		got, err := svc.LoginWithPassword(ctx, "staff@example.org", "correct horse battery staple")

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		agentRepo.On("FindAgentByEmail", ctx, "staff@example.org").Return(agent, nil).Once()

		_, err := svc.LoginWithPassword(ctx, "staff@example.org", "wrong")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		agentRepo.On("FindAgentByEmail", ctx, "nobody@example.org").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.LoginWithPassword(ctx, "nobody@example.org", "anything")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("agent without a password cannot log in", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		automated := &domain.Agent{ID: 10, Email: "api@example.org", Type: domain.AgentAutomated}
		agentRepo.On("FindAgentByEmail", ctx, "api@example.org").Return(automated, nil).Once()

		_, err := svc.LoginWithPassword(ctx, "api@example.org", "anything")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	agent := &domain.Agent{ID: 3, Email: "staff@example.org", Type: domain.AgentStaff}

	t.Run("maps verified identity onto existing agent", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		agentRepo.On("FindAgentByEmail", ctx, "staff@example.org").Return(agent, nil).Once()

		got, err := svc.LoginWithGoogle(ctx, &domain.GoogleUserInfo{
			Email:         "staff@example.org",
			VerifiedEmail: true,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("unverified email rejected", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)

		_, err := svc.LoginWithGoogle(ctx, &domain.GoogleUserInfo{Email: "staff@example.org"})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("no matching agent rejected", func(t *testing.T) {
		agentRepo := new(MockAgentRepository)
		svc := services.NewAuthService(agentRepo)
		agentRepo.On("FindAgentByEmail", ctx, "stranger@example.org").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.LoginWithGoogle(ctx, &domain.GoogleUserInfo{
			Email:         "stranger@example.org",
			VerifiedEmail: true,
		})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestGenerateAccessToken(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "donate-backend",
		JWTExpiryDuration: time.Hour,
	}
	svc := services.NewTokenService(cfg)

	token, expiry, err := svc.GenerateAccessToken(ctx, &domain.Agent{ID: 3})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "3", claims.Subject)
	assert.Equal(t, "donate-backend", claims.Issuer)
}
