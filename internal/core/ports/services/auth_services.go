package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// AuthSvcFacade authenticates agents for the admin surface.
type AuthSvcFacade interface {
	// LoginWithPassword verifies an agent's email and password.
	LoginWithPassword(ctx context.Context, email, password string) (*domain.Agent, error)

	// LoginWithGoogle maps a verified Google identity onto an agent.
	LoginWithGoogle(ctx context.Context, info *domain.GoogleUserInfo) (*domain.Agent, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed JWT for an authenticated agent.
	GenerateAccessToken(ctx context.Context, agent *domain.Agent) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
