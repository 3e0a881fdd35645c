package service

import (
	"context"
	"fmt"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/sangkips/retailpos-api/pkg/oauth"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

// SessionProvider turns an identity provider callback into a session.
type SessionProvider interface {
	IsConfigured() bool
	GetAuthURL(state string) string
	NewSession(ctx context.Context, code string) (*oauth.GoogleSession, error)
}

// AuthService handles sign-in and session tokens
type AuthService struct {
	guard      *AccessGuard
	provider   SessionProvider
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(guard *AccessGuard, provider SessionProvider, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		guard:      guard,
		provider:   provider,
		jwtManager: jwtManager,
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.AuthorizedUser `json:"user"`
	Name        string                 `json:"name,omitempty"`
	AccessToken string                 `json:"access_token"`
	ExpiresIn   int64                  `json:"expires_in"`
}

// GoogleAuthURL returns the consent page to send the browser to.
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.provider.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.provider.GetAuthURL(state), nil
}

// CompleteGoogleSignIn finishes the provider flow and admits the account.
func (s *AuthService) CompleteGoogleSignIn(ctx context.Context, code string) (*LoginOutput, error) {
	session, err := s.provider.NewSession(ctx, code)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, err)
	}

	out, err := s.Admit(ctx, session)
	if err != nil {
		return nil, err
	}
	if user := session.User(); user != nil {
		out.Name = user.Name
	}
	return out, nil
}

// Admit runs the access guard on session and issues a token on success.
func (s *AuthService) Admit(ctx context.Context, session IdentitySession) (*LoginOutput, error) {
	user, err := s.guard.Admit(ctx, session)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateAccessToken(user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &LoginOutput{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

// Authenticate validates a bearer token and re-checks the allow-list.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.AuthorizedUser, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInvalidToken, err)
	}
	return s.guard.Check(ctx, claims.Email)
}
