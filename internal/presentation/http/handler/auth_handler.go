package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/sangkips/retailpos-api/pkg/oauth"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

// AuthRedirects are the frontend pages the Google callback lands on.
type AuthRedirects struct {
	SuccessURL   string
	ErrorURL     string
	SecureCookie bool
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	redirects   AuthRedirects
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, redirects AuthRedirects) *AuthHandler {
	return &AuthHandler{authService: authService, redirects: redirects}
}

// GoogleAuth sends the browser to the Google consent page
// @Summary Google sign-in
// @Tags auth
// @Success 307
// @Failure 503 {object} response.APIResponse
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	state := uuid.NewString()
	authURL, err := h.authService.GoogleAuthURL(state)
	if errors.Is(err, oauth.ErrOAuthNotConfigured) {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.redirects.SecureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes sign-in. Allow-listed accounts land on the
// frontend success page with a session token; everyone else lands on the
// error page with the denial message.
// @Summary Google sign-in callback
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by /auth/google"
// @Success 302
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.redirects.SecureCookie, true)

	if expected == "" || c.Query("state") != expected {
		h.redirectError(c, oauth.ErrInvalidState.Error())
		return
	}
	if c.Query("error") != "" {
		h.redirectError(c, "Sign-in was cancelled")
		return
	}
	code := c.Query("code")
	if code == "" {
		h.redirectError(c, oauth.ErrInvalidCode.Error())
		return
	}

	out, err := h.authService.CompleteGoogleSignIn(c.Request.Context(), code)
	if err != nil {
		_ = c.Error(err)
		h.redirectError(c, apperror.GetAppError(err).Message)
		return
	}

	// The token travels in the fragment so it never reaches server logs.
	fragment := url.Values{}
	fragment.Set("access_token", out.AccessToken)
	fragment.Set("token_type", "Bearer")
	fragment.Set("expires_in", strconv.FormatInt(out.ExpiresIn, 10))
	fragment.Set("email", out.User.Email)
	fragment.Set("role", string(out.User.Role))
	c.Redirect(http.StatusFound, h.redirects.SuccessURL+"#"+fragment.Encode())
}

func (h *AuthHandler) redirectError(c *gin.Context, message string) {
	target := h.redirects.ErrorURL + "?error=" + url.QueryEscape(message)
	c.Redirect(http.StatusFound, target)
}

// Logout handles user logout
// @Summary Logout
// @Description Session tokens are stateless; the client discards its token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile handles fetching current user profile
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"user": gin.H{
			"email":             user.Email,
			"role":              user.Role,
			"can_manage_access": user.Role.CanManageAccess(),
		},
	})
}
