package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *GoogleOAuthService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"})
	s.userInfoURL = srv.URL + "/userinfo"
	s.revokeURL = srv.URL + "/revoke"
	s.httpClient = srv.Client()
	return s
}

func TestGetUserInfo(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"Owner@Shop.in","verified_email":true,"name":"Owner"}`))
	})

	user, err := s.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "access", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, "Owner@Shop.in", user.Email)

	session := &GoogleSession{service: s, user: user}
	email, ok := session.CurrentIdentity(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "owner@shop.in", email)
}

func TestUnverifiedEmailHasNoIdentity(t *testing.T) {
	session := &GoogleSession{user: &GoogleUserInfo{Email: "x@y.z"}}
	_, ok := session.CurrentIdentity(context.Background())
	assert.False(t, ok)
}

func TestRevokePostsToken(t *testing.T) {
	var revoked string
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		revoked = r.PostForm.Get("token")
	})

	session := &GoogleSession{service: s, token: &oauth2.Token{AccessToken: "access"}}
	require.NoError(t, session.SignOut(context.Background()))
	assert.Equal(t, "access", revoked)
}

func TestRevokeReportsFailure(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := s.Revoke(context.Background(), &oauth2.Token{AccessToken: "access"})
	assert.ErrorIs(t, err, ErrRevokeFailed)
}
