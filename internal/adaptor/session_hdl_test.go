package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	logoutFn    func(ctx context.Context, token string) error
	revokeAllFn func(ctx context.Context, userID string) error
}

func (f *fakeSessionService) Logout(ctx context.Context, token string) error {
	return f.logoutFn(ctx, token)
}

func (f *fakeSessionService) RevokeUserSessions(ctx context.Context, userID string) error {
	return f.revokeAllFn(ctx, userID)
}

func TestLogoutHandler_RevokesBearerToken(t *testing.T) {
	var gotToken string
	svc := &fakeSessionService{
		logoutFn: func(_ context.Context, token string) error {
			gotToken = token
			return nil
		},
	}
	handler := NewSessionHandler(svc, zap.NewNop())

	req := authedRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer tok_abc")
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok_abc", gotToken)
}

func TestLogoutHandler_Unauthenticated(t *testing.T) {
	handler := NewSessionHandler(&fakeSessionService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevokeUserSessionsHandler(t *testing.T) {
	var gotUserID string
	svc := &fakeSessionService{
		revokeAllFn: func(_ context.Context, userID string) error {
			gotUserID = userID
			return nil
		},
	}
	handler := NewSessionHandler(svc, zap.NewNop())

	router := chi.NewRouter()
	router.Post("/api/admin/users/{id}/sessions/revoke", handler.RevokeUserSessions)

	req := authedRequest(http.MethodPost, "/api/admin/users/u-42/sessions/revoke", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-42", gotUserID)
}
