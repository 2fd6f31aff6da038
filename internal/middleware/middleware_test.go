package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintrack/internal/apperr"
)

type stubVerifier struct {
	adminID  string
	err      error
	gotToken string
}

func (s *stubVerifier) VerifyAdmin(_ context.Context, token string) (string, error) {
	s.gotToken = token
	return s.adminID, s.err
}

func performAuthed(t *testing.T, verifier *stubVerifier, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/imports/recurring-work-orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenAdmin string
	next := func(c echo.Context) error {
		seenAdmin, _ = c.Get("admin_id").(string)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, AdminAuth(verifier)(next)(c))
	return rec, seenAdmin
}

func TestAdminAuthAllowsAdmin(t *testing.T) {
	verifier := &stubVerifier{adminID: "admin-1"}

	rec, adminID := performAuthed(t, verifier, "Bearer sekret")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sekret", verifier.gotToken)
	assert.Equal(t, "admin-1", adminID)
}

func TestAdminAuthMissingToken(t *testing.T) {
	rec, _ := performAuthed(t, &stubVerifier{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsNonAdmin(t *testing.T) {
	verifier := &stubVerifier{err: apperr.New(apperr.KindForbidden, "administrator access required")}

	rec, _ := performAuthed(t, verifier, "Bearer usertoken")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAuthInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: apperr.New(apperr.KindUnauthorized, "invalid token")}

	rec, _ := performAuthed(t, verifier, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
