package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"mira/internal/auth"
	apperrors "mira/internal/errors"
)

// newContext builds an echo context for a JSON request. A non-zero userID
// simulates the JWT middleware.
func newContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(ContextKeyUser, &auth.Claims{UserID: userID, TokenType: auth.TokenTypeAccess})
	}
	return c, rec
}

// requireHTTPError asserts err is an echo.HTTPError with the given status and detail.
func requireHTTPError(t *testing.T, err error, status int, detail string) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	require.Equal(t, status, he.Code)

	switch body := he.Message.(type) {
	case apperrors.ErrorResponse:
		require.Equal(t, detail, body.Detail)
	case apperrors.ValidationErrorResponse:
		require.Equal(t, detail, body.Detail)
	default:
		t.Fatalf("unexpected error body %T", he.Message)
	}
	return he
}
