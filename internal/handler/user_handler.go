package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mira/internal/auth"
	apperrors "mira/internal/errors"
	"mira/internal/service"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// currentUserID reads the claims stored by the JWT middleware.
func currentUserID(c echo.Context) (uint, error) {
	claims, ok := c.Get(ContextKeyUser).(*auth.Claims)
	if !ok || claims == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Detail: "Authentication credentials were not provided."})
	}
	return claims.UserID, nil
}

// ContextKeyUser is where the JWT middleware stores *auth.Claims.
const ContextKeyUser = "user"
