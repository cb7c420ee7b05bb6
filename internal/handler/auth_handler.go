package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "mira/internal/errors"
	"mira/internal/service"
)

// AuthHandler handles registration, verification and token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyEmailRequest carries the code mailed at registration.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResendCodeRequest asks for a fresh verification code.
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google ID token.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// RefreshRequest represents a token refresh or logout request.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// DetailResponse is a plain confirmation message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// AccessResponse carries a freshly minted access token.
type AccessResponse struct {
	Access string `json:"access"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an unverified account and emails a 6-digit verification code.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} DetailResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken):
			return fieldError("email", "Email already registered")
		case errors.Is(err, apperrors.ErrPasswordTooShort):
			return fieldError("password", "Ensure this field has at least 8 characters.")
		}
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, DetailResponse{Detail: "Verification code sent to email"})
}

// VerifyEmail godoc
// @Summary Verify email address
// @Tags users
// @Accept json
// @Produce json
// @Param request body VerifyEmailRequest true "Email and code"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/verify-email/ [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, DetailResponse{Detail: "Email successfully verified"})
}

// ResendCode godoc
// @Summary Resend verification code
// @Description At most one code per 60 seconds. Previous unused codes stop working.
// @Tags users
// @Accept json
// @Produce json
// @Param request body ResendCodeRequest true "Email"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /users/resend-email-code/ [post]
func (h *AuthHandler) ResendCode(c echo.Context) error {
	var req ResendCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResendCode(c.Request().Context(), req.Email); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, DetailResponse{Detail: "Verification code resent"})
}

// Login godoc
// @Summary Login with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

// GoogleLogin godoc
// @Summary Login with a Google ID token
// @Description Creates a verified account on first login. An existing account with the same email is reused.
// @Tags users
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google ID token"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/google/ [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Detail: "Invalid request body"})
	}

	pair, err := h.authService.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary Refresh access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AccessResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/token/refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	access, err := h.authService.RefreshToken(c.Request().Context(), req.Refresh)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, AccessResponse{Access: access})
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags users
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), req.Refresh); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, DetailResponse{Detail: "Logged out"})
}
