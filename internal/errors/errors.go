package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordTooShort is returned when a password has fewer than 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidOrExpiredCode is returned when a verification code does not match or has expired.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	// ErrAlreadyVerified is returned when resending a code to a verified user.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrResendTooSoon is returned when a new code is requested inside the cooldown window.
	ErrResendTooSoon = errors.New("try again later")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified is returned on login before email verification.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrIDTokenRequired is returned when a Google login carries no token.
	ErrIDTokenRequired = errors.New("id_token is required")
	// ErrInvalidGoogleToken is returned when the Google verifier rejects a token.
	ErrInvalidGoogleToken = errors.New("invalid google token")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrEmailDelivery is returned when the verification email could not be sent.
	ErrEmailDelivery = errors.New("failed to send verification email")

	// ErrTripNotFound is returned when a trip does not exist or belongs to another user.
	ErrTripNotFound = errors.New("trip not found")
	// ErrInvalidTrip is returned when trip fields break the trip schema.
	ErrInvalidTrip = errors.New("invalid trip")
	// ErrMessageRequired is returned when a chat message is empty.
	ErrMessageRequired = errors.New("message is required")
	// ErrAIUnavailable is returned when the AI completion call fails for any reason.
	ErrAIUnavailable = errors.New("ai service unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse is an ErrorResponse with per-field messages.
type ValidationErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Detail: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidOrExpiredCode):
		return NewHTTPError(http.StatusBadRequest, "Invalid or expired code")
	case errors.Is(err, ErrAlreadyVerified):
		return NewHTTPError(http.StatusBadRequest, "Email already verified")
	case errors.Is(err, ErrResendTooSoon):
		return NewHTTPError(http.StatusTooManyRequests, "Try again later")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailNotVerified):
		return NewHTTPError(http.StatusForbidden, "Email not verified")
	case errors.Is(err, ErrIDTokenRequired):
		return NewHTTPError(http.StatusBadRequest, "id_token is required")
	case errors.Is(err, ErrInvalidGoogleToken):
		return NewHTTPError(http.StatusBadRequest, "Invalid Google token")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
	case errors.Is(err, ErrTripNotFound):
		return NewHTTPError(http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrInvalidTrip):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrMessageRequired):
		return NewHTTPError(http.StatusBadRequest, "Message is required")
	case errors.Is(err, ErrAIUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, "AI service is temporarily unavailable. Try again later.")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
