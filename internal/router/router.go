package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mira/internal/auth"
	apperrors "mira/internal/errors"
	"mira/internal/handler"
	"mira/internal/logging"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	log logging.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tripHandler *handler.TripHandler,
	chatHandler *handler.ChatHandler,
) {
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api/docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/register/", authHandler.Register)
	api.POST("/users/verify-email/", authHandler.VerifyEmail)
	api.POST("/users/resend-email-code/", authHandler.ResendCode)
	api.POST("/users/login/", authHandler.Login)
	api.POST("/users/google/", authHandler.GoogleLogin)
	api.POST("/users/token/refresh/", authHandler.Refresh)
	api.POST("/users/logout/", authHandler.Logout)

	// Secured routes (require a valid access token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ContextKeyUser,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Detail: "Authentication credentials were not provided."})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Detail: "Given token not valid for any token type"}).SetInternal(err)
		},
	}))

	secured.GET("/users/me/", userHandler.Me)

	// Trip routes
	secured.GET("/chats/trips/", tripHandler.ListTrips)
	secured.POST("/chats/trips/", tripHandler.CreateTrip)
	secured.GET("/chats/trips/:id/", tripHandler.GetTrip)
	secured.POST("/chats/trips/:id/chat/", chatHandler.Chat)
	secured.GET("/chats/trips/:id/messages/", chatHandler.ListMessages)
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			ctx := c.Request().Context()
			if v.Error != nil {
				log.Warn(ctx, "request failed", append(args, "error", v.Error)...)
				return nil
			}
			log.Info(ctx, "request", args...)
			return nil
		},
	})
}

// errorHandler renders every error as {"detail": ...}. Handlers return
// echo.HTTPError carrying an ErrorResponse; anything else is a 500.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{Detail: "Internal server error"}).SetInternal(err)
		}

		if he.Code >= http.StatusInternalServerError {
			cause := he.Internal
			if cause == nil {
				cause = err
			}
			log.Error(c.Request().Context(), "internal error",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", cause,
			)
		}

		body := he.Message
		if msg, ok := body.(string); ok {
			body = apperrors.ErrorResponse{Detail: msg}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			log.Error(c.Request().Context(), "write error response", "error", err)
		}
	}
}
