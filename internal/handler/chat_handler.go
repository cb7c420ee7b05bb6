package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "mira/internal/errors"
	"mira/internal/model"
	"mira/internal/service"
)

// ChatHandler serves the per-trip AI chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest carries the user's message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the model's reply.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// Chat godoc
// @Summary Ask the trip assistant
// @Description Stores the message, forwards it to the AI service and stores the reply.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /chats/trips/{id}/chat/ [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tripID, err := tripIDParam(c)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Detail: "Invalid request body"})
	}

	answer, err := h.chatService.SendMessage(c.Request().Context(), userID, tripID, req.Message)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ChatResponse{Answer: answer})
}

// ListMessages godoc
// @Summary Conversation history of a trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {array} model.TripMessage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chats/trips/{id}/messages/ [get]
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tripID, err := tripIDParam(c)
	if err != nil {
		return err
	}

	msgs, err := h.chatService.ListMessages(c.Request().Context(), userID, tripID)
	if err != nil {
		return domainError(err)
	}
	if msgs == nil {
		msgs = []model.TripMessage{}
	}
	return c.JSON(http.StatusOK, msgs)
}
