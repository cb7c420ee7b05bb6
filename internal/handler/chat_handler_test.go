package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mira/internal/errors"
	"mira/internal/model"
)

func TestChatHandler_Chat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		answer     string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"answered", `{"message":"Where to eat?"}`, "Try the pasteis.", nil, http.StatusOK, ""},
		{"ai down", `{"message":"Where to eat?"}`, "", apperrors.ErrAIUnavailable, http.StatusServiceUnavailable, "AI service is temporarily unavailable. Try again later."},
		{"blank message", `{"message":"  "}`, "", apperrors.ErrMessageRequired, http.StatusBadRequest, "Message is required"},
		{"foreign trip", `{"message":"hi"}`, "", apperrors.ErrTripNotFound, http.StatusNotFound, "Trip not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockChatService)
			svc.On("SendMessage", mock.Anything, uint(3), uint(9), mock.AnythingOfType("string")).Return(tt.answer, tt.serviceErr)
			h := NewChatHandler(svc)

			c, rec := newContext(http.MethodPost, "/", tt.body, 3)
			c.SetParamNames("id")
			c.SetParamValues("9")
			err := h.Chat(c)

			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.JSONEq(t, `{"answer":"Try the pasteis."}`, rec.Body.String())
			} else {
				requireHTTPError(t, err, tt.wantStatus, tt.wantDetail)
			}
			svc.AssertExpectations(t)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockChatService)
		h := NewChatHandler(svc)

		c, _ := newContext(http.MethodPost, "/", `{"message":`, 3)
		c.SetParamNames("id")
		c.SetParamValues("9")
		requireHTTPError(t, h.Chat(c), http.StatusBadRequest, "Invalid request body")
		svc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChatHandler_ListMessages(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	svc := new(MockChatService)
	svc.On("ListMessages", mock.Anything, uint(3), uint(9)).Return([]model.TripMessage{
		{ID: 1, TripID: 9, Role: model.RoleUser, Content: "hi", CreatedAt: ts},
		{ID: 2, TripID: 9, Role: model.RoleAssistant, Content: "hello", CreatedAt: ts},
	}, nil)
	svc.On("ListMessages", mock.Anything, uint(3), uint(10)).Return(nil, nil)
	h := NewChatHandler(svc)

	c, rec := newContext(http.MethodGet, "/", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.ListMessages(c))
	assert.JSONEq(t, `[
		{"id":1,"role":"user","content":"hi","created_at":"2026-03-01T10:00:00Z"},
		{"id":2,"role":"assistant","content":"hello","created_at":"2026-03-01T10:00:00Z"}
	]`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("10")
	require.NoError(t, h.ListMessages(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}
