package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "mira/internal/errors"
	"mira/internal/model"
	"mira/internal/service"
)

const dateLayout = "2006-01-02"

// TripHandler exposes trip CRUD for the authenticated user.
type TripHandler struct {
	tripService service.TripService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest represents the trip fields accepted on create.
type CreateTripRequest struct {
	Title          string           `json:"title" validate:"required,max=255"`
	Destination    string           `json:"destination" validate:"required,max=255"`
	StartDate      *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	TravelersCount *int             `json:"travelers_count" validate:"omitempty,min=1"`
	Budget         *decimal.Decimal `json:"budget" swaggertype:"number"`
	Status         string           `json:"status" validate:"omitempty,oneof=draft planning ready archived"`
}

// TripResponse is the public shape of a trip.
type TripResponse struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Destination    string           `json:"destination"`
	StartDate      *string          `json:"start_date"`
	EndDate        *string          `json:"end_date"`
	TravelersCount uint             `json:"travelers_count"`
	Budget         *json.Number     `json:"budget" swaggertype:"number"`
	Status         model.TripStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NewTripResponse converts a trip into its API representation.
func NewTripResponse(t *model.Trip) TripResponse {
	resp := TripResponse{
		ID:             t.ID,
		Title:          t.Title,
		Destination:    t.Destination,
		StartDate:      formatDate(t.StartDate),
		EndDate:        formatDate(t.EndDate),
		TravelersCount: t.TravelersCount,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
	}
	if t.Budget != nil {
		n := json.Number(t.Budget.StringFixed(2))
		resp.Budget = &n
	}
	return resp
}

// ListTrips godoc
// @Summary List my trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TripResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /chats/trips/ [get]
func (h *TripHandler) ListTrips(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	trips, err := h.tripService.ListTrips(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	out := make([]TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, NewTripResponse(&trips[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Status defaults to draft and travelers_count to 1.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTripRequest true "Trip fields"
// @Success 201 {object} TripResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /chats/trips/ [post]
func (h *TripHandler) CreateTrip(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTripRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Budget != nil && req.Budget.IsNegative() {
		return fieldError("budget", "Ensure this value is greater than or equal to 0.")
	}

	in := service.CreateTripInput{
		Title:       req.Title,
		Destination: req.Destination,
		Budget:      req.Budget,
		Status:      model.TripStatus(req.Status),
	}
	if in.StartDate, err = parseDate(req.StartDate); err != nil {
		return fieldError("start_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	if in.EndDate, err = parseDate(req.EndDate); err != nil {
		return fieldError("end_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	if req.TravelersCount != nil {
		n := uint(*req.TravelersCount)
		in.TravelersCount = &n
	}

	trip, err := h.tripService.CreateTrip(c.Request().Context(), userID, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, NewTripResponse(trip))
}

// GetTrip godoc
// @Summary Get one of my trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} TripResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chats/trips/{id}/ [get]
func (h *TripHandler) GetTrip(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tripID, err := tripIDParam(c)
	if err != nil {
		return err
	}

	trip, err := h.tripService.GetTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, NewTripResponse(trip))
}

// tripIDParam parses the :id path segment. Non-numeric ids read as not found.
func tripIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domainError(apperrors.ErrTripNotFound)
	}
	return uint(id), nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
