package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// AvailabilityHandler answers the room availability query. Every call
// hits the database; nothing is cached between requests because a
// concurrent booking would make a cached answer wrong.
type AvailabilityHandler struct {
	Rooms *repository.RoomRepo
}

func NewAvailabilityHandler(r *repository.RoomRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Rooms: r}
}

// Search handles GET /v1/availability?date_in=YYYY-MM-DD&date_out=YYYY-MM-DD.
// The range is half-open: a stay checking out on date_out leaves the
// room free for a check-in on the same day. Invalid or inverted ranges
// are a 400 before any query runs.
func (h *AvailabilityHandler) Search(c echo.Context) error {
	stay, err := model.ParseDateRange(c.QueryParam("date_in"), c.QueryParam("date_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_in and date_out must be YYYY-MM-DD with date_in before date_out"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.FindAvailable(ctx, stay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date_in":  stay.InStr(),
		"date_out": stay.OutStr(),
		"rooms":    rooms,
	})
}

// ListRooms handles GET /v1/rooms: the bookable catalog joined with
// room types, for populating booking forms.
func (h *AvailabilityHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListBookable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}
