package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PaymentHandler records and lists referential payment rows against a
// reservation. Amounts are stored as given; nothing is computed,
// charged or settled here.
type PaymentHandler struct {
	Payments     *repository.PaymentRepo
	Reservations *repository.ReservationRepo
}

func NewPaymentHandler(p *repository.PaymentRepo, rs *repository.ReservationRepo) *PaymentHandler {
	return &PaymentHandler{Payments: p, Reservations: rs}
}

type createPaymentReq struct {
	AmountCents uint32 `json:"amount_cents" validate:"required,gt=0"`
}

// Create handles POST /v1/reservations/:id/payments (admin). The
// reservation is looked up first so a missing id is a clean 404 rather
// than a foreign key error.
func (h *PaymentHandler) Create(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation lookup failed"})
	}

	p, err := h.Payments.Create(ctx, id, req.AmountCents)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /v1/reservations/:id/payments (admin).
func (h *PaymentHandler) List(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation lookup failed"})
	}

	out, err := h.Payments.ListByReservation(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}
