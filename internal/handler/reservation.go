package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	queuepub "github.com/iliyamo/hotel-reservation/internal/service"
)

// ReservationHandler implements the reservation lifecycle. Every
// conditional mutation is delegated to a single guarded statement in
// the repository; the handler's job is authorization, shaping input
// and mapping the boolean outcome to a response. A rejected guard is a
// 409, never a 500.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Clients      *repository.ClientRepo
	Rooms        *repository.RoomRepo

	// PublishEvents disables broker publishing in tests when false.
	PublishEvents bool
}

func NewReservationHandler(rs *repository.ReservationRepo, cl *repository.ClientRepo, rm *repository.RoomRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: rs, Clients: cl, Rooms: rm, PublishEvents: true}
}

type createReservationReq struct {
	RoomID   uint64 `json:"room_id" validate:"required"`
	DateIn   string `json:"date_in" validate:"required"`
	DateOut  string `json:"date_out" validate:"required"`
	ClientID uint64 `json:"client_id"` // admin only; customers book for themselves
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

type datesReq struct {
	DateIn  string `json:"date_in" validate:"required"`
	DateOut string `json:"date_out" validate:"required"`
}

// resolveClientID binds the mutation to a client. Admins name the
// client explicitly; customers always act on their own linked profile,
// which must exist.
func (h *ReservationHandler) resolveClientID(ctx context.Context, c echo.Context, p model.Principal, explicit uint64) (uint64, bool) {
	if p.IsAdmin() {
		if explicit == 0 {
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id is required"})
			return 0, false
		}
		return explicit, true
	}
	scope, ok := h.ownScope(ctx, c, p)
	if !ok {
		return 0, false
	}
	return *scope, true
}

// ownScope returns the ownership filter handed to guarded statements:
// nil for admins, the caller's own client id for customers. A customer
// without a linked profile gets a response written and ok=false.
func (h *ReservationHandler) ownScope(ctx context.Context, c echo.Context, p model.Principal) (*uint64, bool) {
	if p.IsAdmin() {
		return nil, true
	}
	cl, err := h.Clients.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUnlinkedUser) {
			_ = c.JSON(http.StatusConflict, echo.Map{"error": "account has no guest profile; complete registration first"})
			return nil, false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "client lookup failed"})
		return nil, false
	}
	return &cl.ID, true
}

func (h *ReservationHandler) publish(p model.Principal, action string, rv model.Reservation) {
	if !h.PublishEvents {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	// Best effort: a broker outage never fails the request.
	_ = queuepub.PublishReservationEvent(ctx, queue.ReservationEvent{
		Action:        action,
		ReservationID: rv.ID,
		ClientID:      rv.ClientID,
		RoomID:        rv.RoomID,
		DateIn:        rv.DateIn.Format(model.DateLayout),
		DateOut:       rv.DateOut.Format(model.DateLayout),
		ActorUserID:   p.UserID,
		ActorRole:     string(p.Role),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// Create books a room for a date range. The availability check and the
// insert are one atomic statement in the repository, so two concurrent
// requests for overlapping ranges on the same room cannot both
// succeed; the loser gets a 409. New reservations always start PENDING.
func (h *ReservationHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	stay, err := model.ParseDateRange(req.DateIn, req.DateOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_in and date_out must be YYYY-MM-DD with date_in before date_out"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	clientID, ok := h.resolveClientID(ctx, c, p, req.ClientID)
	if !ok {
		return nil
	}

	if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room lookup failed"})
	}

	id, ok, err := h.Reservations.CreateIfAvailable(ctx, clientID, req.RoomID, stay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for the requested dates"})
	}

	rv := model.Reservation{
		ID: id, ClientID: clientID, RoomID: req.RoomID,
		DateIn: stay.In, DateOut: stay.Out, Status: model.StatusPending,
	}
	h.publish(p, queue.ActionCreated, rv)

	return c.JSON(http.StatusCreated, echo.Map{
		"id":       id,
		"room_id":  req.RoomID,
		"date_in":  stay.InStr(),
		"date_out": stay.OutStr(),
		"status":   model.StatusPending,
	})
}

// SetStatus moves a reservation along PENDING -> CONFIRMED -> CANCELLED
// (or PENDING -> CANCELLED). Customers may only cancel; confirming is
// staff work and is rejected before any database access. The
// transition legality and ownership ride inside the UPDATE, so a
// failed move is indistinguishable from a missing or foreign
// reservation: uniformly a 409.
func (h *ReservationHandler) SetStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, err := model.ParseReservationStatus(req.Status)
	if err != nil || target == model.StatusPending {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CONFIRMED or CANCELLED"})
	}
	if target == model.StatusConfirmed && !p.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only staff can confirm reservations"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, ok := h.ownScope(ctx, c, p)
	if !ok {
		return nil
	}

	applied, err := h.Reservations.UpdateStatus(ctx, id, target, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status update failed"})
	}
	if !applied {
		return c.JSON(http.StatusConflict, echo.Map{"error": "status change not applied"})
	}

	if rv, err := h.Reservations.GetByID(ctx, id); err == nil {
		action := queue.ActionConfirmed
		if target == model.StatusCancelled {
			action = queue.ActionCancelled
		}
		h.publish(p, action, rv)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": target})
}

// Reschedule changes a reservation's dates; the room never changes.
// The no-overlap guard excludes the reservation's own row, so shrinking
// or shifting within the current stay always succeeds.
func (h *ReservationHandler) Reschedule(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req datesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	stay, err := model.ParseDateRange(req.DateIn, req.DateOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_in and date_out must be YYYY-MM-DD with date_in before date_out"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, ok := h.ownScope(ctx, c, p)
	if !ok {
		return nil
	}

	applied, err := h.Reservations.Reschedule(ctx, id, stay, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reschedule failed"})
	}
	if !applied {
		return c.JSON(http.StatusConflict, echo.Map{"error": "new dates conflict with another reservation"})
	}

	if rv, err := h.Reservations.GetByID(ctx, id); err == nil {
		h.publish(p, queue.ActionRescheduled, rv)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "date_in": stay.InStr(), "date_out": stay.OutStr()})
}

// Delete removes a CANCELLED reservation and its payment records in one
// transaction. Live reservations must be cancelled first; there is no
// force delete, not even for admins.
func (h *ReservationHandler) Delete(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, ok := h.ownScope(ctx, c, p)
	if !ok {
		return nil
	}

	// Snapshot for the audit event; deletion may still be rejected.
	rv, getErr := h.Reservations.GetByID(ctx, id)

	removed, err := h.Reservations.Delete(ctx, id, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !removed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only cancelled reservations can be deleted"})
	}
	if getErr == nil {
		h.publish(p, queue.ActionDeleted, rv)
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns reservations: all of them for admins, only the caller's
// own for customers.
func (h *ReservationHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if p.IsAdmin() {
		out, err := h.Reservations.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"reservations": out})
	}

	cl, err := h.Clients.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUnlinkedUser) {
			return c.JSON(http.StatusOK, echo.Map{"reservations": []repository.ReservationDetail{}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "client lookup failed"})
	}
	out, err := h.Reservations.ListByClient(ctx, cl.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}
