package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo provides read access to the room catalog and implements the
// availability query. Availability is always computed from current
// reservation state; results are never cached across calls because any
// concurrent writer would make a cached answer stale.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// AvailableRoom is a catalog row joined with its type, returned by
// FindAvailable and ListBookable for display to guests.
type AvailableRoom struct {
	ID               uint64 `json:"id"`
	Label            string `json:"label"`
	RoomTypeID       uint64 `json:"room_type_id"`
	RoomTypeName     string `json:"room_type"`
	NightlyRateCents uint32 `json:"nightly_rate_cents"`
}

// FindAvailable returns all rooms free over the half-open range
// [stay.In, stay.Out). A room qualifies when it is not out of service
// and no PENDING or CONFIRMED reservation on it overlaps the range;
// CANCELLED reservations do not block. Ordering by nightly rate then
// label is part of the API contract: the cheapest candidates come
// first, ties broken alphabetically by room number.
//
// The query is a pure read and safe to call concurrently. Range
// validation (In < Out) is the caller's job via model.ParseDateRange.
func (r *RoomRepo) FindAvailable(ctx context.Context, stay model.DateRange) ([]AvailableRoom, error) {
	const q = `SELECT rm.id, rm.label, rt.id, rt.name, rt.nightly_rate_cents
               FROM rooms rm
               JOIN room_types rt ON rt.id = rm.room_type_id
               WHERE rm.status <> 'OUT_OF_SERVICE'
                 AND NOT EXISTS (
                   SELECT 1 FROM reservations rs
                   WHERE rs.room_id = rm.id
                     AND rs.status IN ('PENDING','CONFIRMED')
                     AND NOT (rs.date_out <= ? OR rs.date_in >= ?)
                 )
               ORDER BY rt.nightly_rate_cents, rm.label`
	rows, err := r.db.QueryContext(ctx, q, stay.InStr(), stay.OutStr())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AvailableRoom, 0)
	for rows.Next() {
		var a AvailableRoom
		if err := rows.Scan(&a.ID, &a.Label, &a.RoomTypeID, &a.RoomTypeName, &a.NightlyRateCents); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListBookable returns every room that is not out of service, joined
// with its type, for populating the booking form. Ordered by label.
func (r *RoomRepo) ListBookable(ctx context.Context) ([]AvailableRoom, error) {
	const q = `SELECT rm.id, rm.label, rt.id, rt.name, rt.nightly_rate_cents
               FROM rooms rm
               JOIN room_types rt ON rt.id = rm.room_type_id
               WHERE rm.status <> 'OUT_OF_SERVICE'
               ORDER BY rm.label`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AvailableRoom, 0)
	for rows.Next() {
		var a AvailableRoom
		if err := rows.Scan(&a.ID, &a.Label, &a.RoomTypeID, &a.RoomTypeName, &a.NightlyRateCents); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID fetches a single room. Returns sql.ErrNoRows when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var rm model.Room
	err := r.db.QueryRowContext(ctx,
		`SELECT id, label, room_type_id, status, created_at, updated_at FROM rooms WHERE id = ?`,
		id).Scan(&rm.ID, &rm.Label, &rm.RoomTypeID, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	return rm, err
}
