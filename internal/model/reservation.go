package model

import (
	"errors"
	"time"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
// Values are stored verbatim in the reservations.status column, so the
// constants below are the only strings that may ever reach the database.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// ErrInvalidStatus is returned by ParseReservationStatus for any string
// outside the closed enumeration.
var ErrInvalidStatus = errors.New("invalid reservation status")

// ParseReservationStatus validates a client-supplied status string and
// maps it onto the enumeration. Handlers call this at the boundary so
// that repositories only ever see well-typed values.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return ReservationStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether the state machine permits moving from
// the current status to target. PENDING may become CONFIRMED or
// CANCELLED, CONFIRMED may only become CANCELLED, and CANCELLED is
// terminal (deletion is handled separately and is not a transition).
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	}
	return false
}

// Active reports whether the reservation occupies room capacity.
// Only PENDING and CONFIRMED reservations block other bookings;
// a CANCELLED reservation frees the room.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DateLayout is the wire format for calendar dates (check-in/check-out).
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when either date fails to parse as a
// calendar date or when the range is empty or inverted.
var ErrInvalidRange = errors.New("invalid date range")

// DateRange is a half-open interval [In, Out): the guest occupies the
// room on the night of In and leaves on the morning of Out.
type DateRange struct {
	In  time.Time
	Out time.Time
}

// ParseDateRange parses two YYYY-MM-DD strings and enforces In < Out
// (every stay spans at least one night). Any violation yields
// ErrInvalidRange.
func ParseDateRange(in, out string) (DateRange, error) {
	ti, err := time.Parse(DateLayout, in)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	to, err := time.Parse(DateLayout, out)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	if !ti.Before(to) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{In: ti, Out: to}, nil
}

// Overlaps reports whether two half-open ranges intersect. Touching
// ranges ([a,b) and [b,c)) do not overlap: checkout day equals
// check-in day of the next guest. The SQL guards in the repository
// layer encode exactly this predicate; keep the two in sync.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.In.Before(o.Out) && o.In.Before(r.Out)
}

// InStr and OutStr render the bounds in the wire format used for the
// DATE columns.
func (r DateRange) InStr() string  { return r.In.Format(DateLayout) }
func (r DateRange) OutStr() string { return r.Out.Format(DateLayout) }

// Reservation records a client's booking of a single room over a date
// range. The pair (room, range) is exclusive among active reservations:
// the repository layer refuses to create or move a reservation into a
// range that overlaps another PENDING or CONFIRMED reservation on the
// same room.
//
// Fields:
//  ID        – primary key identifier.
//  ClientID  – client the room is booked for.
//  RoomID    – room being occupied; never changes after creation.
//  DateIn    – check-in date (inclusive).
//  DateOut   – check-out date (exclusive).
//  Status    – lifecycle state (PENDING, CONFIRMED, CANCELLED).
//  StaffID   – employee assigned to the booking, if any.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64            // reservations.id
	ClientID  uint64            // reservations.client_id
	RoomID    uint64            // reservations.room_id
	DateIn    time.Time         // reservations.date_in
	DateOut   time.Time         // reservations.date_out
	Status    ReservationStatus // reservations.status
	StaffID   *uint64           // reservations.staff_id (nullable)
	CreatedAt time.Time         // reservations.created_at
	UpdatedAt time.Time         // reservations.updated_at
}

// Range returns the reservation's occupancy interval.
func (r Reservation) Range() DateRange {
	return DateRange{In: r.DateIn, Out: r.DateOut}
}
