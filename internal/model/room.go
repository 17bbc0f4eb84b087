package model

import "time"

// RoomStatus enumerates the operational states of a room. A room under
// maintenance is excluded from availability regardless of reservations;
// the status is flipped by an external maintenance workflow, never by
// the reservation paths.
type RoomStatus string

const (
	RoomAvailable    RoomStatus = "AVAILABLE"
	RoomOutOfService RoomStatus = "OUT_OF_SERVICE"
)

// Room describes a physical hotel room. Rooms are immutable except for
// their status.
//
// Fields:
//  ID         – primary key identifier.
//  Label      – human-facing room number ("101", "204B").
//  RoomTypeID – type of the room, determines the nightly rate.
//  Status     – operational state (AVAILABLE, OUT_OF_SERVICE).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Room struct {
	ID         uint64     // rooms.id
	Label      string     // rooms.label
	RoomTypeID uint64     // rooms.room_type_id
	Status     RoomStatus // rooms.status
	CreatedAt  time.Time  // rooms.created_at
	UpdatedAt  time.Time  // rooms.updated_at
}

// RoomType groups rooms by category and carries the nightly rate.
// Referenced read-only by the reservation paths.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – type name ("Single", "Double", "Suite").
//  NightlyRateCents – price per night in cents.
type RoomType struct {
	ID               uint64 // room_types.id
	Name             string // room_types.name
	NightlyRateCents uint32 // room_types.nightly_rate_cents
}
