// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published on every reservation lifecycle change
// (created, confirmed, cancelled, rescheduled, deleted). It carries
// enough information for downstream consumers to build an audit trail
// without querying the primary database.
type ReservationEvent struct {
	Action        string `json:"action"`
	ReservationID uint64 `json:"reservation_id"`
	ClientID      uint64 `json:"client_id"`
	RoomID        uint64 `json:"room_id"`
	DateIn        string `json:"date_in"`
	DateOut       string `json:"date_out"`
	ActorUserID   uint64 `json:"actor_user_id"`
	ActorRole     string `json:"actor_role"`
	OccurredAt    string `json:"occurred_at"`
}

// Action values for ReservationEvent.
const (
	ActionCreated     = "created"
	ActionConfirmed   = "confirmed"
	ActionCancelled   = "cancelled"
	ActionRescheduled = "rescheduled"
	ActionDeleted     = "deleted"
)
