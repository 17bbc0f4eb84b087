package model

import "time"

// Client is a guest profile in the `clients` table. A client may be
// linked to at most one user account; admin-created profiles (walk-in
// guests) have no linked account and can only be booked for by staff.
type Client struct {
	ID        uint64    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	TaxID     string    `json:"tax_id"`   // unique
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	UserID    *uint64   `json:"user_id,omitempty"` // nullable, unique
	CreatedAt time.Time `json:"created_at"`
}

// Payment is a referential payment record attached to a reservation.
// The service never computes or settles amounts; rows exist so that
// reservation deletion can demonstrate the FK cascade contract.
type Payment struct {
	ID            uint64    `json:"id"`
	ReservationID uint64    `json:"reservation_id"`
	AmountCents   uint32    `json:"amount_cents"`
	Reference     string    `json:"reference"`
	CreatedAt     time.Time `json:"created_at"`
}
