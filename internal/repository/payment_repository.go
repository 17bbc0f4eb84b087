package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// PaymentRepo stores referential payment records. No amounts are
// computed or settled here; rows exist so reservation deletion can
// honor its cascade contract.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create records a payment against a reservation, generating a unique
// reference. The FK to reservations makes inserting against a missing
// reservation a store error; handlers verify existence first to report
// 404 instead.
func (r *PaymentRepo) Create(ctx context.Context, reservationID uint64, amountCents uint32) (model.Payment, error) {
	p := model.Payment{
		ReservationID: reservationID,
		AmountCents:   amountCents,
		Reference:     uuid.NewString(),
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (reservation_id, amount_cents, reference) VALUES (?,?,?)`,
		p.ReservationID, p.AmountCents, p.Reference)
	if err != nil {
		return model.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Payment{}, err
	}
	p.ID = uint64(id)
	return p, nil
}

// ListByReservation returns all payments recorded against a reservation.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, amount_cents, reference, created_at
         FROM payments WHERE reservation_id = ? ORDER BY id`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.AmountCents, &p.Reference, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
