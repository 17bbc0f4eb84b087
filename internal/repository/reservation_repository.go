package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo owns every mutation of the reservations table. The
// overlap invariant (no two PENDING/CONFIRMED reservations on the same
// room with intersecting [date_in, date_out) ranges) is enforced here
// by conditional writes: each guarded statement evaluates its predicate
// and performs the write as one atomic unit inside the store, so two
// concurrent callers can never both observe "no conflict" and both
// write. Application code must not re-implement any of these guards as
// a read followed by a write.
//
// Ownership scoping: methods taking a clientScope apply it when
// non-nil (customer calls) and skip it when nil (admin calls). A write
// that matched no row because of scope, state or conflict uniformly
// returns false; callers cannot distinguish "not yours" from "does not
// exist", which keeps other clients' reservations unenumerable.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// activeStatuses is inlined into every guard. Keep in sync with
// model.ReservationStatus.Active.
const activeStatuses = `'PENDING','CONFIRMED'`

// CreateIfAvailable inserts a PENDING reservation for clientID on
// roomID over stay, only if no active reservation on the room overlaps
// the range. Check and insert are a single INSERT ... SELECT ... WHERE
// NOT EXISTS statement, so the store evaluates the predicate and the
// write indivisibly. Returns (id, true) on success and (0, false) when
// the guard rejected the insert; a date conflict is an expected
// outcome, not an error.
func (r *ReservationRepo) CreateIfAvailable(ctx context.Context, clientID, roomID uint64, stay model.DateRange) (uint64, bool, error) {
	const q = `INSERT INTO reservations (client_id, room_id, date_in, date_out, status, staff_id)
               SELECT ?, ?, ?, ?, 'PENDING', NULL
               FROM dual
               WHERE NOT EXISTS (
                 SELECT 1 FROM reservations rs
                 WHERE rs.room_id = ?
                   AND rs.status IN (` + activeStatuses + `)
                   AND NOT (rs.date_out <= ? OR rs.date_in >= ?)
               )`
	res, err := r.db.ExecContext(ctx, q,
		clientID, roomID, stay.InStr(), stay.OutStr(),
		roomID, stay.InStr(), stay.OutStr())
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return uint64(id), true, nil
}

// UpdateStatus moves a reservation to target when the state machine
// allows it: PENDING may become CONFIRMED or CANCELLED, CONFIRMED may
// only become CANCELLED. The legality check rides in the same UPDATE,
// so a stale caller (e.g. confirming an already-cancelled reservation)
// simply matches no row. Returns whether a row changed.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, target model.ReservationStatus, clientScope *uint64) (bool, error) {
	q := `UPDATE reservations
          SET status = ?
          WHERE id = ?
            AND ((? = 'CONFIRMED' AND status = 'PENDING')
              OR (? = 'CANCELLED' AND status IN (` + activeStatuses + `)))`
	args := []interface{}{target, id, target, target}
	if clientScope != nil {
		q += ` AND client_id = ?`
		args = append(args, *clientScope)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Reschedule moves a reservation to a new date range on its current
// room; the room assignment never changes. The UPDATE only applies
// when no *other* active reservation on the same room overlaps the new
// range. MySQL forbids subqueries on the table being updated, so the
// guard reads from a materialized copy of the candidate rows. Returns
// whether the update applied; false covers conflict, wrong owner and
// nonexistent id without distinguishing them.
func (r *ReservationRepo) Reschedule(ctx context.Context, id uint64, stay model.DateRange, clientScope *uint64) (bool, error) {
	q := `UPDATE reservations rs
          SET rs.date_in = ?, rs.date_out = ?
          WHERE rs.id = ?
            AND NOT EXISTS (
              SELECT 1 FROM (
                SELECT o.id, o.room_id, o.date_in, o.date_out, o.status
                FROM reservations o
              ) other
              WHERE other.room_id = rs.room_id
                AND other.id <> rs.id
                AND other.status IN (` + activeStatuses + `)
                AND NOT (other.date_out <= ? OR other.date_in >= ?)
            )`
	args := []interface{}{stay.InStr(), stay.OutStr(), id, stay.InStr(), stay.OutStr()}
	if clientScope != nil {
		q += ` AND rs.client_id = ?`
		args = append(args, *clientScope)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a CANCELLED reservation together with its payment
// rows in one transaction. The payment delete is scoped by the same
// ownership and status predicate as the reservation delete, so when
// the precondition fails neither statement touches anything; when it
// holds, both removals commit atomically and a mid-way failure rolls
// everything back. Live (PENDING/CONFIRMED) reservations are never
// deletable, not even by an admin. Returns whether the reservation row
// was removed.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64, clientScope *uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	payQ := `DELETE FROM payments
             WHERE reservation_id IN (
               SELECT id FROM reservations
               WHERE id = ? AND status = 'CANCELLED'`
	payArgs := []interface{}{id}
	resQ := `DELETE FROM reservations WHERE id = ? AND status = 'CANCELLED'`
	resArgs := []interface{}{id}
	if clientScope != nil {
		payQ += ` AND client_id = ?`
		payArgs = append(payArgs, *clientScope)
		resQ += ` AND client_id = ?`
		resArgs = append(resArgs, *clientScope)
	}
	payQ += `)`

	if _, err := tx.ExecContext(ctx, payQ, payArgs...); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, resQ, resArgs...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return n > 0, nil
}

// GetByID fetches a reservation row. Returns sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT id, client_id, room_id, date_in, date_out, status, staff_id, created_at, updated_at
               FROM reservations WHERE id = ?`
	var rv model.Reservation
	var staffID sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rv.ID, &rv.ClientID, &rv.RoomID, &rv.DateIn, &rv.DateOut, &rv.Status,
		&staffID, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	if staffID.Valid {
		sid := uint64(staffID.Int64)
		rv.StaffID = &sid
	}
	return rv, nil
}

// ReservationDetail is a reservation joined with its client and room
// for listing. Dates are rendered in the YYYY-MM-DD wire format.
type ReservationDetail struct {
	ID         uint64                  `json:"id"`
	ClientID   uint64                  `json:"client_id"`
	ClientName string                  `json:"client_name"`
	RoomID     uint64                  `json:"room_id"`
	RoomLabel  string                  `json:"room_label"`
	DateIn     string                  `json:"date_in"`
	DateOut    string                  `json:"date_out"`
	Status     model.ReservationStatus `json:"status"`
}

const detailQ = `SELECT rs.id, rs.client_id, CONCAT(c.first_name, ' ', c.last_name), rs.room_id, rm.label,
                        DATE_FORMAT(rs.date_in, '%Y-%m-%d'), DATE_FORMAT(rs.date_out, '%Y-%m-%d'), rs.status
                 FROM reservations rs
                 JOIN clients c ON c.id = rs.client_id
                 JOIN rooms rm ON rm.id = rs.room_id`

// ListAll returns every reservation with client and room details,
// newest first. Admin-only at the handler layer.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQ+` ORDER BY rs.id DESC`)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ListByClient returns the reservations belonging to one client,
// newest first.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQ+` WHERE rs.client_id = ? ORDER BY rs.id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

func scanDetails(rows *sql.Rows) ([]ReservationDetail, error) {
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.ClientID, &d.ClientName, &d.RoomID, &d.RoomLabel,
			&d.DateIn, &d.DateOut, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
