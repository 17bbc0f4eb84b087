package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ClientRepo manages guest profiles. Profiles carry no conflict
// semantics of their own, with one exception: a client with active
// reservations cannot be deleted, and that guard is evaluated inside
// the DELETE statement itself.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

// GetByUserID resolves the client profile linked to an authenticated
// user. Customer booking paths call this to bind reservations to the
// caller's own profile; ErrUnlinkedUser is returned when the account
// has no profile so handlers can point the user at account setup.
func (r *ClientRepo) GetByUserID(ctx context.Context, userID uint64) (model.Client, error) {
	var c model.Client
	var uid sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, tax_id, phone, email, user_id, created_at
         FROM clients WHERE user_id = ?`, userID).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.TaxID, &c.Phone, &c.Email, &uid, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Client{}, ErrUnlinkedUser
	}
	if err != nil {
		return model.Client{}, err
	}
	if uid.Valid {
		v := uint64(uid.Int64)
		c.UserID = &v
	}
	return c, nil
}

// CreateTx inserts a client profile within an existing transaction and
// returns the generated ID. Used by registration, which creates the
// user account and its profile as one unit.
func (r *ClientRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.Client) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO clients (first_name, last_name, tax_id, phone, email, user_id) VALUES (?,?,?,?,?,?)`,
		c.FirstName, c.LastName, c.TaxID, c.Phone, c.Email, c.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Create inserts a standalone client profile with no linked account
// (admin-created walk-in guests).
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (first_name, last_name, tax_id, phone, email, user_id) VALUES (?,?,?,?,?,NULL)`,
		c.FirstName, c.LastName, c.TaxID, c.Phone, c.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Delete removes a client only when they have no PENDING or CONFIRMED
// reservations. The existence check is part of the DELETE, so a
// concurrent booking cannot slip between check and removal. Returns
// whether a row was deleted; false means active reservations exist or
// the client does not exist.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	const q = `DELETE FROM clients
               WHERE id = ?
                 AND NOT EXISTS (
                   SELECT 1 FROM reservations rs
                   WHERE rs.client_id = ? AND rs.status IN (` + activeStatuses + `)
                 )`
	res, err := r.db.ExecContext(ctx, q, id, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Search lists clients, optionally filtered by a free-text term matched
// against name, tax id and email. An empty term returns everyone,
// newest first.
func (r *ClientRepo) Search(ctx context.Context, term string) ([]model.Client, error) {
	term = strings.TrimSpace(term)
	const q = `SELECT id, first_name, last_name, tax_id, phone, email, user_id, created_at
               FROM clients
               WHERE (? = '' OR first_name LIKE CONCAT('%', ?, '%')
                             OR last_name LIKE CONCAT('%', ?, '%')
                             OR tax_id LIKE CONCAT('%', ?, '%')
                             OR email LIKE CONCAT('%', ?, '%'))
               ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, term, term, term, term, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		var uid sql.NullInt64
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.TaxID, &c.Phone, &c.Email, &uid, &c.CreatedAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			v := uint64(uid.Int64)
			c.UserID = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
