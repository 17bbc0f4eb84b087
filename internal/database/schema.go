package database

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// schema creates the tables in FK order. The unique and foreign-key
// constraints are a backstop: the repositories' conditional writes are
// the primary guard against double booking, and the schema only has to
// reject what a bug lets through.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        email         VARCHAR(255) NOT NULL UNIQUE,
        password_hash VARCHAR(255) NOT NULL,
        role          ENUM('ADMIN','CUSTOMER') NOT NULL DEFAULT 'CUSTOMER',
        is_active     TINYINT(1) NOT NULL DEFAULT 1,
        created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
        id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        user_id    BIGINT UNSIGNED NOT NULL,
        token_hash CHAR(64) NOT NULL,
        expires_at DATETIME NOT NULL,
        revoked_at DATETIME NULL,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_refresh_hash (token_hash),
        CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS room_types (
        id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        name               VARCHAR(64) NOT NULL UNIQUE,
        nightly_rate_cents INT UNSIGNED NOT NULL
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS rooms (
        id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        label        VARCHAR(16) NOT NULL UNIQUE,
        room_type_id BIGINT UNSIGNED NOT NULL,
        status       ENUM('AVAILABLE','OUT_OF_SERVICE') NOT NULL DEFAULT 'AVAILABLE',
        created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        CONSTRAINT fk_room_type FOREIGN KEY (room_type_id) REFERENCES room_types(id)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS clients (
        id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        first_name VARCHAR(100) NOT NULL,
        last_name  VARCHAR(100) NOT NULL,
        tax_id     VARCHAR(32) NOT NULL UNIQUE,
        phone      VARCHAR(32) NOT NULL DEFAULT '',
        email      VARCHAR(255) NOT NULL DEFAULT '',
        user_id    BIGINT UNSIGNED NULL UNIQUE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        CONSTRAINT fk_client_user FOREIGN KEY (user_id) REFERENCES users(id)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS reservations (
        id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        client_id  BIGINT UNSIGNED NOT NULL,
        room_id    BIGINT UNSIGNED NOT NULL,
        date_in    DATE NOT NULL,
        date_out   DATE NOT NULL,
        status     ENUM('PENDING','CONFIRMED','CANCELLED') NOT NULL DEFAULT 'PENDING',
        staff_id   BIGINT UNSIGNED NULL,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        KEY idx_res_room_status (room_id, status),
        CONSTRAINT fk_res_client FOREIGN KEY (client_id) REFERENCES clients(id),
        CONSTRAINT fk_res_room FOREIGN KEY (room_id) REFERENCES rooms(id),
        CONSTRAINT chk_res_range CHECK (date_in < date_out)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS payments (
        id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        reservation_id BIGINT UNSIGNED NOT NULL,
        amount_cents   INT UNSIGNED NOT NULL,
        reference      CHAR(36) NOT NULL UNIQUE,
        created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        CONSTRAINT fk_pay_reservation FOREIGN KEY (reservation_id) REFERENCES reservations(id)
    ) ENGINE=InnoDB`,
}

// EnsureSchema creates missing tables and seeds the initial admin
// account when none exists. adminPassword is hashed before storage;
// an empty adminPassword skips the seed entirely.
func EnsureSchema(ctx context.Context, db *sql.DB, adminEmail, adminPassword string, bcryptCost int) error {
	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	if adminPassword == "" {
		return nil
	}
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE role='ADMIN' LIMIT 1`).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := utils.HashPassword(adminPassword, bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?,?, 'ADMIN')`,
		adminEmail, hash)
	return err
}
