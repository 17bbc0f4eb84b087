package model

import "time"

// Role enumerates the two principal roles. The value travels inside the
// JWT "role" claim and is validated at the boundary; handlers and
// repositories never see any other string.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// User represents an authentication account in the `users` table.
// A customer account is linked to exactly one client profile
// (clients.user_id); admin accounts have no profile.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password. Plain or reversible storage
//                 is never accepted when verifying credentials.
//  Role         – ADMIN or CUSTOMER.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`. Only the SHA-256 hash
// of the token value is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

// Principal is the authenticated actor behind a request, extracted from
// the access token by the JWT middleware. Every mutating operation
// receives a Principal explicitly; nothing reads ambient session state.
type Principal struct {
	UserID uint64
	Role   Role
}

// IsAdmin reports whether the principal may act on any client's data.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
