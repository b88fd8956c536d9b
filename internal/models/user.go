package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

// Role names assigned to users. ADMIN unlocks the administrative operation
// surface (list all bookings, confirm bookings, tour management, revenue).
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// StringArray handles TEXT[] columns in PostgreSQL
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.Array(a).Value()
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	slice := (*[]string)(a)
	return pq.Array(slice).Scan(src)
}

// User represents a registered account. PasswordHash never leaves the server.
type User struct {
	ID              string      `json:"id" db:"id"`
	Username        string      `json:"username" db:"username"`
	Email           string      `json:"email" db:"email"`
	PasswordHash    string      `json:"-" db:"password_hash"`
	Roles           StringArray `json:"roles" db:"roles"`
	LastLoginDevice *string     `json:"last_login_device,omitempty" db:"last_login_device"`
	LastLoginAt     *time.Time  `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the request to register an account
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if len(r.Username) < 3 {
		return apperrors.InvalidArgument("username must be at least 3 characters")
	}
	if len(r.Password) < 8 {
		return apperrors.InvalidArgument("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
