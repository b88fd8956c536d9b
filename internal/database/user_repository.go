package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

const userColumns = `id, username, email, password_hash, roles,
	   last_login_device, last_login_at, created_at, updated_at`

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user models.User
	err := r.db.Get(&user, query, username)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ExistsByUsername reports whether a user with the given username exists
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Create inserts a new user, assigning an id and timestamps
func (r *UserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Roles,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// RecordLogin stores the device summary and timestamp of the user's latest
// successful login
func (r *UserRepository) RecordLogin(id string, device string) error {
	query := `
		UPDATE users
		SET last_login_device = $2, last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, device)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("user", id)
	}
	return nil
}
