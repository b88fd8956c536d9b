package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

const bookingColumns = `id, user_ref, tour_ref, booking_date, party_size,
	   special_requirements, total_price, status, created_at, updated_at`

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Save inserts the booking on first save (assigning id and timestamps) and
// overwrites exactly the matching record afterwards.
func (r *BookingRepository) Save(booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()

		query := `
			INSERT INTO bookings (
				id, user_ref, tour_ref, booking_date, party_size,
				special_requirements, total_price, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`

		err := r.db.QueryRow(
			query,
			booking.ID, booking.UserRef, booking.TourRef, booking.BookingDate,
			booking.PartySize, booking.SpecialRequirements, booking.TotalPrice,
			booking.Status,
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	}

	query := `
		UPDATE bookings
		SET booking_date = $2, party_size = $3, special_requirements = $4,
			total_price = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		booking.ID, booking.BookingDate, booking.PartySize,
		booking.SpecialRequirements, booking.TotalPrice, booking.Status,
	).Scan(&booking.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("booking", booking.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	err := r.db.Get(&booking, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("booking", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetAll retrieves every booking, most recently created first
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetByUser retrieves all bookings owned by a user, most recently created
// first
func (r *BookingRepository) GetByUser(userRef string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_ref = $1
		ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, userRef); err != nil {
		return nil, fmt.Errorf("failed to list bookings for user: %w", err)
	}
	return bookings, nil
}

// GetByTour retrieves all bookings for a tour
func (r *BookingRepository) GetByTour(tourRef string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE tour_ref = $1
		ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, tourRef); err != nil {
		return nil, fmt.Errorf("failed to list bookings for tour: %w", err)
	}
	return bookings, nil
}

// GetByTourAndStatus retrieves bookings for a tour filtered by status
func (r *BookingRepository) GetByTourAndStatus(tourRef string, status models.BookingStatus) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE tour_ref = $1 AND status = $2
		ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, tourRef, status); err != nil {
		return nil, fmt.Errorf("failed to list bookings for tour by status: %w", err)
	}
	return bookings, nil
}

// Delete removes a booking record. The lifecycle engine treats cancellation
// as a status change; deletion exists for administrative purging and is
// irreversible.
func (r *BookingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", id)
	}
	return nil
}
