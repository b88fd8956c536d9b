package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

const tourColumns = `id, name, description, destination, duration_days, price,
	   start_date, end_date, available_slots, max_group_size, image_url,
	   type, is_available, created_at, updated_at`

// TourRepository handles database operations for the tours table
type TourRepository struct {
	db DB
}

// NewTourRepository creates a new TourRepository
func NewTourRepository(db DB) *TourRepository {
	return &TourRepository{db: db}
}

// GetByID retrieves a tour by ID
func (r *TourRepository) GetByID(id string) (*models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	var tour models.Tour
	err := r.db.Get(&tour, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("tour", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return &tour, nil
}

// List retrieves every tour
func (r *TourRepository) List() ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours ORDER BY start_date`

	var tours []models.Tour
	if err := r.db.Select(&tours, query); err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}

// ListAvailable retrieves tours currently open for booking
func (r *TourRepository) ListAvailable() ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours
		WHERE is_available = true
		ORDER BY start_date`

	var tours []models.Tour
	if err := r.db.Select(&tours, query); err != nil {
		return nil, fmt.Errorf("failed to list available tours: %w", err)
	}
	return tours, nil
}

// SearchByDestination retrieves tours whose destination contains the given
// text, case-insensitively
func (r *TourRepository) SearchByDestination(destination string) ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours
		WHERE destination ILIKE '%' || $1 || '%'
		ORDER BY start_date`

	var tours []models.Tour
	if err := r.db.Select(&tours, query, destination); err != nil {
		return nil, fmt.Errorf("failed to search tours: %w", err)
	}
	return tours, nil
}

// ListByType retrieves tours of the given type
func (r *TourRepository) ListByType(tourType models.TourType) ([]models.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours
		WHERE type = $1
		ORDER BY start_date`

	var tours []models.Tour
	if err := r.db.Select(&tours, query, tourType); err != nil {
		return nil, fmt.Errorf("failed to list tours by type: %w", err)
	}
	return tours, nil
}

// Save inserts the tour on first save and overwrites the matching record
// afterwards
func (r *TourRepository) Save(tour *models.Tour) error {
	if tour.ID == "" {
		tour.ID = uuid.New().String()

		query := `
			INSERT INTO tours (
				id, name, description, destination, duration_days, price,
				start_date, end_date, available_slots, max_group_size,
				image_url, type, is_available
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at, updated_at
		`

		err := r.db.QueryRow(
			query,
			tour.ID, tour.Name, tour.Description, tour.Destination,
			tour.DurationDays, tour.Price, tour.StartDate, tour.EndDate,
			tour.AvailableSlots, tour.MaxGroupSize, tour.ImageURL, tour.Type,
			tour.IsAvailable,
		).Scan(&tour.CreatedAt, &tour.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create tour: %w", err)
		}
		return nil
	}

	query := `
		UPDATE tours
		SET name = $2, description = $3, destination = $4, duration_days = $5,
			price = $6, start_date = $7, end_date = $8, available_slots = $9,
			max_group_size = $10, image_url = $11, type = $12,
			is_available = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		tour.ID, tour.Name, tour.Description, tour.Destination,
		tour.DurationDays, tour.Price, tour.StartDate, tour.EndDate,
		tour.AvailableSlots, tour.MaxGroupSize, tour.ImageURL, tour.Type,
		tour.IsAvailable,
	).Scan(&tour.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperrors.NotFound("tour", tour.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	return nil
}

// Delete removes a tour
func (r *TourRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("tour", id)
	}
	return nil
}

// ReserveSlots atomically takes n slots from the tour's remaining capacity.
// The conditional UPDATE guarantees at most one winner when concurrent
// reservations compete for the last slots.
func (r *TourRepository) ReserveSlots(id string, n int) error {
	query := `
		UPDATE tours
		SET available_slots = available_slots - $2, updated_at = NOW()
		WHERE id = $1 AND available_slots >= $2
	`

	result, err := r.db.Exec(query, id, n)
	if err != nil {
		return fmt.Errorf("failed to reserve slots: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reserve slots: %w", err)
	}
	if rows == 0 {
		return apperrors.InvalidState("tour has insufficient available slots")
	}
	return nil
}

// ReleaseSlots returns n slots to the tour's remaining capacity, e.g. after
// a cancellation.
func (r *TourRepository) ReleaseSlots(id string, n int) error {
	query := `
		UPDATE tours
		SET available_slots = available_slots + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, n)
	if err != nil {
		return fmt.Errorf("failed to release slots: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to release slots: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("tour", id)
	}
	return nil
}
