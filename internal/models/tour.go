package models

import (
	"time"

	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

// TourType categorizes a tour package
type TourType string

const (
	TourTypeAdventure TourType = "ADVENTURE"
	TourTypeCultural  TourType = "CULTURAL"
	TourTypeBeach     TourType = "BEACH"
	TourTypeWildlife  TourType = "WILDLIFE"
	TourTypeCruise    TourType = "CRUISE"
)

// Tour represents a purchasable travel package
type Tour struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    *string   `json:"description,omitempty" db:"description"`
	Destination    string    `json:"destination" db:"destination"`
	DurationDays   int       `json:"duration_days" db:"duration_days"`
	Price          float64   `json:"price" db:"price"`
	StartDate      time.Time `json:"start_date" db:"start_date"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
	AvailableSlots int       `json:"available_slots" db:"available_slots"`
	MaxGroupSize   int       `json:"max_group_size" db:"max_group_size"`
	ImageURL       *string   `json:"image_url,omitempty" db:"image_url"`
	Type           TourType  `json:"type" db:"type"`
	IsAvailable    bool      `json:"is_available" db:"is_available"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SaveTourRequest represents the request to create or update a tour
type SaveTourRequest struct {
	Name           string    `json:"name" binding:"required"`
	Description    *string   `json:"description,omitempty"`
	Destination    string    `json:"destination" binding:"required"`
	DurationDays   int       `json:"duration_days" binding:"required"`
	Price          float64   `json:"price" binding:"required"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	AvailableSlots int       `json:"available_slots"`
	MaxGroupSize   int       `json:"max_group_size" binding:"required"`
	ImageURL       *string   `json:"image_url,omitempty"`
	Type           TourType  `json:"type" binding:"required"`
	IsAvailable    *bool     `json:"is_available,omitempty"`
}

// Validate validates the save tour request
func (r *SaveTourRequest) Validate() error {
	if r.Price <= 0 {
		return apperrors.InvalidArgument("price must be positive")
	}
	if r.DurationDays < 1 {
		return apperrors.InvalidArgument("duration_days must be at least 1")
	}
	if r.MaxGroupSize < 1 {
		return apperrors.InvalidArgument("max_group_size must be at least 1")
	}
	if r.AvailableSlots < 0 {
		return apperrors.InvalidArgument("available_slots cannot be negative")
	}
	if r.EndDate.Before(r.StartDate) {
		return apperrors.InvalidArgument("end_date must not be before start_date")
	}
	return nil
}
