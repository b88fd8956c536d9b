package models

import (
	"time"

	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// validTransitions is the closed transition table for booking statuses.
// CANCELLED is terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to target is a legal status
// transition.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking represents a user's reservation of seats on a tour. TotalPrice is
// frozen at creation time; later price changes on the tour do not affect it.
type Booking struct {
	ID                  string        `json:"id" db:"id"`
	UserRef             string        `json:"user_ref" db:"user_ref"`
	TourRef             string        `json:"tour_ref" db:"tour_ref"`
	BookingDate         time.Time     `json:"booking_date" db:"booking_date"`
	PartySize           int           `json:"party_size" db:"party_size"`
	SpecialRequirements *string       `json:"special_requirements,omitempty" db:"special_requirements"`
	TotalPrice          float64       `json:"total_price" db:"total_price"`
	Status              BookingStatus `json:"status" db:"status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// TransitionTo moves the booking to target, rejecting illegal transitions at
// the mutation boundary instead of relying on callers to check first.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.Status.CanTransitionTo(target) {
		return apperrors.InvalidState("booking cannot move from " + string(b.Status) + " to " + string(target))
	}
	b.Status = target
	return nil
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	TourID              string    `json:"tour_id" binding:"required"`
	BookingDate         time.Time `json:"booking_date" binding:"required"`
	PartySize           int       `json:"party_size" binding:"required"`
	SpecialRequirements *string   `json:"special_requirements,omitempty"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.PartySize < 1 {
		return apperrors.InvalidArgument("party_size must be at least 1")
	}
	if r.BookingDate.IsZero() {
		return apperrors.InvalidArgument("booking_date is required")
	}
	return nil
}
