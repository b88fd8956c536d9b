package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
		{BookingStatusPending, BookingStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingTransitionTo(t *testing.T) {
	t.Run("Pending To Confirmed", func(t *testing.T) {
		booking := &Booking{Status: BookingStatusPending}
		require.NoError(t, booking.TransitionTo(BookingStatusConfirmed))
		assert.Equal(t, BookingStatusConfirmed, booking.Status)
	})

	t.Run("Cancelled Is Terminal", func(t *testing.T) {
		booking := &Booking{Status: BookingStatusCancelled}
		err := booking.TransitionTo(BookingStatusCancelled)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
		assert.Equal(t, BookingStatusCancelled, booking.Status)
	})

	t.Run("Illegal Transition Leaves Status Unchanged", func(t *testing.T) {
		booking := &Booking{Status: BookingStatusConfirmed}
		err := booking.TransitionTo(BookingStatusPending)
		require.Error(t, err)
		assert.Equal(t, BookingStatusConfirmed, booking.Status)
	})
}

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := CreateBookingRequest{
		TourID:      "tour-1",
		BookingDate: time.Now().AddDate(0, 1, 0),
		PartySize:   2,
	}

	t.Run("Valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("Party Size Zero", func(t *testing.T) {
		req := valid
		req.PartySize = 0
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	})

	t.Run("Party Size Negative", func(t *testing.T) {
		req := valid
		req.PartySize = -3
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	})

	t.Run("Missing Booking Date", func(t *testing.T) {
		req := valid
		req.BookingDate = time.Time{}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	})
}
