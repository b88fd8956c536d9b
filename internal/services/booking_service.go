package services

import (
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/auth"
	"github.com/travelgo/tour-booking-backend/internal/database"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// BookingService is the booking lifecycle engine. It validates and creates
// bookings, freezes the price at creation, enforces ownership on read and
// cancel through the authorization guard, and aggregates revenue. The
// principal is always an explicit argument; nothing here reads ambient
// request state.
type BookingService struct {
	bookingStore database.BookingStore
	tourStore    database.TourStore
	userStore    database.UserStore
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingStore database.BookingStore,
	tourStore database.TourStore,
	userStore database.UserStore,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingStore: bookingStore,
		tourStore:    tourStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// ListBookingsForUser returns the principal's bookings, most recently
// created first. An unknown username yields an empty list rather than an
// error so that listing stays idempotent for brand-new accounts; contrast
// CreateBooking, which fails hard on an unknown user.
func (s *BookingService) ListBookingsForUser(p auth.Principal) ([]models.Booking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	_, err := s.userStore.GetByUsername(p.Username)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}

	return s.bookingStore.GetByUser(p.Username)
}

// ListAllBookings returns every booking in the store. Administrative
// callers only.
func (s *BookingService) ListAllBookings(p auth.Principal) ([]models.Booking, error) {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.bookingStore.GetAll()
}

// CreateBooking validates the request against the user directory and the
// tour catalog, reserves capacity, freezes the total price and persists a
// PENDING booking. A client retrying a create produces a second booking;
// there is no deduplication.
func (s *BookingService) CreateBooking(p auth.Principal, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByUsername(p.Username)
	if err != nil {
		return nil, err
	}

	tour, err := s.tourStore.GetByID(req.TourID)
	if err != nil {
		return nil, err
	}

	if !tour.IsAvailable {
		return nil, apperrors.InvalidState("tour is not available for booking")
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.PartySize > tour.MaxGroupSize {
		return nil, apperrors.InvalidArgument("party_size exceeds the tour's maximum group size")
	}

	// Atomic capacity take; of two concurrent creations racing for the last
	// slots, at most one wins.
	if err := s.tourStore.ReserveSlots(tour.ID, req.PartySize); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserRef:             user.Username,
		TourRef:             tour.ID,
		BookingDate:         req.BookingDate,
		PartySize:           req.PartySize,
		SpecialRequirements: req.SpecialRequirements,
		TotalPrice:          tour.Price * float64(req.PartySize),
		Status:              models.BookingStatusPending,
	}

	if err := s.bookingStore.Save(booking); err != nil {
		// Give the slots back so a failed persist does not leak capacity.
		if relErr := s.tourStore.ReleaseSlots(tour.ID, req.PartySize); relErr != nil {
			s.logger.WithFields(logrus.Fields{
				"tour_id": tour.ID,
				"error":   relErr,
			}).Error("Failed to release slots after booking persist failure")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"user":        user.Username,
		"tour_id":     tour.ID,
		"party_size":  booking.PartySize,
		"total_price": booking.TotalPrice,
	}).Info("Booking created")

	return booking, nil
}

// GetBookingDetails fetches a booking by id for its owner or an
// administrator.
func (s *BookingService) GetBookingDetails(p auth.Principal, bookingID string) (*models.Booking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	booking, err := s.bookingStore.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if !auth.CanRead(p, booking) {
		return nil, apperrors.Forbidden("not authorized to access this booking")
	}

	return booking, nil
}

// CancelBooking marks a booking CANCELLED and releases its reserved
// capacity. Cancellation is a status change, never a deletion; cancelling an
// already-cancelled booking is a conflict, not silently absorbed.
func (s *BookingService) CancelBooking(p auth.Principal, bookingID string) error {
	if err := auth.RequireAuthenticated(p); err != nil {
		return err
	}

	booking, err := s.bookingStore.GetByID(bookingID)
	if err != nil {
		return err
	}

	if !auth.CanCancel(p, booking) {
		return apperrors.Forbidden("not authorized to cancel this booking")
	}

	if err := booking.TransitionTo(models.BookingStatusCancelled); err != nil {
		return err
	}

	if err := s.bookingStore.Save(booking); err != nil {
		return err
	}

	if err := s.tourStore.ReleaseSlots(booking.TourRef, booking.PartySize); err != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"tour_id":    booking.TourRef,
			"error":      err,
		}).Error("Failed to release slots for cancelled booking")
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user":       p.Username,
	}).Info("Booking cancelled")

	return nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED. Administrative
// callers only; availability is not re-checked at confirmation.
func (s *BookingService) ConfirmBooking(p auth.Principal, bookingID string) (*models.Booking, error) {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}

	booking, err := s.bookingStore.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.TransitionTo(models.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	if err := s.bookingStore.Save(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"admin":      p.Username,
	}).Info("Booking confirmed")

	return booking, nil
}

// GetTourBookings returns all bookings for a tour. The tour must exist.
func (s *BookingService) GetTourBookings(p auth.Principal, tourRef string) ([]models.Booking, error) {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.tourStore.GetByID(tourRef); err != nil {
		return nil, err
	}

	return s.bookingStore.GetByTour(tourRef)
}

// CalculateTourRevenue sums the frozen total price over the tour's CONFIRMED
// bookings as recorded at aggregation time. PENDING and CANCELLED bookings
// contribute nothing; a tour with no confirmed bookings yields zero.
func (s *BookingService) CalculateTourRevenue(p auth.Principal, tourRef string) (float64, error) {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return 0, err
	}

	if _, err := s.tourStore.GetByID(tourRef); err != nil {
		return 0, err
	}

	confirmed, err := s.bookingStore.GetByTourAndStatus(tourRef, models.BookingStatusConfirmed)
	if err != nil {
		return 0, err
	}

	var revenue float64
	for _, b := range confirmed {
		revenue += b.TotalPrice
	}
	return revenue, nil
}
