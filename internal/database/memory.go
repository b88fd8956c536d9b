package database

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// MemoryBookingStore is an in-memory BookingStore. It honors the same
// contracts as the Postgres repository (id assignment on first save,
// most-recently-created-first ordering) and backs the service tests.
type MemoryBookingStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	order    []string // insertion order of ids, oldest first
}

// NewMemoryBookingStore creates an empty MemoryBookingStore
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{bookings: make(map[string]models.Booking)}
}

// Save assigns an id and timestamps on first save and overwrites the
// matching record afterwards
func (s *MemoryBookingStore) Save(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
		booking.CreatedAt = now
		booking.UpdatedAt = now
		s.order = append(s.order, booking.ID)
		s.bookings[booking.ID] = *booking
		return nil
	}

	if _, ok := s.bookings[booking.ID]; !ok {
		return apperrors.NotFound("booking", booking.ID)
	}
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking
	return nil
}

// GetByID retrieves a booking by ID
func (s *MemoryBookingStore) GetByID(id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking", id)
	}
	return &booking, nil
}

// GetAll retrieves every booking, most recently created first
func (s *MemoryBookingStore) GetAll() ([]models.Booking, error) {
	return s.filter(func(models.Booking) bool { return true }), nil
}

// GetByUser retrieves all bookings owned by a user, most recently created
// first
func (s *MemoryBookingStore) GetByUser(userRef string) ([]models.Booking, error) {
	return s.filter(func(b models.Booking) bool { return b.UserRef == userRef }), nil
}

// GetByTour retrieves all bookings for a tour
func (s *MemoryBookingStore) GetByTour(tourRef string) ([]models.Booking, error) {
	return s.filter(func(b models.Booking) bool { return b.TourRef == tourRef }), nil
}

// GetByTourAndStatus retrieves bookings for a tour filtered by status
func (s *MemoryBookingStore) GetByTourAndStatus(tourRef string, status models.BookingStatus) ([]models.Booking, error) {
	return s.filter(func(b models.Booking) bool {
		return b.TourRef == tourRef && b.Status == status
	}), nil
}

// Delete removes a booking record
func (s *MemoryBookingStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return apperrors.NotFound("booking", id)
	}
	delete(s.bookings, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryBookingStore) filter(keep func(models.Booking) bool) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Booking
	for i := len(s.order) - 1; i >= 0; i-- {
		b := s.bookings[s.order[i]]
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}

// MemoryTourStore is an in-memory TourStore. ReserveSlots performs its
// capacity check under the store mutex, matching the Postgres conditional
// UPDATE.
type MemoryTourStore struct {
	mu    sync.Mutex
	tours map[string]models.Tour
}

// NewMemoryTourStore creates an empty MemoryTourStore
func NewMemoryTourStore() *MemoryTourStore {
	return &MemoryTourStore{tours: make(map[string]models.Tour)}
}

// GetByID retrieves a tour by ID
func (s *MemoryTourStore) GetByID(id string) (*models.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tour, ok := s.tours[id]
	if !ok {
		return nil, apperrors.NotFound("tour", id)
	}
	return &tour, nil
}

// List retrieves every tour
func (s *MemoryTourStore) List() ([]models.Tour, error) {
	return s.filter(func(models.Tour) bool { return true }), nil
}

// ListAvailable retrieves tours currently open for booking
func (s *MemoryTourStore) ListAvailable() ([]models.Tour, error) {
	return s.filter(func(t models.Tour) bool { return t.IsAvailable }), nil
}

// SearchByDestination retrieves tours whose destination contains the given
// text, case-insensitively
func (s *MemoryTourStore) SearchByDestination(destination string) ([]models.Tour, error) {
	needle := strings.ToLower(destination)
	return s.filter(func(t models.Tour) bool {
		return strings.Contains(strings.ToLower(t.Destination), needle)
	}), nil
}

// ListByType retrieves tours of the given type
func (s *MemoryTourStore) ListByType(tourType models.TourType) ([]models.Tour, error) {
	return s.filter(func(t models.Tour) bool { return t.Type == tourType }), nil
}

// Save inserts the tour on first save and overwrites the matching record
// afterwards
func (s *MemoryTourStore) Save(tour *models.Tour) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if tour.ID == "" {
		tour.ID = uuid.New().String()
		tour.CreatedAt = now
	} else if _, ok := s.tours[tour.ID]; !ok {
		tour.CreatedAt = now
	}
	tour.UpdatedAt = now
	s.tours[tour.ID] = *tour
	return nil
}

// Delete removes a tour
func (s *MemoryTourStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tours[id]; !ok {
		return apperrors.NotFound("tour", id)
	}
	delete(s.tours, id)
	return nil
}

// ReserveSlots atomically takes n slots from the tour's remaining capacity
func (s *MemoryTourStore) ReserveSlots(id string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tour, ok := s.tours[id]
	if !ok {
		return apperrors.NotFound("tour", id)
	}
	if tour.AvailableSlots < n {
		return apperrors.InvalidState("tour has insufficient available slots")
	}
	tour.AvailableSlots -= n
	tour.UpdatedAt = time.Now()
	s.tours[id] = tour
	return nil
}

// ReleaseSlots returns n slots to the tour's remaining capacity
func (s *MemoryTourStore) ReleaseSlots(id string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tour, ok := s.tours[id]
	if !ok {
		return apperrors.NotFound("tour", id)
	}
	tour.AvailableSlots += n
	tour.UpdatedAt = time.Now()
	s.tours[id] = tour
	return nil
}

func (s *MemoryTourStore) filter(keep func(models.Tour) bool) []models.Tour {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Tour
	for _, t := range s.tours {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// MemoryUserStore is an in-memory UserStore
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by username
}

// NewMemoryUserStore creates an empty MemoryUserStore
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

// GetByUsername retrieves a user by username
func (s *MemoryUserStore) GetByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, apperrors.NotFound("user", username)
	}
	return &user, nil
}

// ExistsByUsername reports whether a user with the given username exists
func (s *MemoryUserStore) ExistsByUsername(username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[username]
	return ok, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (s *MemoryUserStore) ExistsByEmail(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts a new user, assigning an id and timestamps
func (s *MemoryUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.Username] = *user
	return nil
}

// RecordLogin stores the device summary and timestamp of the user's latest
// successful login
func (s *MemoryUserStore) RecordLogin(id string, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for username, u := range s.users {
		if u.ID == id {
			now := time.Now()
			u.LastLoginDevice = &device
			u.LastLoginAt = &now
			u.UpdatedAt = now
			s.users[username] = u
			return nil
		}
	}
	return apperrors.NotFound("user", id)
}
