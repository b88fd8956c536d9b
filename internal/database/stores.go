package database

import (
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// BookingStore is the persistence contract for bookings. Save assigns an id
// and timestamps on first save and overwrites exactly the matching record on
// update. Lookups that miss return a not-found error rather than a nil
// record.
type BookingStore interface {
	Save(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetAll() ([]models.Booking, error)
	GetByUser(userRef string) ([]models.Booking, error)
	GetByTour(tourRef string) ([]models.Booking, error)
	GetByTourAndStatus(tourRef string, status models.BookingStatus) ([]models.Booking, error)
	Delete(id string) error
}

// TourStore is the tour catalog contract. ReserveSlots must be atomic: of
// two concurrent reservations competing for the last slots, at most one
// wins.
type TourStore interface {
	GetByID(id string) (*models.Tour, error)
	List() ([]models.Tour, error)
	ListAvailable() ([]models.Tour, error)
	SearchByDestination(destination string) ([]models.Tour, error)
	ListByType(tourType models.TourType) ([]models.Tour, error)
	Save(tour *models.Tour) error
	Delete(id string) error
	ReserveSlots(id string, n int) error
	ReleaseSlots(id string, n int) error
}

// UserStore is the identity lookup contract.
type UserStore interface {
	GetByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Create(user *models.User) error
	RecordLogin(id string, device string) error
}
