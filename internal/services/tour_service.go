package services

import (
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/auth"
	"github.com/travelgo/tour-booking-backend/internal/database"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// TourService handles tour catalog operations. Reads are public; writes are
// administrative.
type TourService struct {
	tourStore database.TourStore
	logger    *logrus.Logger
}

// NewTourService creates a new TourService
func NewTourService(tourStore database.TourStore, logger *logrus.Logger) *TourService {
	return &TourService{tourStore: tourStore, logger: logger}
}

// ListTours returns every tour in the catalog
func (s *TourService) ListTours() ([]models.Tour, error) {
	return s.tourStore.List()
}

// ListAvailableTours returns tours currently open for booking
func (s *TourService) ListAvailableTours() ([]models.Tour, error) {
	return s.tourStore.ListAvailable()
}

// SearchByDestination returns tours matching the destination text
func (s *TourService) SearchByDestination(destination string) ([]models.Tour, error) {
	return s.tourStore.SearchByDestination(destination)
}

// ListToursByType returns tours of the given type
func (s *TourService) ListToursByType(tourType models.TourType) ([]models.Tour, error) {
	return s.tourStore.ListByType(tourType)
}

// GetTour returns a tour by id
func (s *TourService) GetTour(id string) (*models.Tour, error) {
	return s.tourStore.GetByID(id)
}

// SaveTour creates a tour, or overwrites an existing one when id is set.
// Price changes do not touch existing bookings; their total price was frozen
// at creation.
func (s *TourService) SaveTour(p auth.Principal, id string, req *models.SaveTourRequest) (*models.Tour, error) {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tour := &models.Tour{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Destination:    req.Destination,
		DurationDays:   req.DurationDays,
		Price:          req.Price,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AvailableSlots: req.AvailableSlots,
		MaxGroupSize:   req.MaxGroupSize,
		ImageURL:       req.ImageURL,
		Type:           req.Type,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		tour.IsAvailable = *req.IsAvailable
	}

	if err := s.tourStore.Save(tour); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id": tour.ID,
		"name":    tour.Name,
		"admin":   p.Username,
	}).Info("Tour saved")

	return tour, nil
}

// DeleteTour removes a tour from the catalog
func (s *TourService) DeleteTour(p auth.Principal, id string) error {
	if err := auth.RequireRole(p, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.tourStore.Delete(id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id": id,
		"admin":   p.Username,
	}).Info("Tour deleted")

	return nil
}
