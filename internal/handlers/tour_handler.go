package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/middleware"
	"github.com/travelgo/tour-booking-backend/internal/models"
	"github.com/travelgo/tour-booking-backend/internal/services"
)

// TourHandler handles tour catalog operations
type TourHandler struct {
	tourService *services.TourService
	logger      *logrus.Logger
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService *services.TourService, logger *logrus.Logger) *TourHandler {
	return &TourHandler{tourService: tourService, logger: logger}
}

// ListTours returns the full catalog, or filters by type when the "type"
// query parameter is present
func (h *TourHandler) ListTours(c *gin.Context) {
	if tourType := c.Query("type"); tourType != "" {
		tours, err := h.tourService.ListToursByType(models.TourType(tourType))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tours)
		return
	}

	tours, err := h.tourService.ListTours()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// ListAvailableTours returns tours open for booking
func (h *TourHandler) ListAvailableTours(c *gin.Context) {
	tours, err := h.tourService.ListAvailableTours()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// SearchTours returns tours matching the destination query
func (h *TourHandler) SearchTours(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": "destination query parameter is required"})
		return
	}

	tours, err := h.tourService.SearchByDestination(destination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// GetTour returns a tour by id
func (h *TourHandler) GetTour(c *gin.Context) {
	tour, err := h.tourService.GetTour(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}

// CreateTour adds a tour to the catalog (admin only)
func (h *TourHandler) CreateTour(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.SaveTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": "Invalid request body", "details": err.Error()})
		return
	}

	tour, err := h.tourService.SaveTour(principal, "", &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tour)
}

// UpdateTour overwrites an existing tour (admin only)
func (h *TourHandler) UpdateTour(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.SaveTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": "Invalid request body", "details": err.Error()})
		return
	}

	tour, err := h.tourService.SaveTour(principal, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}

// DeleteTour removes a tour from the catalog (admin only)
func (h *TourHandler) DeleteTour(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	if err := h.tourService.DeleteTour(principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
