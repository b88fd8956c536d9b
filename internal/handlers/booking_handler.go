package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/middleware"
	"github.com/travelgo/tour-booking-backend/internal/models"
	"github.com/travelgo/tour-booking-backend/internal/services"
)

// BookingHandler handles booking operations
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

// GetAllBookings returns every booking (admin only)
// @Summary Get all bookings
// @Tags Bookings
// @Produce json
// @Success 200 {array} models.Booking
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Security BearerAuth
// @Router /api/v1/bookings [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	bookings, err := h.bookingService.ListAllBookings(principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetMyBookings returns the caller's bookings, most recent first
// @Summary Get user's bookings
// @Tags Bookings
// @Produce json
// @Success 200 {array} models.Booking
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/bookings/my-bookings [get]
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	bookings, err := h.bookingService.ListBookingsForUser(principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CreateBooking creates a new booking with status PENDING
// @Summary Create a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking request"
// @Success 201 {object} models.Booking
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User or tour not found"
// @Failure 409 {object} map[string]interface{} "Tour not available"
// @Security BearerAuth
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookingDetails returns a booking by id for its owner or an admin
// @Summary Get booking details
// @Tags Bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden - not your booking"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{bookingId} [get]
func (h *BookingHandler) GetBookingDetails(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	bookingID := c.Param("bookingId")

	booking, err := h.bookingService.GetBookingDetails(principal, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking marks a booking CANCELLED
// @Summary Cancel booking
// @Tags Bookings
// @Param bookingId path string true "Booking ID"
// @Success 204 "Booking cancelled"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden - not your booking"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 409 {object} map[string]interface{} "Already cancelled"
// @Security BearerAuth
// @Router /api/v1/bookings/{bookingId} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	bookingID := c.Param("bookingId")

	if err := h.bookingService.CancelBooking(principal, bookingID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ConfirmBooking moves a PENDING booking to CONFIRMED (admin only)
// @Summary Confirm booking
// @Tags Bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 409 {object} map[string]interface{} "Illegal status transition"
// @Security BearerAuth
// @Router /api/v1/bookings/{bookingId}/confirm [patch]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	bookingID := c.Param("bookingId")

	booking, err := h.bookingService.ConfirmBooking(principal, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetTourBookings returns all bookings for a tour (admin only)
// @Summary Get bookings for a tour
// @Tags Bookings
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {array} models.Booking
// @Failure 404 {object} map[string]interface{} "Tour not found"
// @Security BearerAuth
// @Router /api/v1/bookings/tour/{tourId} [get]
func (h *BookingHandler) GetTourBookings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	tourID := c.Param("tourId")

	bookings, err := h.bookingService.GetTourBookings(principal, tourID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetTourRevenue returns the summed price of a tour's confirmed bookings
// (admin only)
// @Summary Get tour revenue
// @Tags Bookings
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {object} map[string]interface{} "Revenue"
// @Failure 404 {object} map[string]interface{} "Tour not found"
// @Security BearerAuth
// @Router /api/v1/bookings/tour/{tourId}/revenue [get]
func (h *BookingHandler) GetTourRevenue(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	tourID := c.Param("tourId")

	revenue, err := h.bookingService.CalculateTourRevenue(principal, tourID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour_id": tourID, "revenue": revenue})
}
