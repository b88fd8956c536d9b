package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
)

// respondError translates a core failure into the transport response. Each
// failure kind maps to a distinct status so clients can tell "not found"
// from "forbidden".
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": err.Error()})
	case apperrors.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": err.Error()})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case apperrors.KindInvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": err.Error()})
	case apperrors.KindInvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Internal server error"})
	}
}
