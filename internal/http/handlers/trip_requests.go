package handlers

import (
	"net/http"

	"tripmarket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/trip-requests
func GetTripRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	trips, err := queryService().ListTripRequests(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_requests": trips, "count": len(trips)})
}
