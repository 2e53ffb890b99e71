package handlers

import (
	"net/http"

	"tripmarket/internal/http/middleware"
	"tripmarket/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/saved-offers?status=active&sort_by=price&order=asc
func GetSavedOffers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	opts := services.SavedViewOptions{
		Status: c.Query("status"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	views, err := savedService(c).LoadSavedOffers(c.Request.Context(), userID, opts)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_offers": views, "count": len(views)})
}
