package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/services"
)

// ChargerHandler exposes point lookups against the charger store. A single
// coordinate is a degenerate route, so the locator handles box construction,
// distance refinement and ranking unchanged.
type ChargerHandler struct {
	Locator *services.ChargerLocator
	Logger  *zap.Logger
}

// Nearby handles GET /api/chargers/nearby?lat=&lng=&radius_km=.
func (h *ChargerHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat is required and must be a number"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng is required and must be a number"})
		return
	}

	at := domain.Coordinates{Lat: lat, Lng: lng}
	if !at.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	radiusKm := 5.0
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 || radiusKm > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be between 0 and 100"})
			return
		}
	}

	chargers := h.Locator.FindAlongRoute(c.Request.Context(), []domain.Coordinates{at}, radiusKm)

	c.JSON(http.StatusOK, gin.H{"chargers": chargers})
}
