package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
)

// RouteHandler exposes route computation over HTTP.
type RouteHandler struct {
	Service *services.RouteService
	Logger  *zap.Logger
}

// Compute handles POST /api/routes. Error classes map onto status codes:
// validation 400, no route 404, provider misconfiguration 502, rate limiting
// 503, everything else 500.
func (h *RouteHandler) Compute(c *gin.Context) {
	var req dto.ComputeRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	bundle, err := h.Service.ComputeRoutes(c.Request.Context(), domain.RouteRequest{
		Origin:      domain.Coordinates{Lat: req.Origin.Lat, Lng: req.Origin.Lng},
		Destination: domain.Coordinates{Lat: req.Destination.Lat, Lng: req.Destination.Lng},
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		case errors.Is(err, ports.ErrNoRouteFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no route found"})
		case errors.Is(err, ports.ErrProviderUnavailable):
			h.Logger.Error("directions provider unavailable", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "routing provider unavailable"})
		case errors.Is(err, ports.ErrProviderBusy):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "routing provider busy, try again later"})
		default:
			h.Logger.Error("compute routes failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, bundle)
}
