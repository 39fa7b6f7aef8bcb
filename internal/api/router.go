package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns the gin
// engine. This is the API composition root; handlers stay unaware of concrete
// adapters.
func NewRouter(logger *zap.Logger, routeService *services.RouteService, locator *services.ChargerLocator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	routeHandler := &handlers.RouteHandler{Service: routeService, Logger: logger}
	chargerHandler := &handlers.ChargerHandler{Locator: locator, Logger: logger}

	router.GET("/health", handlers.Health)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/routes", routeHandler.Compute)
		apiGroup.GET("/chargers/nearby", chargerHandler.Nearby)
	}

	return router
}
