package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, recipeService service.IRecipeService, logger *zap.Logger) {
	router.GET("/health", HealthCheck)

	NewRecipeHandler(recipeService, logger).RegisterRoutes(router)
}
