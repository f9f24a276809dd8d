package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/api"
	"github.com/pageza/receita/backend/internal/metrics"
	"github.com/pageza/receita/backend/internal/middleware"
	"github.com/pageza/receita/backend/internal/service"
)

// SetupRouter configures the application middleware and routes
func SetupRouter(recipeService service.IRecipeService, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Recovery sits inside Logger and metrics so recovered panics are
	// recorded as 500s
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		m.Middleware(),
		middleware.Recovery(logger),
		middleware.CORS(),
	)
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	api.RegisterRoutes(router, recipeService, logger)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router
}
