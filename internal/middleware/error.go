package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/types"
)

// Recovery converts a panic anywhere in the handler chain into a logged
// 500 with a JSON ErrorResponse
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("request_id", GetRequestID(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

// NotFound answers unknown routes with a JSON ErrorResponse
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "route not found"})
}

// MethodNotAllowed answers known routes hit with the wrong method
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, types.ErrorResponse{Error: "method not allowed"})
}
