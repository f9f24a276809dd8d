package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRecipeRouter wires a RecipeHandler onto a bare engine
func setupRecipeRouter(t *testing.T, recipeService service.IRecipeService, logger *zap.Logger) *gin.Engine {
	t.Helper()
	router := gin.New()
	RegisterRoutes(router, recipeService, logger)
	return router
}

// postReceita sends body to POST /receita and returns the recorded response
func postReceita(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/receita", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
