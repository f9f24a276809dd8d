package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/receita/backend/internal/metrics"
	"github.com/pageza/receita/backend/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetupRouterRecoversPanicsAsJSON(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := new(mocks.MockRecipeService)
	svc.On("CreateRecipe", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected nil")
	})
	router := SetupRouter(svc, metrics.New(), zap.New(core))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/receita", strings.NewReader(`{"ingredientes":["a","b","c"]}`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}
