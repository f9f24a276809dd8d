package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/middleware"
	"github.com/pageza/receita/backend/internal/service"
	"github.com/pageza/receita/backend/internal/types"
)

// Validation messages returned with 400 responses
const (
	msgInvalidJSON     = "invalid JSON request, expected an object"
	msgNotAList        = "ingredientes must be a list"
	msgTooFew          = "at least 3 ingredients are required"
	msgNonStringInList = "ingredientes must contain only strings"
)

// RecipeHandler serves recipe generation requests
type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipeService service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/receita", h.CreateRecipe)
}

// CreateRecipe validates the ingredient list and returns a generated recipe
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msgInvalidJSON})
		return
	}

	ingredients, msg := parseIngredients(body)
	if msg != "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), ingredients)
	if err != nil {
		h.logger.Error("recipe generation failed",
			zap.Error(err),
			zap.Int("ingredients", len(ingredients)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// parseIngredients extracts the ingredient list from a request body. A
// non-empty message means the request must be rejected with 400.
func parseIngredients(body []byte) ([]string, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, msgInvalidJSON
	}

	raw, ok := fields["ingredientes"]
	if !ok {
		return nil, msgTooFew
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, msgNotAList
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, msgNotAList
	}
	if len(items) < types.MinIngredients {
		return nil, msgTooFew
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) || json.Unmarshal(item, &s) != nil {
			return nil, msgNonStringInList
		}
		ingredients = append(ingredients, s)
	}
	return ingredients, ""
}
