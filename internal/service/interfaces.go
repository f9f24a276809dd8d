package service

import (
	"context"

	"github.com/pageza/receita/backend/internal/types"
)

// IRecipeService defines the interface for recipe generation
type IRecipeService interface {
	CreateRecipe(ctx context.Context, ingredients []string) (*types.Recipe, error)
}

var _ IRecipeService = (*RecipeService)(nil)
