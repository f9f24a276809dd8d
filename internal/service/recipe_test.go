package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receita/backend/internal/mocks"
)

var testIngredients = []string{"ovo", "farinha", "leite"}

func TestRecipeService_CreateRecipe(t *testing.T) {
	gen := new(mocks.MockGenerator)
	obs := new(mocks.MockObserver)
	gen.On("Generate", mock.Anything, BuildRecipePrompt(testIngredients)).Return(recipeJSON, nil)
	obs.On("ObserveLLMRequest", "mock", OutcomeSuccess, mock.AnythingOfType("time.Duration")).Return()

	svc := NewRecipeService(gen, obs, nil, time.Second)
	recipe, err := svc.CreateRecipe(context.Background(), testIngredients)

	require.NoError(t, err)
	assert.Equal(t, "Panqueca", recipe.Title)
	assert.Equal(t, "4 porções", recipe.Servings)
	assert.Equal(t, "20 minutos", recipe.PrepTime)
	assert.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, []string{"Bata tudo", "Frite em frigideira untada"}, recipe.Steps)
	gen.AssertExpectations(t)
	obs.AssertExpectations(t)
}

func TestRecipeService_CreateRecipeAppliesTimeout(t *testing.T) {
	gen := new(mocks.MockGenerator)
	gen.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Second
	}), mock.Anything).Return(recipeJSON, nil)

	svc := NewRecipeService(gen, nil, nil, time.Second)
	_, err := svc.CreateRecipe(context.Background(), testIngredients)

	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestRecipeService_CreateRecipeUpstreamError(t *testing.T) {
	gen := new(mocks.MockGenerator)
	obs := new(mocks.MockObserver)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
	obs.On("ObserveLLMRequest", "mock", OutcomeUpstream, mock.Anything).Return()

	svc := NewRecipeService(gen, obs, nil, 0)
	recipe, err := svc.CreateRecipe(context.Background(), testIngredients)

	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "connection refused")
	obs.AssertExpectations(t)
}

func TestRecipeService_CreateRecipeMalformedReply(t *testing.T) {
	gen := new(mocks.MockGenerator)
	obs := new(mocks.MockObserver)
	gen.On("Generate", mock.Anything, mock.Anything).Return("Aqui está sua receita: {", nil)
	obs.On("ObserveLLMRequest", "mock", OutcomeMalformed, mock.Anything).Return()

	svc := NewRecipeService(gen, obs, nil, 0)
	_, err := svc.CreateRecipe(context.Background(), testIngredients)

	assert.ErrorIs(t, err, ErrMalformedResponse)
	obs.AssertExpectations(t)
}

func TestRecipeService_CreateRecipeInvalidShape(t *testing.T) {
	gen := new(mocks.MockGenerator)
	obs := new(mocks.MockObserver)
	gen.On("Generate", mock.Anything, mock.Anything).Return(`{"titulo":"Bolo"}`, nil)
	obs.On("ObserveLLMRequest", "mock", OutcomeInvalid, mock.Anything).Return()

	svc := NewRecipeService(gen, obs, nil, 0)
	_, err := svc.CreateRecipe(context.Background(), testIngredients)

	assert.ErrorIs(t, err, ErrInvalidRecipe)
	obs.AssertExpectations(t)
}

func TestParseRecipe(t *testing.T) {
	t.Run("numeric servings and time", func(t *testing.T) {
		recipe, err := ParseRecipe(`{"titulo":"Omelete","porcionamento":2,"tempo_de_preparo":10,"ingredientes":[],"modo_de_fazer":["Bata","Frite"]}`)

		require.NoError(t, err)
		assert.Equal(t, "2", recipe.Servings)
		assert.Equal(t, "10", recipe.PrepTime)
		assert.Empty(t, recipe.Ingredients)
	})

	t.Run("extra keys are dropped", func(t *testing.T) {
		recipe, err := ParseRecipe(`{"titulo":"Omelete","porcionamento":"2","tempo_de_preparo":"10 min","ingredientes":["ovo"],"modo_de_fazer":["Frite"],"dica":"sal"}`)

		require.NoError(t, err)
		assert.Equal(t, "Omelete", recipe.Title)
	})

	invalid := map[string]string{
		"array reply":      `[` + recipeJSON + `]`,
		"null reply":       `null`,
		"missing steps":    `{"titulo":"a","porcionamento":"1","tempo_de_preparo":"1","ingredientes":[]}`,
		"null title":       `{"titulo":null,"porcionamento":"1","tempo_de_preparo":"1","ingredientes":[],"modo_de_fazer":[]}`,
		"numeric title":    `{"titulo":1,"porcionamento":"1","tempo_de_preparo":"1","ingredientes":[],"modo_de_fazer":[]}`,
		"string steps":     `{"titulo":"a","porcionamento":"1","tempo_de_preparo":"1","ingredientes":[],"modo_de_fazer":"mexa"}`,
		"non string item":  `{"titulo":"a","porcionamento":"1","tempo_de_preparo":"1","ingredientes":[1],"modo_de_fazer":[]}`,
		"boolean servings": `{"titulo":"a","porcionamento":true,"tempo_de_preparo":"1","ingredientes":[],"modo_de_fazer":[]}`,
	}
	for name, reply := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRecipe(reply)
			assert.ErrorIs(t, err, ErrInvalidRecipe)
		})
	}

	for name, reply := range map[string]string{"empty": "", "truncated": `{"titulo":`, "prose": "sem receita"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRecipe(reply)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}
