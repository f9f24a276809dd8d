package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/receita/backend/internal/types"
)

// Outcome labels reported to an LLMObserver
const (
	OutcomeSuccess   = "success"
	OutcomeUpstream  = "upstream_error"
	OutcomeMalformed = "malformed_reply"
	OutcomeInvalid   = "invalid_recipe"
)

// LLMObserver records the outcome of each generation call
type LLMObserver interface {
	ObserveLLMRequest(provider, outcome string, duration time.Duration)
}

// RecipeService turns ingredient lists into recipes using a Generator
type RecipeService struct {
	generator Generator
	observer  LLMObserver
	logger    *zap.Logger
	timeout   time.Duration
}

// NewRecipeService creates a new RecipeService instance. observer may be nil;
// a zero timeout leaves the call bounded only by the caller's context.
func NewRecipeService(generator Generator, observer LLMObserver, logger *zap.Logger, timeout time.Duration) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		generator: generator,
		observer:  observer,
		logger:    logger,
		timeout:   timeout,
	}
}

// CreateRecipe asks the model for a recipe built from ingredients. Errors
// wrap ErrUpstream, ErrMalformedResponse or ErrInvalidRecipe; nothing is
// retried.
func (s *RecipeService) CreateRecipe(ctx context.Context, ingredients []string) (*types.Recipe, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := BuildRecipePrompt(ingredients)

	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.observe(OutcomeUpstream, start)
		if !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return nil, err
	}

	recipe, err := ParseRecipe(text)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			s.observe(OutcomeMalformed, start)
		} else {
			s.observe(OutcomeInvalid, start)
		}
		s.logger.Debug("unusable model reply", zap.String("provider", s.generator.Provider()), zap.String("reply", text))
		return nil, err
	}

	s.observe(OutcomeSuccess, start)
	return recipe, nil
}

func (s *RecipeService) observe(outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveLLMRequest(s.generator.Provider(), outcome, time.Since(start))
	}
}

// ParseRecipe decodes a model reply into a Recipe. Every recipe field must be
// present; servings and preparation time may arrive as numbers.
func ParseRecipe(text string) (*types.Recipe, error) {
	data := []byte(text)
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidRecipe)
	}

	for _, name := range types.RecipeFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidRecipe, name)
		}
	}

	var (
		recipe   types.Recipe
		servings flexString
		prepTime flexString
	)
	targets := []struct {
		name string
		dst  any
	}{
		{"titulo", &recipe.Title},
		{"porcionamento", &servings},
		{"tempo_de_preparo", &prepTime},
		{"ingredientes", &recipe.Ingredients},
		{"modo_de_fazer", &recipe.Steps},
	}
	for _, target := range targets {
		raw := fields[target.name]
		if isNull(raw) {
			return nil, fmt.Errorf("%w: field %q is null", ErrInvalidRecipe, target.name)
		}
		if err := json.Unmarshal(raw, target.dst); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidRecipe, target.name, err)
		}
	}
	recipe.Servings = string(servings)
	recipe.PrepTime = string(prepTime)

	return &recipe, nil
}

// flexString accepts a JSON string or number
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}

	return fmt.Errorf("expected a string or a number, got %s", data)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
