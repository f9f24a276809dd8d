package service

import "errors"

var (
	// ErrUpstream marks failures talking to the LLM provider: transport
	// errors, non-2xx replies and unreadable response envelopes.
	ErrUpstream = errors.New("llm request failed")
	// ErrMalformedResponse marks a model reply that is not valid JSON.
	ErrMalformedResponse = errors.New("llm reply is not valid JSON")
	// ErrInvalidRecipe marks valid JSON that does not have the recipe shape.
	ErrInvalidRecipe = errors.New("llm reply does not match the recipe schema")
)
