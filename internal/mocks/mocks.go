// Package mocks holds testify mocks for the service layer.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of service.Generator
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Provider mocks the Provider method
func (m *MockGenerator) Provider() string {
	return "mock"
}

// MockObserver is a mock implementation of service.LLMObserver
type MockObserver struct {
	mock.Mock
}

// ObserveLLMRequest mocks the ObserveLLMRequest method
func (m *MockObserver) ObserveLLMRequest(provider, outcome string, duration time.Duration) {
	m.Called(provider, outcome, duration)
}
