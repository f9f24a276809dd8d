package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable. All problems are
// reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error

	switch cfg.LLMProvider {
	case ProviderGemini, ProviderDeepSeek:
		if cfg.LLMAPIKey == "" {
			name := strings.ToUpper(cfg.LLMProvider)
			errs = append(errs, ValidationError{
				Field:   name + "_API_KEY",
				Message: fmt.Sprintf("%s_API_KEY or %s_API_KEY_FILE must be set", name, name),
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "LLM_PROVIDER",
			Message: fmt.Sprintf("unsupported provider %q", cfg.LLMProvider),
		})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if cfg.LLMTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "LLM_TIMEOUT", Message: "must be positive"})
	}

	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "SERVER_SHUTDOWN_TIMEOUT", Message: "must be positive"})
	}

	return errors.Join(errs...)
}
