package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported LLM providers
const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost      string
	ServerPort      string
	ShutdownTimeout time.Duration
	Debug           bool

	// Logging configuration
	LogLevel  string
	LogFormat string

	// LLM configuration
	LLMProvider string
	LLMAPIKey   string
	LLMAPIURL   string
	LLMModel    string
	LLMTimeout  time.Duration
}

// Addr returns the address the HTTP listener binds to
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig reads an optional .env file, then builds a Config from the
// process environment and any mounted secrets
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	env := GetEnvironment()
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v, env)

	shutdownTimeout, shutdownErr := durationSetting(v, "server_shutdown_timeout")
	llmTimeout, llmErr := durationSetting(v, "llm_timeout")
	if err := errors.Join(shutdownErr, llmErr); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := &Config{
		ServerHost:      v.GetString("server_host"),
		ServerPort:      v.GetString("server_port"),
		ShutdownTimeout: shutdownTimeout,
		Debug:           v.GetBool("app_debug"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		LLMProvider:     strings.ToLower(strings.TrimSpace(v.GetString("llm_provider"))),
		LLMAPIURL:       v.GetString("llm_api_url"),
		LLMModel:        v.GetString("llm_model"),
		LLMTimeout:      llmTimeout,
	}

	apiKey, err := loadAPIKey(v, cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	cfg.LLMAPIKey = apiKey

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "5000")
	v.SetDefault("server_shutdown_timeout", "5s")
	v.SetDefault("app_debug", env == Development)
	v.SetDefault("log_level", "info")
	if env == Development {
		v.SetDefault("log_format", "console")
	} else {
		v.SetDefault("log_format", "json")
	}
	v.SetDefault("llm_provider", ProviderGemini)
	v.SetDefault("llm_timeout", "60s")
}

// durationSetting parses key as a Go duration. Bare numbers are rejected
// instead of being read as nanoseconds.
func durationSetting(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{
			Field:   strings.ToUpper(key),
			Message: fmt.Sprintf("invalid duration %q, expected a value with a unit such as 30s or 2m", raw),
		}
	}
	return d, nil
}

// loadAPIKey resolves the provider credential from <PROVIDER>_API_KEY, then
// the file named by <PROVIDER>_API_KEY_FILE, then a mounted secret
func loadAPIKey(v *viper.Viper, provider string) (string, error) {
	prefix := strings.ToUpper(provider)
	if key := strings.TrimSpace(v.GetString(prefix + "_API_KEY")); key != "" {
		return key, nil
	}

	if keyFile := v.GetString(prefix + "_API_KEY_FILE"); keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file %s is empty", keyFile)
		}
		return key, nil
	}

	return readSecret(strings.ToLower(prefix) + "_api_key"), nil
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
