package main

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, name := range []string{
		"CI", "ENV", "APP_DEBUG", "LOG_LEVEL", "LOG_FORMAT",
		"SERVER_HOST", "SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT",
		"LLM_PROVIDER", "LLM_API_URL", "LLM_MODEL", "LLM_TIMEOUT",
		"GEMINI_API_KEY", "GEMINI_API_KEY_FILE",
		"DEEPSEEK_API_KEY", "DEEPSEEK_API_KEY_FILE",
	} {
		t.Setenv(name, env[name])
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestRunReturnsConfigErrors(t *testing.T) {
	setEnv(t, map[string]string{"LLM_TIMEOUT": "60"})

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "LLM_TIMEOUT")
}

func TestRunReturnsServerErrors(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	setEnv(t, map[string]string{
		"GEMINI_API_KEY": "test-key",
		"LOG_LEVEL":      "error",
		"SERVER_HOST":    "127.0.0.1",
		"SERVER_PORT":    strconv.Itoa(busy.Addr().(*net.TCPAddr).Port),
	})

	err = run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}
