package llm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearLLMEnv(t *testing.T) {
	for _, k := range []string{
		"DRIVERLOG_LLM_PROVIDER", "GEMINI_API_KEY", "API_KEY", "DRIVERLOG_LLM_MODEL",
		"DRIVERLOG_LLM_ENDPOINT", "DRIVERLOG_LLM_TIMEOUT_MS", "DRIVERLOG_LLM_MAX_RETRIES",
		"DRIVERLOG_LLM_LOG_CALLS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearLLMEnv(t)

	cfg := LoadConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.ModelName())
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskCoach))
	assert.Equal(t, "", cfg.BaseURL())
}

func TestLoadConfig_APIKeyPrecedence(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("API_KEY", "fallback")

	assert.Equal(t, "fallback", LoadConfig().APIKey)

	t.Setenv("GEMINI_API_KEY", "primary")
	assert.Equal(t, "primary", LoadConfig().APIKey)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("DRIVERLOG_LLM_PROVIDER", "Ollama")
	t.Setenv("DRIVERLOG_LLM_TIMEOUT_MS", "9000")
	t.Setenv("DRIVERLOG_LLM_MAX_RETRIES", "2")
	t.Setenv("DRIVERLOG_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "llama3.2", cfg.ModelName())
	assert.Equal(t, "http://localhost:11434", cfg.BaseURL())
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskCoach))
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_InvalidNumbersIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("DRIVERLOG_LLM_TIMEOUT_MS", "soon")
	t.Setenv("DRIVERLOG_LLM_MAX_RETRIES", "-1")

	cfg := LoadConfig()
	assert.Equal(t, 20000, cfg.TimeoutMs)
	assert.Equal(t, 0, cfg.MaxRetries)
}

func TestBaseURL_TrimsSlash(t *testing.T) {
	cfg := LLMConfig{Provider: ProviderOllama, Endpoint: "http://gpu-box:11434/"}
	assert.Equal(t, "http://gpu-box:11434", cfg.BaseURL())
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	NewLogObserver(&buf).OnCallComplete(LLMCallEvent{
		Task: TaskCoach, Provider: ProviderGemini, Model: "gemini-2.0-flash",
		LatencyMs: 812, Attempts: 1, ErrorCode: "TIMEOUT",
	})
	out := buf.String()
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "component=llm")
	assert.Contains(t, out, "status=err:TIMEOUT")
	assert.Contains(t, out, "latency_ms=812")
}
