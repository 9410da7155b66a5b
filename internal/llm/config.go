package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskCoach TaskType = "coach"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

type LLMConfig struct {
	Provider   string
	APIKey     string
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig uses Gemini with no key, which leaves the coach on its
// offline fallback until a key is supplied.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderGemini,
		TimeoutMs:  20000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskCoach: {Temperature: 0.4, MaxTokens: 1024},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values. GEMINI_API_KEY wins over API_KEY.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("DRIVERLOG_LLM_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}
	if v := os.Getenv("DRIVERLOG_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DRIVERLOG_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DRIVERLOG_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DRIVERLOG_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DRIVERLOG_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	return cfg
}

// ModelName returns the configured model or the provider's default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOllama {
		return "llama3.2"
	}
	return "gemini-2.0-flash"
}

// BaseURL returns the configured endpoint, defaulting to a local Ollama
// server for the ollama provider. Empty means the provider's own default.
func (c LLMConfig) BaseURL() string {
	if c.Endpoint == "" && c.Provider == ProviderOllama {
		return "http://localhost:11434"
	}
	return strings.TrimRight(c.Endpoint, "/")
}

// TaskTimeout returns the effective timeout for a given task type.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
