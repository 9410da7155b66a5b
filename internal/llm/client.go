package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the text response. A blank
	// answer is reported as ErrEmptyResponse.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model backend is reachable.
	Available(ctx context.Context) bool

	Close() error
}

// NewClient builds the client for cfg.Provider. A hosted provider without
// an API key yields ErrMissingCredential.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, ErrMissingCredential
		}
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want %s or %s)", cfg.Provider, ProviderGemini, ProviderOllama)
	}
}

// generationParams resolves temperature and token limits for req.
func generationParams(cfg LLMConfig, req GenerateRequest) (float64, int) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

type attemptFunc func(ctx context.Context) (text, model string, err error)

// generateWithRetry runs attempt up to 1+MaxRetries times under the task
// timeout and reports the outcome to observer. Cancellation stops retrying.
func generateWithRetry(ctx context.Context, cfg LLMConfig, provider string, task TaskType, observer Observer, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TaskTimeout(task))*time.Millisecond)
	defer cancel()

	event := LLMCallEvent{Task: task, Provider: provider, Model: cfg.ModelName()}

	var lastErr error
	for event.Attempts < 1+cfg.MaxRetries {
		event.Attempts++
		text, model, err := attempt(ctx)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			event.LatencyMs = time.Since(start).Milliseconds()
			event.Success = true
			if model != "" {
				event.Model = model
			}
			observer.OnCallComplete(event)
			return &GenerateResponse{Text: text, Model: event.Model, LatencyMs: event.LatencyMs}, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	var final error
	switch {
	case ctx.Err() != nil:
		final = ErrTimeout
	case isConnectionError(lastErr):
		final = ErrUnavailable
	case errors.Is(lastErr, ErrEmptyResponse):
		final = ErrEmptyResponse
	default:
		final = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	event.LatencyMs = time.Since(start).Milliseconds()
	event.ErrorCode = errorCode(final)
	observer.OnCallComplete(event)
	return nil, final
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return err != nil && errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
