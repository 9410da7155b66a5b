package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by Google's Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if base := cfg.BaseURL(); base != "" {
		opts = append(opts, option.WithEndpoint(base))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

// model returns a fresh model handle per call so generation settings never
// leak between concurrent requests.
func (c *geminiClient) model(req GenerateRequest) *genai.GenerativeModel {
	temp, maxTok := generationParams(c.cfg, req)
	m := c.client.GenerativeModel(c.cfg.ModelName())
	m.SetTemperature(float32(temp))
	if maxTok > 0 {
		m.SetMaxOutputTokens(int32(maxTok))
	}
	if req.SystemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	return m
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	m := c.model(req)
	return generateWithRetry(ctx, c.cfg, ProviderGemini, req.Task, c.observer, func(ctx context.Context) (string, string, error) {
		resp, err := m.GenerateContent(ctx, genai.Text(req.UserPrompt))
		if err != nil {
			return "", "", fmt.Errorf("gemini: %w", err)
		}
		return responseText(resp), "", nil
	})
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.GenerativeModel(c.cfg.ModelName()).Info(ctx)
	return err == nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}
