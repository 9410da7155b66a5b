package intelligence

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/llm"
)

// MinCoachRecords is the fewest shifts the coach will analyze.
const MinCoachRecords = 3

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// CoachReport is what the driver sees. Reason is set for fallbacks.
type CoachReport struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Reason string `json:"reason,omitempty"`
	Model  string `json:"model,omitempty"`
}

// CoachService turns recent shifts into written advice.
type CoachService interface {
	// Analyze always returns a report; model failures become fixed
	// messages.
	Analyze(ctx context.Context, records []domain.WorkRecord) *CoachReport
}

type coachService struct {
	client llm.LLMClient
}

// NewCoachService creates a CoachService. A nil client means no credential
// was configured.
func NewCoachService(client llm.LLMClient) CoachService {
	return &coachService{client: client}
}

func (s *coachService) Analyze(ctx context.Context, records []domain.WorkRecord) *CoachReport {
	if len(records) < MinCoachRecords {
		return fallback(MsgNotEnoughData, "not_enough_data")
	}
	if s.client == nil {
		return fallback(MsgMissingKey, "missing_api_key")
	}

	digest := formatDigest(BuildDigest(records, DigestDays))
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCoach,
		SystemPrompt: coachSystemPrompt,
		UserPrompt:   buildCoachPrompt(digest),
	})
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		return fallback(MsgMissingKey, "missing_api_key")
	case errors.Is(err, llm.ErrEmptyResponse):
		return fallback(MsgNoAnalysis, "empty_response")
	case err != nil:
		return fallback(MsgUnreachable, "llm_error")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return fallback(MsgNoAnalysis, "empty_response")
	}
	return &CoachReport{Text: text, Source: SourceLLM, Model: resp.Model}
}

func fallback(text, reason string) *CoachReport {
	return &CoachReport{Text: text, Source: SourceFallback, Reason: reason}
}
