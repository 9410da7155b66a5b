package intelligence

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/llm"
	"github.com/alexanderramin/driverlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gemini-2.0-flash"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func (m *mockLLMClient) Close() error { return nil }

func shifts(n int) []domain.WorkRecord {
	records := make([]domain.WorkRecord, n)
	for i := range records {
		records[i] = testutil.NewTestRecord(fmt.Sprintf("2024-03-%02d", i+1))
	}
	return records
}

func TestCoach_NotEnoughData(t *testing.T) {
	client := &mockLLMClient{response: "unused"}
	report := NewCoachService(client).Analyze(context.Background(), shifts(2))

	assert.Equal(t, MsgNotEnoughData, report.Text)
	assert.Equal(t, SourceFallback, report.Source)
	assert.Equal(t, 0, client.calls, "the model is not consulted")
}

func TestCoach_MissingKey(t *testing.T) {
	report := NewCoachService(nil).Analyze(context.Background(), shifts(3))

	assert.Equal(t, MsgMissingKey, report.Text)
	assert.Equal(t, "missing_api_key", report.Reason)
}

func TestCoach_ErrorsBecomeFixedMessages(t *testing.T) {
	tests := []struct {
		err    error
		want   string
		reason string
	}{
		{llm.ErrTimeout, MsgUnreachable, "llm_error"},
		{llm.ErrUnavailable, MsgUnreachable, "llm_error"},
		{fmt.Errorf("%w: status 500", llm.ErrRetryExhausted), MsgUnreachable, "llm_error"},
		{llm.ErrEmptyResponse, MsgNoAnalysis, "empty_response"},
		{llm.ErrMissingCredential, MsgMissingKey, "missing_api_key"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			report := NewCoachService(&mockLLMClient{err: tt.err}).Analyze(context.Background(), shifts(4))
			require.NotNil(t, report)
			assert.Equal(t, tt.want, report.Text)
			assert.Equal(t, SourceFallback, report.Source)
			assert.Equal(t, tt.reason, report.Reason)
		})
	}
}

func TestCoach_BlankTextFallsBack(t *testing.T) {
	report := NewCoachService(&mockLLMClient{response: "   "}).Analyze(context.Background(), shifts(3))
	assert.Equal(t, MsgNoAnalysis, report.Text)
}

func TestCoach_Success(t *testing.T) {
	client := &mockLLMClient{response: "  **Bom ritmo.** Seu lucro por hora está estável.\n"}
	report := NewCoachService(client).Analyze(context.Background(), shifts(9))

	assert.Equal(t, SourceLLM, report.Source)
	assert.Equal(t, "**Bom ritmo.** Seu lucro por hora está estável.", report.Text)
	assert.Equal(t, "gemini-2.0-flash", report.Model)

	assert.Equal(t, llm.TaskCoach, client.lastReq.Task)
	prompt := client.lastReq.UserPrompt
	assert.Equal(t, DigestDays, strings.Count(prompt, "Data: "), "only the seven most recent shifts are sent")
	assert.Contains(t, prompt, "Data: 2024-03-09")
	assert.NotContains(t, prompt, "Data: 2024-03-02")
	assert.Contains(t, prompt, "máximo 2 parágrafos")
}

func TestBuildDigest(t *testing.T) {
	records := []domain.WorkRecord{
		testutil.NewTestRecord("2024-03-01"),
		testutil.NewTestRecord("2024-03-03", testutil.WithShift("22:00", "02:30"), testutil.WithEarnings(90, 45)),
		testutil.NewTestRecord("2024-03-02"),
	}

	digest := BuildDigest(records, 2)
	require.Len(t, digest, 2)
	assert.Equal(t, "2024-03-03", digest[0].Date)
	assert.Equal(t, 4.5, digest[0].HoursWorked)
	assert.Equal(t, 120.0, digest[0].DistanceDriven)
	assert.Equal(t, 90.0, digest[0].EarningsPlatformA)
	assert.InDelta(t, 60.0, digest[0].TotalExpenses, 1e-9)
	assert.InDelta(t, 75.0, digest[0].NetEarnings, 1e-9)
	assert.InDelta(t, 75.0/4.5, digest[0].HourlyRate, 1e-9)
	assert.Equal(t, "2024-03-02", digest[1].Date)
}

func TestDigestEntry_String(t *testing.T) {
	e := DigestEntry{
		Date: "2024-03-03", HoursWorked: 4.5, DistanceDriven: 120,
		EarningsPlatformA: 90, EarningsPlatformB: 45, TotalExpenses: 60,
		NetEarnings: 75, HourlyRate: 16.666,
	}
	want := strings.Join([]string{
		"Data: 2024-03-03",
		"Horas: 4.5h",
		"KM: 120.0km",
		"Faturamento Uber: R$90.00",
		"Faturamento 99: R$45.00",
		"Gastos Totais: R$60.00",
		"Lucro Líquido: R$75.00",
		"Lucro/Hora: R$16.67",
	}, "\n")
	assert.Equal(t, want, e.String())
}
