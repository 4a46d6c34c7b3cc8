package providers //nolint:testpackage // Exercises unexported helpers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
	"github.com/ahrav/go-newsdesk/internal/llm/transport"
)

func openAIRequest(model string) *transport.Request {
	temp := 0.35
	return &transport.Request{
		Operation:    transport.OpGeneration,
		StyleID:      "express",
		Round:        1,
		Provider:     ProviderOpenAI,
		Model:        model,
		SystemPrompt: "system",
		UserPrompt:   "user",
		MaxTokens:    1200,
		Temperature:  &temp,
	}
}

func decodeBody(t *testing.T, httpReq *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("o1-preview"))
	assert.True(t, isReasoningModel("o3-mini"))
	assert.True(t, isReasoningModel("o4-mini"))
	assert.False(t, isReasoningModel("gpt-4o-mini"))
	assert.False(t, isReasoningModel("gpt-4o"))
}

func TestOpenAIAdapter_Build(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{APIKey: "sk-test"})

	httpReq, err := adapter.Build(context.Background(), openAIRequest("gpt-4o-mini"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1/chat/completions", httpReq.URL.String())
	assert.Equal(t, "Bearer sk-test", httpReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))

	body := decodeBody(t, httpReq)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, float64(1200), body["max_tokens"])
	assert.Equal(t, 0.35, body["temperature"])
	assert.NotContains(t, body, "max_completion_tokens")

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

// TestOpenAIAdapter_Build_ReasoningModel verifies o-series handling: the
// completion cap parameter is renamed and temperature is omitted even when set.
func TestOpenAIAdapter_Build_ReasoningModel(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{APIKey: "sk-test"})

	httpReq, err := adapter.Build(context.Background(), openAIRequest("o3-mini"))
	require.NoError(t, err)

	body := decodeBody(t, httpReq)
	assert.Equal(t, float64(1200), body["max_completion_tokens"])
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "temperature")
}

func TestOpenAIAdapter_Build_IdempotencyHeader(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{APIKey: "sk-test"})

	req := openAIRequest("gpt-4o-mini")
	req.IdempotencyKey = "abc123"
	httpReq, err := adapter.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", httpReq.Header.Get("Idempotency-Key"))
}

func TestOpenAIAdapter_Build_CustomEndpoint(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{Endpoint: "https://proxy.internal/v1"})

	httpReq, err := adapter.Build(context.Background(), openAIRequest("gpt-4o-mini"))
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal/v1/chat/completions", httpReq.URL.String())
}

func TestOpenAIAdapter_Parse(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{})

	raw := `{
	  "id": "chatcmpl-1",
	  "model": "gpt-4o-mini",
	  "choices": [{"index":0,"message":{"role":"assistant","content":"{\"headline\":\"h\"}"},"finish_reason":"stop"}],
	  "usage": {"prompt_tokens": 900, "completion_tokens": 300, "total_tokens": 1200}
	}`
	httpResp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(raw)),
		Header:     http.Header{"X-Request-Id": []string{"req-42"}},
	}

	resp, err := adapter.Parse(httpResp)
	require.NoError(t, err)

	assert.Equal(t, `{"headline":"h"}`, resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, "req-42", resp.ProviderRequestID)
	assert.Equal(t, int64(1200), resp.Usage.TotalTokens)
}

func TestOpenAIAdapter_Parse_Error(t *testing.T) {
	adapter := NewOpenAIAdapter(configuration.ProviderConfig{})

	raw := `{"error":{"message":"Rate limit reached","type":"rate_limit_error","code":"rate_limit_exceeded"}}`
	httpResp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Body:       io.NopCloser(strings.NewReader(raw)),
	}

	_, err := adapter.Parse(httpResp)
	require.Error(t, err)

	var provErr *llmerrors.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ProviderOpenAI, provErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, "Rate limit reached", provErr.Message)
	assert.Equal(t, llmerrors.ErrorTypeRateLimit, provErr.Type)
}

func TestClassifyErrorType(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		errorCode  string
		want       llmerrors.ErrorType
	}{
		{"rate code", 200, "rate_limit_exceeded", llmerrors.ErrorTypeRateLimit},
		{"timeout code", 200, "request_timeout", llmerrors.ErrorTypeTimeout},
		{"auth code", 200, "invalid_authentication", llmerrors.ErrorTypeAuth},
		{"quota code", 200, "insufficient_quota", llmerrors.ErrorTypeQuota},
		{"moderation code", 200, "content_filter", llmerrors.ErrorTypeContent},
		{"429 status", http.StatusTooManyRequests, "", llmerrors.ErrorTypeRateLimit},
		{"401 status", http.StatusUnauthorized, "", llmerrors.ErrorTypeAuth},
		{"403 status", http.StatusForbidden, "", llmerrors.ErrorTypeAuth},
		{"400 status", http.StatusBadRequest, "", llmerrors.ErrorTypeValidation},
		{"500 status", http.StatusInternalServerError, "", llmerrors.ErrorTypeProvider},
		{"503 status", http.StatusServiceUnavailable, "", llmerrors.ErrorTypeProvider},
		{"599 status", 599, "", llmerrors.ErrorTypeProvider},
		{"unknown", 418, "", llmerrors.ErrorTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyErrorType(tt.statusCode, tt.errorCode))
		})
	}
}

func TestNewRouter(t *testing.T) {
	router, err := NewRouter(map[string]configuration.ProviderConfig{
		ProviderOpenAI:    {APIKey: "sk-1"},
		ProviderAnthropic: {APIKey: "sk-2"},
	})
	require.NoError(t, err)

	adapter, err := router.Pick(ProviderOpenAI, "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, adapter.Name())

	_, err = router.Pick("google", "gemini")
	assert.ErrorIs(t, err, llmerrors.ErrUnknownProvider)
}

func TestNewRouter_UnknownProvider(t *testing.T) {
	_, err := NewRouter(map[string]configuration.ProviderConfig{"google": {}})
	assert.ErrorIs(t, err, llmerrors.ErrUnknownProvider)
}
