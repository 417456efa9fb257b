package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielss-dev/critica/internal/config"
	"github.com/danielss-dev/critica/internal/domain/analysis"
)

// newStreamServer serves a chat completion stream delivering the given chunks.
// The decoded request is stored for inspection.
func newStreamServer(t *testing.T, chunks []string, lastRequest *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(lastRequest))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			payload, err := json.Marshal(map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion.chunk",
				"model":   "gpt-4o",
				"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": chunk}}},
			})
			require.NoError(t, err)
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func newTestClient(serverURL string, model string) *Client {
	return NewClient(config.Config{
		APIKey:              "sk-test",
		Model:               model,
		BaseURL:             serverURL,
		MaxCompletionTokens: 4000,
	})
}

func TestCompleteAccumulatesStream(t *testing.T) {
	var req map[string]any
	srv := newStreamServer(t, []string{"Hello", ", ", "world"}, &req)
	defer srv.Close()

	client := newTestClient(srv.URL, "gpt-4o")
	var echoed strings.Builder
	client.EchoTo = &echoed

	out, err := client.Complete(context.Background(), "say hello", false)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", out)
	// No echo when stdout is not a terminal.
	assert.Empty(t, echoed.String())
}

func TestCompleteEchoesChunks(t *testing.T) {
	var req map[string]any
	srv := newStreamServer(t, []string{"one", "two"}, &req)
	defer srv.Close()

	client := newTestClient(srv.URL, "gpt-4o")
	var echoed strings.Builder
	client.EchoTo = &echoed

	out, err := client.Complete(context.Background(), "count", true)
	require.NoError(t, err)
	assert.Equal(t, "onetwo", out)
	assert.Equal(t, "onetwo\n", echoed.String())
}

func TestCompleteTokenLimitFieldByModel(t *testing.T) {
	tests := []struct {
		model string
		field string
	}{
		{"gpt-4o", "max_tokens"},
		{"gpt-5-nano", "max_completion_tokens"},
		{"o3-mini", "max_completion_tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			var req map[string]any
			srv := newStreamServer(t, []string{"ok"}, &req)
			defer srv.Close()

			client := newTestClient(srv.URL, tt.model)
			client.EchoTo = &strings.Builder{}

			_, err := client.Complete(context.Background(), "hi", false)
			require.NoError(t, err)
			assert.EqualValues(t, 4000, req[tt.field])
		})
	}
}

func TestCompleteSendsPromptAsUserMessage(t *testing.T) {
	var req map[string]any
	srv := newStreamServer(t, []string{"ok"}, &req)
	defer srv.Close()

	client := newTestClient(srv.URL, "gpt-4o")
	client.EchoTo = &strings.Builder{}

	_, err := client.Complete(context.Background(), "analyze this diff", false)
	require.NoError(t, err)

	messages, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "analyze this diff", msg["content"])
	assert.Equal(t, true, req["stream"])
}

func TestCompleteQuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota"}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "gpt-4o")
	client.EchoTo = &strings.Builder{}

	_, err := client.Complete(context.Background(), "hi", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, analysis.ErrQuotaExceeded)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "upstream unavailable"}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "gpt-4o")

	_, err := client.Complete(context.Background(), "hi", false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, analysis.ErrQuotaExceeded)
}
