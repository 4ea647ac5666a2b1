package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, status int, body string, gotPrompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(raw, &req); err == nil && gotPrompt != nil && len(req.Messages) > 0 && len(req.Messages[0].Content) > 0 {
			*gotPrompt = req.Messages[0].Content[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	var prompt string
	srv := anthropicServer(t, http.StatusOK, `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-3-5-haiku-latest",
		"content": [{"type": "text", "text": "Use verbs.\n{\"edits\": []}"}],
		"stop_reason": "end_turn", "usage": {"input_tokens": 10, "output_tokens": 5}
	}`, &prompt)

	g, err := NewAnthropicGenerator("test-key", srv.URL, GenerationConfig{Temperature: 0.7, MaxOutputTokens: 100})
	require.NoError(t, err)
	out, err := g.Generate(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Use verbs.\n{\"edits\": []}", out)
	assert.Equal(t, "hello there", prompt)
}

func TestAnthropicGenerator_ClassifiesErrors(t *testing.T) {
	errBody := `{"type": "error", "error": {"type": "api_error", "message": "boom"}}`

	srv := anthropicServer(t, http.StatusInternalServerError, errBody, nil)
	g, err := NewAnthropicGenerator("test-key", srv.URL, GenerationConfig{})
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, IsTransient(err))

	srv = anthropicServer(t, http.StatusBadRequest, errBody, nil)
	g, err = NewAnthropicGenerator("test-key", srv.URL, GenerationConfig{})
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestNewGenerators_RequireKeys(t *testing.T) {
	_, err := NewAnthropicGenerator("", "", GenerationConfig{})
	require.Error(t, err)
	_, err = NewGeminiGenerator(context.Background(), "", GenerationConfig{})
	require.Error(t, err)
}
