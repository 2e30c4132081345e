package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var request struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Sharp work, detective.  "}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", "gpt-4o-mini", server.URL+"/v1")
	text, err := client.Complete(context.Background(), "be brief", "score 92%")

	require.NoError(t, err)
	assert.Equal(t, "Sharp work, detective.", text)
	assert.Equal(t, "gpt-4o-mini", request.Model)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, "system", request.Messages[0].Role)
	assert.Equal(t, "be brief", request.Messages[0].Content)
	assert.Equal(t, "user", request.Messages[1].Role)
}

func TestOpenAIClient_Errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "slow down", "type": "rate_limit"}}`))
		}))
		defer server.Close()

		_, err := NewOpenAIClient("k", "m", server.URL+"/v1").Complete(context.Background(), "a", "b")
		assert.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "x", "choices": []}`))
		}))
		defer server.Close()

		_, err := NewOpenAIClient("k", "m", server.URL+"/v1").Complete(context.Background(), "a", "b")
		assert.ErrorContains(t, err, "no choices")
	})
}
