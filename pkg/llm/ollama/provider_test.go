package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-tutor-be/pkg/llm"
)

func TestOllamaProvider_Chat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.2:3b","message":{"role":"assistant","content":"  Salut !  "},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3.2:3b", time.Second)
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "Sois bref."},
		{Role: "user", Content: "bonjour"},
	}, llm.WithTemperature(0.5), llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "Salut !", reply)
	assert.Equal(t, "llama3.2:3b", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "bonjour", got.Messages[1].Content)
	require.NotNil(t, got.Options)
	assert.Equal(t, 0.5, got.Options.Temperature)
	assert.Equal(t, 64, got.Options.NumPredict)
}

func TestOllamaProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"http status", http.StatusNotFound, `{"error":"model not found"}`, func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "status 404")
		}},
		{"error field", http.StatusOK, `{"error":"out of memory"}`, func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "out of memory")
		}},
		{"empty content", http.StatusOK, `{"message":{"role":"assistant","content":"  "},"done":true}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, llm.ErrEmptyReply)
		}},
		{"bad json", http.StatusOK, `not json`, func(t *testing.T, err error) {
			assert.Contains(t, err.Error(), "unmarshal response")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "", time.Second).Generate(context.Background(), "bonjour")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
