package huggingface

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

func TestHuggingFaceProvider_Chat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Bonjour !"}}]}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf_secret", srv.URL, "meta-llama/Llama-3.2-3B-Instruct", time.Second)
	reply, err := p.Generate(context.Background(), "salut", llm.WithMaxTokens(32))

	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", reply)
	assert.Equal(t, "meta-llama/Llama-3.2-3B-Instruct", got.Model)
	assert.Equal(t, 32, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestHuggingFaceProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusUnauthorized, `{"error":{"message":"bad token"}}`, "status 401"},
		{"api error", http.StatusOK, `{"error":{"message":"model loading"}}`, "model loading"},
		{"no choices", http.StatusOK, `{"choices":[]}`, llm.ErrEmptyReply.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHuggingFaceProvider("", srv.URL, "m", time.Second).Generate(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
