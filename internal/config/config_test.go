package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RAG_TRUST_THRESHOLD", "")
	t.Setenv("SESSION_STORE", "memory")

	cfg := Load()

	assert.Equal(t, 0.45, cfg.Corpus.TrustThreshold)
	assert.Equal(t, 2200, cfg.Corpus.MaxAnswerChars)
	assert.Equal(t, 30, cfg.Session.HistoryLimit)
	assert.Equal(t, []string{".txt", ".md", ".markdown"}, cfg.Corpus.Extensions)
	assert.Equal(t, "memory", cfg.Session.Store)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RAG_TRUST_THRESHOLD", "0.6")
	t.Setenv("TOOL_TIMEOUT", "5")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("DOCS_EXTENSIONS", ".md, .rst ,")
	t.Setenv("DOCS_WATCH", "false")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 0.6, cfg.Corpus.TrustThreshold)
	assert.Equal(t, 5*time.Second, cfg.Tools.HandlerTimeout)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{".md", ".rst"}, cfg.Corpus.Extensions)
	assert.False(t, cfg.Corpus.Watch)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DURATION", time.Minute))
}
