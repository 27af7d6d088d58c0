package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewFileLogger(path)

	l.Info("ROUTER", "turn handled", map[string]interface{}{"intent": "CALC"})
	l.Error("MAILER", "send failed", map[string]interface{}{"error": errors.New("smtp down")})
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"module":"ROUTER"`)
	assert.Contains(t, lines[0], `"message":"turn handled"`)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[1], `"error_ref":"smtp down"`)
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	assert.NotPanics(t, func() {
		l.Debug("X", "nothing", nil)
		l.Warn("X", "nothing", nil)
	})
	assert.NoError(t, l.Sync())
}
