package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.log")
	l := NewZapLogger(path, true)

	l.Info("Monitor", "Detected upload", map[string]interface{}{"file_id": "abc"})
	l.Error("Monitor", "Metadata fetch failed", map[string]interface{}{"error": errors.New("boom")})
	l.Debug("Monitor", "below file level", nil)
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "debug lines stay on the console only")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Detected upload", entry["message"])
	assert.Equal(t, "Monitor", entry["module"])
	assert.Equal(t, map[string]interface{}{"file_id": "abc"}, entry["details"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Warn("x", "y", nil)
		_ = l.Sync()
	})
}
