package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLogLine(t *testing.T) {
	line := `{"level":"INFO","ts":"19.10.2026 - 12:34:56.123456789+03:00","caller":"x.go:1","msg":"Снимок состояния обновлен","round":"1000","logs":3}`
	assert.Equal(t, "[12:34:56] [INFO] Снимок состояния обновлен (logs: 3) (round: 1000)", formatLogLine(line))

	assert.Equal(t, "plain text", formatLogLine("plain text"))
}

func TestReadLogTail(t *testing.T) {
	lines, err := readLogTail(filepath.Join(t.TempDir(), "missing.log"), 10)
	require.NoError(t, err)
	assert.Nil(t, lines)

	path := filepath.Join(t.TempDir(), "app.json.log")
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, `{"level":"DEBUG","msg":"m%d"}`+"\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	lines, err = readLogTail(path, 5)
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, "[] [DEBUG] m15", lines[0])
	assert.Equal(t, "[] [DEBUG] m19", lines[4])
}
