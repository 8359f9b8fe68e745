package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("loud"))
}

func TestFileLoggerCopiesToExtraWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lessonbridge.log")
	var mirror bytes.Buffer

	l, cleanup, err := NewFileLogger(path, log.InfoLevel, &mirror)
	require.NoError(t, err)
	l.ExportWritten("/out/lesson-8-week-2025-05-23.json", 8, 7)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export written")
	assert.Contains(t, string(data), "lesson=8")
	assert.Equal(t, string(data), mirror.String())
}

func TestDomainHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.SectionsSegmented("lesson.md", 7)
	assert.Empty(t, buf.String())

	l.SectionsDropped("lesson.md", []string{"Extra"})
	l.SlotsMissing("lesson.md", []string{"Domingo"})
	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "Extra")
	assert.Contains(t, out, "Domingo")
}
