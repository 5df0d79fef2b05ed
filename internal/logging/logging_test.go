package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordPattern = `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - file_sync - `

func TestNewRecordLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_sync.log")

	log, closeLog, err := New(path, false)
	require.NoError(t, err)

	log.Info("File a.txt copied to /replica")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	assert.Regexp(t, recordPattern+`INFO - File a\.txt copied to /replica$`, line)
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_sync.log")

	log, closeLog, err := New(path, false)
	require.NoError(t, err)
	log.Info("first run")
	closeLog()

	log, closeLog, err = New(path, false)
	require.NoError(t, err)
	log.Info("second run")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first run")
	assert.Contains(t, lines[1], "second run")
}

func TestNewDebugSuppressedByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_sync.log")

	log, closeLog, err := New(path, false)
	require.NoError(t, err)

	log.Debug("noise")
	log.Info("signal")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "noise")
	assert.Contains(t, string(data), "signal")
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_sync.log")

	log, closeLog, err := New(path, true)
	require.NoError(t, err)

	log.Debug("verbose detail")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	assert.Regexp(t, recordPattern+`DEBUG - verbose detail$`, line)
}

func TestNewCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "file_sync.log")

	log, closeLog, err := New(path, false)
	require.NoError(t, err)

	log.Info("hello")
	closeLog()

	_, err = os.Stat(path)
	require.NoError(t, err)
}
