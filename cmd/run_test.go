package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireInstance(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state", "filesync.db")

	lock, err := acquireInstance(dbPath)
	require.NoError(t, err)

	defer func(l *flock.Flock) {
		_ = l.Unlock()
	}(lock)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "the db is opened once the lock is held")
}

func TestAcquireInstanceRefusesSecondInstance(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "filesync.db")

	held := flock.New(dbPath + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	defer func(l *flock.Flock) {
		_ = l.Unlock()
	}(held)

	_, err = acquireInstance(dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another instance is already running")

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "a losing instance must not create the db")
}
