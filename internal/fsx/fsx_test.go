package fsx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/b.txt", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0644))
	require.NoError(t, fs.MkdirAll("/root/sub", 0755))
	require.NoError(t, fs.MkdirAll("/root/another", 0755))

	files, folders, err := List(fs, "/root")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt"}, files)
	assert.Equal(t, []string{"another", "sub"}, folders)
}

func TestListMissingDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, _, err := List(fs, "/absent")
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, afero.WriteFile(fs, "/src/doc.txt", []byte("contents"), 0600))
	require.NoError(t, fs.Chtimes("/src/doc.txt", time.Now(), modTime))

	n, err := CopyFile(fs, "/src/doc.txt", "/dst/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	data, err := afero.ReadFile(fs, "/dst/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("contents"), data)

	info, err := fs.Stat("/dst/doc.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	exists, err := afero.Exists(fs, "/dst/doc.txt.filesync.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temp file should not survive the copy")
}

func TestCopyFileOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/doc.txt", []byte("new"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/dst/doc.txt", []byte("old and longer"), 0644))

	_, err := CopyFile(fs, "/src/doc.txt", "/dst/doc.txt")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/dst/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestCopyFileMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := CopyFile(fs, "/src/absent.txt", "/dst/absent.txt")
	require.Error(t, err)
}

func TestCopyTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("aa"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/sub/b.txt", []byte("bbb"), 0644))
	require.NoError(t, fs.MkdirAll("/src/sub/empty", 0755))

	files, bytes, err := CopyTree(fs, "/src", "/dst/src", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, files)
	assert.Equal(t, int64(5), bytes)

	data, err := afero.ReadFile(fs, "/dst/src/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("aa"), data)

	data, err = afero.ReadFile(fs, filepath.Join("/dst/src/sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bbb"), data)

	isDir, err := afero.DirExists(fs, "/dst/src/sub/empty")
	require.NoError(t, err)
	assert.True(t, isDir, "empty folders are mirrored too")
}

func TestCopyTreeSkip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/keep.txt", []byte("kk"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/skip.tmp", []byte("ssss"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/cache/blob.bin", []byte("zzz"), 0644))

	skip := func(rel string) bool {
		return rel == "skip.tmp" || rel == "cache"
	}

	files, bytes, err := CopyTree(fs, "/src", "/dst", skip)
	require.NoError(t, err)
	assert.Equal(t, 1, files)
	assert.Equal(t, int64(2), bytes, "skipped bytes are not counted")

	data, err := afero.ReadFile(fs, "/dst/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("kk"), data)

	for _, path := range []string{"/dst/skip.tmp", "/dst/cache"} {
		exists, existsErr := afero.Exists(fs, path)
		require.NoError(t, existsErr)
		assert.False(t, exists, path)
	}
}

func TestRemoveTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dst/sub/deep/c.txt", []byte("c"), 0644))

	require.NoError(t, RemoveTree(fs, "/dst/sub"))

	exists, err := afero.Exists(fs, "/dst/sub")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dst/gone.txt", []byte("x"), 0644))

	require.NoError(t, Remove(fs, "/dst/gone.txt"))

	exists, err := afero.Exists(fs, "/dst/gone.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.Error(t, Remove(fs, "/dst/gone.txt"))
}
