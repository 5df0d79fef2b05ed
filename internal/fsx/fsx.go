// Package fsx wraps the filesystem operations the syncer applies. Everything
// goes through an afero.Fs so tests can run against an in-memory tree.
package fsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// List reads one directory level and returns its file and folder names
// separately, each sorted.
func List(fsys afero.Fs, dir string) (files, folders []string, err error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files = make([]string, 0, len(infos))
	folders = make([]string, 0, len(infos))

	for _, info := range infos {
		if info.IsDir() {
			folders = append(folders, info.Name())
		} else {
			files = append(files, info.Name())
		}
	}

	return files, folders, nil
}

// CopyFile copies src to dst through a temp file and rename, so a crash never
// leaves a half-written dst. The destination keeps the source's mode and
// modification time. Returns the number of bytes copied.
func CopyFile(fsys afero.Fs, src, dst string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", src, err)
	}

	defer func(in afero.File) {
		_ = in.Close()
	}(in)

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("failed to create parent dir: %w", err)
	}

	tmp := dst + ".filesync.tmp"
	out, err := fsys.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		_ = fsys.Remove(tmp)
		return 0, fmt.Errorf("failed to write: %w", err)
	}

	if err := out.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fsys.Rename(tmp, dst); err != nil {
		_ = fsys.Remove(tmp)
		return 0, fmt.Errorf("failed to rename: %w", err)
	}

	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}

	// Set the modification time as the last step so that it doesn't get
	// reset by other file operations.
	if err := fsys.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return n, fmt.Errorf("failed to set modtime on %s: %w", dst, err)
	}

	return n, nil
}

// CopyTree mirrors the whole subtree rooted at src to dst, creating dst
// itself. Entries for which skip returns true are left out, and a skipped
// folder is not descended into; skip sees paths relative to src, and nil
// copies everything. Returns how many files were copied and their total size.
func CopyTree(fsys afero.Fs, src, dst string, skip func(rel string) bool) (files int, bytes int64, err error) {
	walkErr := afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if rel != "." && skip != nil && skip(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return fsys.MkdirAll(target, info.Mode().Perm())
		}

		n, err := CopyFile(fsys, path, target)
		if err != nil {
			return err
		}

		files++
		bytes += n

		return nil
	})

	if walkErr != nil {
		return files, bytes, fmt.Errorf("failed to copy tree %s: %w", src, walkErr)
	}

	return files, bytes, nil
}

// RemoveTree deletes the subtree rooted at path.
func RemoveTree(fsys afero.Fs, path string) error {
	if err := fsys.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove tree %s: %w", path, err)
	}

	return nil
}

// Remove deletes a single file.
func Remove(fsys afero.Fs, path string) error {
	if err := fsys.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}
