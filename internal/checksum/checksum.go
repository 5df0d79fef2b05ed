// Package checksum computes MD5 content digests for change detection.
// Digests are compared for equality only, so MD5's speed matters more than
// its collision resistance here.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// BlockSize is how many bytes are read per iteration while digesting, keeping
// memory flat regardless of file size.
const BlockSize = 4096

// Sum digests r to the end and returns the lowercase hex MD5 of its content.
func Sum(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, BlockSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return "", fmt.Errorf("failed to read: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// File digests the file at path on fsys.
func File(fsys afero.Fs, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func(f afero.File) {
		_ = f.Close()
	}(f)

	sum, err := Sum(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return sum, nil
}
