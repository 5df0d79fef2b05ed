// Package ignore decides which entries the syncer skips entirely. Ignored
// entries are treated as nonexistent on both sides, so they are neither copied
// nor removed.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type Matcher struct {
	patterns []string
}

// New validates every pattern; a malformed one fails here rather than at
// match time.
func New(patterns []string) (*Matcher, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("bad ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	return &Matcher{patterns: patterns}, nil
}

// Match reports whether the entry at rel (slash-insensitive, relative to the
// sync root) is ignored. A pattern matches either the whole relative path or
// any single segment of it, so "*.tmp" skips temp files at any depth and
// "build/**" skips a subtree. A nil Matcher matches nothing.
func (m *Matcher) Match(rel string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")

	for _, pattern := range m.patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}

		for _, part := range parts {
			if doublestar.MatchUnvalidated(pattern, part) {
				return true
			}
		}
	}

	return false
}
