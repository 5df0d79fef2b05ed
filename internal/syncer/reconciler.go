package syncer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"filesync/internal/checksum"
	"filesync/internal/diff"
	"filesync/internal/fsx"
	"filesync/internal/ignore"
	"filesync/internal/model"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrLocationMissing marks a sync root that was absent when the reconciler
// was built.
var ErrLocationMissing = errors.New("location does not exist")

// Reconciler mirrors one directory tree onto another. It holds no state
// between passes; every pass recomputes everything from the filesystem, so a
// crashed or interrupted pass is repaired by the next one.
type Reconciler struct {
	fsys    afero.Fs
	source  string
	replica string
	log     *zap.Logger
	ignore  *ignore.Matcher
}

type ReconcilerOption func(*Reconciler)

// WithIgnore skips entries matching the given patterns on both sides, as if
// they did not exist.
func WithIgnore(m *ignore.Matcher) ReconcilerOption {
	return func(r *Reconciler) {
		r.ignore = m
	}
}

// NewReconciler validates that both roots exist before anything can run
// against them.
func NewReconciler(fsys afero.Fs, source, replica string, log *zap.Logger, opts ...ReconcilerOption) (*Reconciler, error) {
	for _, root := range []struct {
		kind string
		path string
	}{
		{"source", source},
		{"replica", replica},
	} {
		ok, err := afero.DirExists(fsys, root.path)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", root.kind, err)
		}

		if !ok {
			return nil, fmt.Errorf("%s %w: %s", root.kind, ErrLocationMissing, root.path)
		}
	}

	r := &Reconciler{
		fsys:    fsys,
		source:  source,
		replica: replica,
		log:     log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Sync walks the source tree top-down and applies the copies and removals
// that make the replica match it. Every applied action is logged and
// returned; unchanged entries produce neither.
func (r *Reconciler) Sync() ([]model.Action, error) {
	actions := make([]model.Action, 0)
	err := r.syncDir("", &actions)

	return actions, err
}

func (r *Reconciler) syncDir(rel string, actions *[]model.Action) error {
	srcDir := filepath.Join(r.source, rel)
	dstDir := filepath.Join(r.replica, rel)

	ok, err := afero.DirExists(r.fsys, dstDir)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dstDir, err)
	}

	// A missing replica directory is mirrored with one whole-subtree copy;
	// its children need no individual diffing this pass.
	if !ok {
		return r.copyFolder(rel, actions)
	}

	srcFiles, srcFolders, err := fsx.List(r.fsys, srcDir)
	if err != nil {
		return err
	}

	dstFiles, dstFolders, err := fsx.List(r.fsys, dstDir)
	if err != nil {
		return err
	}

	folders := diff.Names(r.kept(rel, srcFolders), r.kept(rel, dstFolders))
	files := diff.Names(r.kept(rel, srcFiles), r.kept(rel, dstFiles))

	// Stale entries go first so a name whose kind changed between the trees
	// never collides with its replacement.
	for _, name := range folders.OnlyReplica {
		if err := r.removeFolder(filepath.Join(rel, name), actions); err != nil {
			return err
		}
	}

	for _, name := range files.OnlyReplica {
		if err := r.removeFile(filepath.Join(rel, name), actions); err != nil {
			return err
		}
	}

	for _, name := range folders.OnlySource {
		if err := r.copyFolder(filepath.Join(rel, name), actions); err != nil {
			return err
		}
	}

	for _, name := range files.OnlySource {
		if err := r.copyFile(filepath.Join(rel, name), actions); err != nil {
			return err
		}
	}

	for _, name := range files.Both {
		same, err := r.sameContent(filepath.Join(rel, name))
		if err != nil {
			return err
		}

		if !same {
			if err := r.copyFile(filepath.Join(rel, name), actions); err != nil {
				return err
			}
		}
	}

	for _, name := range folders.Both {
		if err := r.syncDir(filepath.Join(rel, name), actions); err != nil {
			return err
		}
	}

	return nil
}

// kept filters out ignored names. Ignored entries are invisible to the diff,
// so they are neither copied nor removed.
func (r *Reconciler) kept(rel string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if r.ignore.Match(filepath.Join(rel, name)) {
			continue
		}

		out = append(out, name)
	}

	return out
}

func (r *Reconciler) sameContent(rel string) (bool, error) {
	srcSum, err := checksum.File(r.fsys, filepath.Join(r.source, rel))
	if err != nil {
		return false, err
	}

	dstSum, err := checksum.File(r.fsys, filepath.Join(r.replica, rel))
	if err != nil {
		return false, err
	}

	return srcSum == dstSum, nil
}

func (r *Reconciler) copyFile(rel string, actions *[]model.Action) error {
	src := filepath.Join(r.source, rel)
	dst := filepath.Join(r.replica, rel)

	n, err := fsx.CopyFile(r.fsys, src, dst)
	if err != nil {
		return err
	}

	r.log.Info(fmt.Sprintf("File %s copied to %s", filepath.Base(src), filepath.Dir(dst)))
	*actions = append(*actions, model.Action{
		Op:        model.OpCopy,
		Kind:      model.KindFile,
		Path:      filepath.ToSlash(rel),
		Bytes:     n,
		AppliedAt: time.Now(),
	})

	return nil
}

func (r *Reconciler) removeFile(rel string, actions *[]model.Action) error {
	dst := filepath.Join(r.replica, rel)

	if err := fsx.Remove(r.fsys, dst); err != nil {
		return err
	}

	r.log.Info(fmt.Sprintf("File %s removed from %s", filepath.Base(dst), filepath.Dir(dst)))
	*actions = append(*actions, model.Action{
		Op:        model.OpRemove,
		Kind:      model.KindFile,
		Path:      filepath.ToSlash(rel),
		AppliedAt: time.Now(),
	})

	return nil
}

func (r *Reconciler) copyFolder(rel string, actions *[]model.Action) error {
	src := filepath.Join(r.source, rel)
	dst := filepath.Join(r.replica, rel)

	// skip sees paths relative to the subtree; the matcher is anchored at
	// the sync root.
	skip := func(sub string) bool {
		return r.ignore.Match(filepath.Join(rel, sub))
	}

	_, bytes, err := fsx.CopyTree(r.fsys, src, dst, skip)
	if err != nil {
		return err
	}

	r.log.Info(fmt.Sprintf("Folder %s copied to %s", filepath.Base(src), filepath.Dir(dst)))
	*actions = append(*actions, model.Action{
		Op:        model.OpCopy,
		Kind:      model.KindFolder,
		Path:      filepath.ToSlash(rel),
		Bytes:     bytes,
		AppliedAt: time.Now(),
	})

	return nil
}

func (r *Reconciler) removeFolder(rel string, actions *[]model.Action) error {
	dst := filepath.Join(r.replica, rel)

	if err := fsx.RemoveTree(r.fsys, dst); err != nil {
		return err
	}

	r.log.Info(fmt.Sprintf("Folder %s removed from %s", filepath.Base(dst), filepath.Dir(dst)))
	*actions = append(*actions, model.Action{
		Op:        model.OpRemove,
		Kind:      model.KindFolder,
		Path:      filepath.ToSlash(rel),
		AppliedAt: time.Now(),
	})

	return nil
}
