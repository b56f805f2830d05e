// Package adapter contains the method frontends and the infrastructure
// adapters used by the codeaug workflow.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

// RecordFileExt is the extension of input record files.
const RecordFileExt = ".jsonl"

// SourceFSAdapter abstracts the filesystem operations the workflow relies on
// so the domain layer can be tested without touching the disk.
type SourceFSAdapter interface {
	// ListRecordFiles returns the regular *.jsonl files directly inside dir,
	// sorted by name. Sub-directories are not visited.
	ListRecordFiles(ctx context.Context, dir m.Path) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Rename moves a file, replacing the target.
	Rename(from, to m.Path) error

	// Remove deletes a file. A missing file is not an error.
	Remove(path m.Path) error

	// SamePath reports whether a and b resolve to the same location.
	SamePath(a, b m.Path) bool

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ListRecordFiles lists the record files of dir.
func (a *LocalSourceFSAdapter) ListRecordFiles(ctx context.Context, dir m.Path) ([]m.Path, error) {
	info, err := os.Stat(string(dir))
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	var files []m.Path

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !strings.HasSuffix(entry.Name(), RecordFileExt) {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		// Stat follows symlinks so linked record files are accepted.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		files = append(files, m.Path(path))
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path is chosen by the user running the tool
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates a directory tree.
func (a *LocalSourceFSAdapter) MkdirAll(dir m.Path) error {
	return os.MkdirAll(string(dir), 0o750)
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// Rename moves a file, replacing the target.
func (a *LocalSourceFSAdapter) Rename(from, to m.Path) error {
	return os.Rename(string(from), string(to))
}

// Remove deletes a file. A missing file is not an error.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	if err := os.Remove(string(path)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// SamePath compares cleaned absolute paths, falling back to os.SameFile when
// both exist.
func (a *LocalSourceFSAdapter) SamePath(x, y m.Path) bool {
	xi, xerr := os.Stat(string(x))
	yi, yerr := os.Stat(string(y))

	if xerr == nil && yerr == nil {
		return os.SameFile(xi, yi)
	}

	xa, xerr := filepath.Abs(string(x))
	ya, yerr := filepath.Abs(string(y))

	if xerr != nil || yerr != nil {
		return filepath.Clean(string(x)) == filepath.Clean(string(y))
	}

	return xa == ya
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
