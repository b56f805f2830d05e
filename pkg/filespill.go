// Package pkg provides utilities shared by the codeaug commands.
package pkg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// spillDirName is the directory under os.TempDir holding spill files.
const spillDirName = "codeaug-spill"

// FileSpill is an append-only sequence of items of type T kept on disk, so
// per-record rows of a large run do not stay in memory.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	// Close releases the spill and removes its backing file.
	Close() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *msgpack.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates an empty FileSpill backed by a msgpack stream in a
// temporary file.
func NewFileSpill[T any]() (FileSpill[T], error) {
	dir := filepath.Join(os.TempDir(), spillDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.msgpack")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: msgpack.NewEncoder(file),
	}, nil
}

// Path returns the backing file.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// Len returns the number of appended items.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Append encodes item at the end of the spill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return errors.New("filespill is closed")
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode item %d: %w", f.length, err)
	}

	f.length++

	return nil
}

// AppendBatch appends items in order and stops at the first failure.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get decodes the item at index by scanning from the start of the file.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	var found T

	if index >= f.Len() {
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}

	errStop := errors.New("stop")

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStop
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return found, err
	}

	return found, nil
}

// Range decodes every item in append order. It stops at the first error
// returned by fn and returns it.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return errors.New("filespill is closed")
	}

	reader, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill for reading", "path", f.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		if err := reader.Close(); err != nil {
			slog.Error("failed to close spill reader", "path", f.path, "error", err)
		}
	}()

	decoder := msgpack.NewDecoder(reader)

	for i := range f.length {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}

			slog.Error("failed to decode item", "path", f.path, "index", i, "error", err)

			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and deletes the backing file. It is safe to call twice.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	if rmErr := os.Remove(f.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		err = errors.Join(err, rmErr)
	}

	if err != nil {
		slog.Error("failed to release filespill", "path", f.path, "error", err)
		return fmt.Errorf("close spill: %w", err)
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}
