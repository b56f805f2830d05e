package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

// ErrRecord is returned when a line of a record file is not a JSON object.
var ErrRecord = errors.New("invalid record")

// RecordStore reads and writes line-delimited JSON record files.
type RecordStore interface {
	// ReadRecords decodes every non-blank line of path in order and passes it
	// to fn. Decoding stops at the first malformed line or fn error.
	ReadRecords(ctx context.Context, path m.Path, fn func(m.Record) error) error

	// FirstKeys returns the sorted keys of the first record of path.
	FirstKeys(ctx context.Context, path m.Path) ([]string, error)

	// CreateWriter truncates path and returns a writer appending records to it.
	CreateWriter(path m.Path) (RecordWriter, error)
}

// RecordWriter appends JSON objects to a record file, one per line.
type RecordWriter interface {
	Write(fields map[string]any) error
	Close() error
}

// JSONLRecordStore is the RecordStore backed by local JSONL files.
type JSONLRecordStore struct{}

// NewJSONLRecordStore constructs a JSONLRecordStore.
func NewJSONLRecordStore() *JSONLRecordStore {
	return &JSONLRecordStore{}
}

// ReadRecords streams the records of path.
func (s *JSONLRecordStore) ReadRecords(ctx context.Context, path m.Path, fn func(m.Record) error) error {
	// #nosec G304 - path is chosen by the user running the tool
	file, err := os.Open(string(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close record file", "path", path, "error", err)
		}
	}()

	reader := bufio.NewReader(file)

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read %s: %w", path, readErr)
		}

		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
			fields, err := decodeRecord(trimmed)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", path, line, err)
			}

			if err := fn(m.Record{Line: line, Fields: fields}); err != nil {
				return err
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

// FirstKeys reads records until the first one and returns its keys.
func (s *JSONLRecordStore) FirstKeys(ctx context.Context, path m.Path) ([]string, error) {
	errFound := errors.New("found")

	var keys []string

	err := s.ReadRecords(ctx, path, func(rec m.Record) error {
		for key := range rec.Fields {
			keys = append(keys, key)
		}

		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}

	if keys == nil && err == nil {
		return nil, fmt.Errorf("%s seems to be empty", path)
	}

	sort.Strings(keys)

	return keys, nil
}

// decodeRecord keeps numbers as json.Number so they are written back verbatim.
func decodeRecord(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecord, err)
	}

	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrRecord)
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrRecord)
	}

	return fields, nil
}

// CreateWriter opens path for writing.
func (s *JSONLRecordStore) CreateWriter(path m.Path) (RecordWriter, error) {
	// #nosec G304 - path is chosen by the user running the tool
	file, err := os.Create(string(path))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	buf := bufio.NewWriter(file)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	return &jsonlWriter{path: path, file: file, buf: buf, encoder: encoder}, nil
}

type jsonlWriter struct {
	path    m.Path
	file    *os.File
	buf     *bufio.Writer
	encoder *json.Encoder
}

func (w *jsonlWriter) Write(fields map[string]any) error {
	if w.file == nil {
		return fmt.Errorf("write %s: writer is closed", w.path)
	}

	if err := w.encoder.Encode(fields); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}

	return nil
}

func (w *jsonlWriter) Close() error {
	if w.file == nil {
		return nil
	}

	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file = nil

	if err := errors.Join(flushErr, closeErr); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}

	return nil
}
