package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

func TestLocalSourceFSAdapter_ListRecordFiles(t *testing.T) {
	t.Run("lists jsonl files sorted and skips the rest", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "b.jsonl"), "{}\n")
		writeTestFile(t, filepath.Join(root, "a.jsonl"), "{}\n")
		writeTestFile(t, filepath.Join(root, "notes.txt"), "x\n")
		mustMkdir(t, filepath.Join(root, "dir.jsonl"))

		nested := filepath.Join(root, "nested")
		mustMkdir(t, nested)
		writeTestFile(t, filepath.Join(nested, "c.jsonl"), "{}\n")

		files, err := adapter.ListRecordFiles(context.Background(), m.Path(root))
		if err != nil {
			t.Fatalf("ListRecordFiles() error = %v", err)
		}

		want := []m.Path{m.Path(filepath.Join(root, "a.jsonl")), m.Path(filepath.Join(root, "b.jsonl"))}
		if len(files) != len(want) {
			t.Fatalf("ListRecordFiles() = %v, want %v", files, want)
		}

		for i := range want {
			if files[i] != want[i] {
				t.Fatalf("ListRecordFiles()[%d] = %s, want %s", i, files[i], want[i])
			}
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		files, err := NewLocalSourceFSAdapter().ListRecordFiles(context.Background(), m.Path(t.TempDir()))
		if err != nil {
			t.Fatalf("ListRecordFiles() error = %v", err)
		}

		if len(files) != 0 {
			t.Fatalf("ListRecordFiles() = %v, want none", files)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().ListRecordFiles(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
		if err == nil {
			t.Fatalf("ListRecordFiles() expected error for missing dir")
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.jsonl")
		writeTestFile(t, path, "{}\n")

		_, err := NewLocalSourceFSAdapter().ListRecordFiles(context.Background(), m.Path(path))
		if err == nil {
			t.Fatalf("ListRecordFiles() expected error for a regular file")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.jsonl"), "{}\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewLocalSourceFSAdapter().ListRecordFiles(ctx, m.Path(root))
		if err == nil {
			t.Fatalf("ListRecordFiles() expected context error")
		}
	})
}

func TestLocalSourceFSAdapter_ReadWrite(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	dir := filepath.Join(root, "out", "stats")

	if err := adapter.MkdirAll(m.Path(dir)); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	path := filepath.Join(dir, "stats.csv")
	if err := adapter.WriteFile(m.Path(path), []byte("a,b\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "a,b\n" {
		t.Fatalf("ReadFile() = %q", data)
	}

	info, err := adapter.FileInfo(m.Path(dir))
	if err != nil || !info.IsDir() {
		t.Fatalf("FileInfo() = %v, %v; want directory", info, err)
	}

	if _, err := adapter.FileInfo(m.Path(filepath.Join(root, "nope"))); !os.IsNotExist(err) {
		t.Fatalf("FileInfo() error = %v, want not exist", err)
	}

	moved := filepath.Join(dir, "moved.csv")
	if err := adapter.Rename(m.Path(path), m.Path(moved)); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Rename() left the source behind: %v", err)
	}

	if err := adapter.Remove(m.Path(moved)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if err := adapter.Remove(m.Path(moved)); err != nil {
		t.Fatalf("Remove() of a missing file error = %v", err)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	mustMkdir(t, sub)

	if !adapter.SamePath(m.Path(root), m.Path(sub+"/..")) {
		t.Fatalf("SamePath() = false for %s and %s/..", root, sub)
	}

	if adapter.SamePath(m.Path(root), m.Path(sub)) {
		t.Fatalf("SamePath() = true for different directories")
	}

	if !adapter.SamePath(m.Path(filepath.Join(root, "x", "out")), m.Path(filepath.Join(root, "x", ".", "out"))) {
		t.Fatalf("SamePath() = false for equivalent missing paths")
	}

	joined := adapter.JoinPath("/tmp", "project", "out.jsonl")
	if string(joined) != filepath.Join("/tmp", "project", "out.jsonl") {
		t.Fatalf("JoinPath() = %s", joined)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}
