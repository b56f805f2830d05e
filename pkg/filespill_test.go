package pkg

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	spill, err := NewFileSpill[T]()
	require.NoError(t, err)
	t.Cleanup(func() { _ = spill.Close() })

	return spill
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill creates a file under the temp dir", func(t *testing.T) {
		spill := newSpill[int](t)

		assert.Contains(t, spill.Path(), spillDirName)
		assert.True(t, strings.HasSuffix(spill.Path(), ".msgpack"))
		assert.FileExists(t, spill.Path())
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill := newSpill[string](t)

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "first", val)

		val, err = spill.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "second", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		assert.Empty(t, val)
	})

	t.Run("AppendBatch then Append keeps order", func(t *testing.T) {
		spill := newSpill[int](t)

		require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))
		require.NoError(t, spill.Append(40))
		assert.Equal(t, uint64(4), spill.Len())

		var collected []int
		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		}))
		assert.Equal(t, []int{10, 20, 30, 40}, collected)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill := newSpill[int](t)
		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		stop := errors.New("stop at index 1")
		count := 0

		err := spill.Range(func(index uint64, _ int) error {
			count++
			if index == 1 {
				return stop
			}

			return nil
		})

		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 2, count)
	})

	t.Run("Close removes the file", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		require.NoError(t, spill.Append(1))

		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		_, err = os.Stat(spill.Path())
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Error(t, spill.Append(2))
	})

	t.Run("structs with msgpack tags", func(t *testing.T) {
		type row struct {
			Failed bool `msgpack:"failed"`
			Count  int  `msgpack:"count"`
			Tags   []string
		}

		spill := newSpill[row](t)
		rows := []row{{Failed: true}, {Count: 7, Tags: []string{"a", "b"}}}
		require.NoError(t, spill.AppendBatch(rows))

		got, err := spill.Get(1)
		require.NoError(t, err)
		assert.Equal(t, rows[1], got)

		got, err = spill.Get(0)
		require.NoError(t, err)
		assert.True(t, got.Failed)
		assert.Empty(t, got.Tags)
	})
}

func TestFileSpillEdgeCases(t *testing.T) {
	t.Run("empty spill", func(t *testing.T) {
		spill := newSpill[int](t)

		count := 0
		require.NoError(t, spill.Range(func(uint64, int) error {
			count++
			return nil
		}))
		assert.Zero(t, count)

		_, err := spill.Get(0)
		assert.Error(t, err)
	})

	t.Run("numeric extremes", func(t *testing.T) {
		ints := newSpill[int64](t)
		require.NoError(t, ints.AppendBatch([]int64{math.MaxInt64, math.MinInt64, -1, 0}))

		v, err := ints.Get(1)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MinInt64), v)

		floats := newSpill[float64](t)
		require.NoError(t, floats.AppendBatch([]float64{math.MaxFloat64, math.SmallestNonzeroFloat64}))

		f, err := floats.Get(0)
		require.NoError(t, err)
		assert.Equal(t, math.MaxFloat64, f)
	})

	t.Run("long string", func(t *testing.T) {
		spill := newSpill[string](t)
		long := strings.Repeat("x", 10000)
		require.NoError(t, spill.Append(long))

		val, err := spill.Get(0)
		require.NoError(t, err)
		assert.Len(t, val, 10000)
	})

	t.Run("large dataset range", func(t *testing.T) {
		spill := newSpill[int](t)

		n := 5000
		for i := range n {
			require.NoError(t, spill.Append(i))
		}

		sum := 0
		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			sum += item
			return nil
		}))
		assert.Equal(t, n*(n-1)/2, sum)

		last, err := spill.Get(uint64(n - 1))
		require.NoError(t, err)
		assert.Equal(t, n-1, last)
	})
}

func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[int]()
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(i)
	}
}

func BenchmarkRange(b *testing.B) {
	spill, err := NewFileSpill[int]()
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	for i := range 1000 {
		_ = spill.Append(i)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Range(func(uint64, int) error { return nil })
	}
}

// FuzzAppendGet round-trips arbitrary strings through the spill.
func FuzzAppendGet(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("\x00\xff")

	f.Fuzz(func(t *testing.T, data string) {
		spill, err := NewFileSpill[string]()
		if err != nil {
			t.Skipf("setup failed: %v", err)
		}
		defer spill.Close()

		if err := spill.Append(data); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		val, err := spill.Get(0)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if val != data {
			t.Fatalf("value mismatch: expected %q, got %q", data, val)
		}
	})
}
