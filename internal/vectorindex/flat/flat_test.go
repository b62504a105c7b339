package flat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("valid dimension", func(t *testing.T) {
		idx, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 3, idx.Dimension())
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("invalid dimension", func(t *testing.T) {
		_, err := New(0)
		assert.Error(t, err)
		_, err = New(-1)
		assert.Error(t, err)
	})
}

func TestAdd_DimensionMismatch(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)

	err = idx.Add([]float32{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 0, idx.Len(), "failed add must not store anything")
}

func TestSearch_NearestFirst(t *testing.T) {
	idx, err := Build(2, [][]float32{
		{10, 10}, // position 0, far
		{1, 1},   // position 1, near
		{5, 5},   // position 2, middle
	})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)

	// Distances ascend.
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
	assert.LessOrEqual(t, hits[1].Distance, hits[2].Distance)
}

func TestSearch_SelfMatch(t *testing.T) {
	v := []float32{0.25, -1.5, 3}
	idx, err := Build(3, [][]float32{{1, 1, 1}, v})
	require.NoError(t, err)

	hits, err := idx.Search(v, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Position)
	assert.InDelta(t, 0, hits[0].Distance, 1e-9)
}

func TestSearch_KExceedsCount(t *testing.T) {
	idx, err := Build(2, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)

	hits, err := idx.Search([]float32{0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	idx, err := Build(3, [][]float32{{1, 2, 3}})
	require.NoError(t, err)

	_, err = idx.Search([]float32{1, 2}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	idx, err := Build(3, [][]float32{
		{0.1, 0.2, 0.3},
		{-1, 2.5, 0},
		{100, -200, 0.0001},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "topic_index.bin")
	require.NoError(t, idx.SaveFile(path))

	restored, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Dimension(), restored.Dimension())
	assert.Equal(t, idx.Len(), restored.Len())

	query := []float32{0, 1, 0}
	want, err := idx.Search(query, 3)
	require.NoError(t, err)
	got, err := restored.Search(query, 3)
	require.NoError(t, err)

	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Position, got[i].Position)
		assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-12)
	}
}

func TestSaveLoad_EmptyIndex(t *testing.T) {
	idx, err := New(4)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty_index.bin")
	require.NoError(t, idx.SaveFile(path))

	restored, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, restored.Dimension())
	assert.Equal(t, 0, restored.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.bin"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadFile_Corrupt(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.bin")
		require.NoError(t, os.WriteFile(path, []byte("not an index file at all"), 0600))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, domain.ErrCorruptIndex)
	})

	t.Run("truncated vectors", func(t *testing.T) {
		idx, err := Build(3, [][]float32{{1, 2, 3}, {4, 5, 6}})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "trunc.bin")
		require.NoError(t, idx.SaveFile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)-5], 0600))

		_, err = LoadFile(path)
		assert.ErrorIs(t, err, domain.ErrCorruptIndex)
	})

	t.Run("trailing data beyond declared count", func(t *testing.T) {
		idx, err := Build(3, [][]float32{{1, 2, 3}, {4, 5, 6}})
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "trailing.bin")
		require.NoError(t, idx.SaveFile(path))

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
		require.NoError(t, err)
		_, err = f.Write([]byte{0xde, 0xad})
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = LoadFile(path)
		assert.ErrorIs(t, err, domain.ErrCorruptIndex)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.bin")
		require.NoError(t, os.WriteFile(path, nil, 0600))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, domain.ErrCorruptIndex)
	})
}

func TestLoadFile_Corrupt_IsTreatedAsError(t *testing.T) {
	// The error taxonomy distinguishes corrupt state from absence.
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
