package retrieval

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexAddAndSearch(t *testing.T) {
	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)

	require.NoError(t, idx.Add(
		[]string{"a", "b", "c"},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0.707, 0.707, 0}},
	))
	assert.Equal(t, 3, idx.Size())

	results, err := idx.Search([]float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Score, 0.001)
	assert.Equal(t, "c", results[1].ID)
}

func TestMemoryIndexDimensionMismatch(t *testing.T) {
	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)

	err = idx.Add([]string{"a"}, [][]float32{{1, 0}})
	assert.Error(t, err)

	_, err = idx.Search([]float32{1, 0}, 1)
	assert.Error(t, err)
}

func TestMemoryIndexEmptySearch(t *testing.T) {
	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)

	results, err := idx.Search([]float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryIndexSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.bin")

	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add(
		[]string{"a", "b"},
		[][]float32{{1, 0, 0}, {0, 1, 0}},
	))
	require.NoError(t, idx.Save(path))

	loaded, err := NewMemoryIndex(3)
	require.NoError(t, err)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, 2, loaded.Size())

	results, err := loaded.Search([]float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)
}

func TestMemoryIndexLoadMissingFile(t *testing.T) {
	idx, err := NewMemoryIndex(3)
	require.NoError(t, err)

	err = idx.Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.NoError(t, err)
	assert.Equal(t, 0, idx.Size())
}

func TestMemoryIndexLoadDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.bin")

	idx, err := NewMemoryIndex(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add([]string{"a"}, [][]float32{{1, 0}}))
	require.NoError(t, idx.Save(path))

	other, err := NewMemoryIndex(3)
	require.NoError(t, err)
	assert.Error(t, other.Load(path))
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4, 0}
	Normalize(v)
	assert.InDelta(t, 0.6, v[0], 0.001)
	assert.InDelta(t, 0.8, v[1], 0.001)

	zero := []float32{0, 0, 0}
	Normalize(zero)
	assert.Equal(t, []float32{0, 0, 0}, zero)
}
