package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

func TestRange(t *testing.T) {
	r := NewRange(3)
	assert.Equal(t, 3, r.Len())

	loc, err := r.Location(int64(2))
	require.NoError(t, err)
	assert.Equal(t, 2, loc)

	_, err = r.Location(3)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	_, err = r.Location("a")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	assert.Equal(t, []any{0, 1, 2}, r.Keys())
	assert.Equal(t, 1, r.Key(1))
	assert.Panics(t, func() { r.Key(3) })
}

func TestHashBijection(t *testing.T) {
	h, err := NewHash("a", "b", "c")
	require.NoError(t, err)

	for i := 0; i < h.Len(); i++ {
		loc, err := h.Location(h.Key(i))
		require.NoError(t, err)
		assert.Equal(t, i, loc)
	}
	assert.True(t, h.Contains("b"))
	assert.False(t, h.Contains("z"))
}

func TestHashRejectsDuplicates(t *testing.T) {
	_, err := NewHash("a", "b", "a")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))

	_, err = NewHash(1, int64(1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestHashRejectsInvalidKeys(t *testing.T) {
	_, err := NewHash([]int{1})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = NewHash(nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestBuilderStaysRange(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Add(i))
	}
	b.Extend(2)
	b.RemoveAt(5)

	idx := b.Build()
	_, ok := idx.(Range)
	assert.True(t, ok)
	assert.Equal(t, 5, idx.Len())
}

func TestBuilderUpgradesToHash(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(0))
	require.NoError(t, b.Add(1))
	require.NoError(t, b.Add("x"))

	err := b.Add(1)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))

	loc, err := b.GetOrAdd("y")
	require.NoError(t, err)
	assert.Equal(t, 3, loc)
	loc, err = b.GetOrAdd("x")
	require.NoError(t, err)
	assert.Equal(t, 2, loc)

	idx := b.Build()
	_, ok := idx.(*Hash)
	assert.True(t, ok)
	assert.Equal(t, []any{0, 1, "x", "y"}, idx.Keys())
}

func TestBuilderExtendSkipsTakenKeys(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(1))
	require.NoError(t, b.Add("a"))
	b.Extend(3)
	assert.Equal(t, 5, b.Len())

	idx := b.Build()
	assert.Equal(t, []any{1, "a", 2, 3, 4}, idx.Keys())
}

func TestBuilderSwapAndRemove(t *testing.T) {
	b := NewRange(4).NewCopyBuilder()
	b.Swap(0, 3)
	assert.Equal(t, 3, b.Key(0))
	assert.Equal(t, 0, b.Key(3))

	b.RemoveAt(1)
	assert.Equal(t, 3, b.Len())
	loc, err := b.Location(2)
	require.NoError(t, err)
	assert.Equal(t, 1, loc)

	idx := b.Build()
	assert.Equal(t, []any{3, 2, 0}, idx.Keys())
}

func TestCopyBuilderIsIndependent(t *testing.T) {
	h, err := NewHash("a", "b")
	require.NoError(t, err)

	b := h.NewCopyBuilder()
	require.NoError(t, b.Add("c"))
	b.Build()

	assert.Equal(t, 2, h.Len())
	assert.False(t, h.Contains("c"))
}

func TestEqual(t *testing.T) {
	h, err := NewHash(0, 1, 2)
	require.NoError(t, err)
	assert.True(t, Equal(NewRange(3), h))
	assert.False(t, Equal(NewRange(2), h))

	g, err := NewHash(0, 2, 1)
	require.NoError(t, err)
	assert.False(t, Equal(h, g))
}
