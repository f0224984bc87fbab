package vector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

func TestFactorize(t *testing.T) {
	f := NewFactorizer()
	codes, err := f.Factorize(Of("a", "b", nil, "a"))
	require.NoError(t, err)

	assert.Equal(t, Int, codes.Type())
	assert.Equal(t, []any{int32(0), int32(1), na.Int32, int32(0)}, codes.Values())
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []any{"a", "b"}, f.Labels().Values())
}

func TestFactorizeNormalisesIntegers(t *testing.T) {
	f := NewFactorizer()
	a, err := f.Code(1)
	require.NoError(t, err)
	b, err := f.Code(int32(1))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = f.Code([]int{1})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestFactorizeKeepsKeys(t *testing.T) {
	v := keyed(t, Strings("x", "y"), "k1", "k2")
	codes, err := NewFactorizer().Factorize(v)
	require.NoError(t, err)
	c, err := codes.Get("k2")
	require.NoError(t, err)
	assert.Equal(t, int32(1), c)
}

func TestFactorizeAll(t *testing.T) {
	var vs []*Vector
	for i := 0; i < 8; i++ {
		vs = append(vs, Strings("red", "green", fmt.Sprintf("c%d", i%3), "red"))
	}

	f := NewFactorizer()
	out, err := f.FactorizeAll(context.Background(), vs...)
	require.NoError(t, err)
	require.Len(t, out, len(vs))
	assert.Equal(t, 5, f.Len())

	labels := f.Labels()
	for i, codes := range out {
		for loc := 0; loc < codes.Len(); loc++ {
			code := codes.Loc().Int(loc)
			assert.Equal(t, vs[i].Loc().Get(loc), labels.Loc().Get(int(code)))
		}
	}
}

func TestFactorizeAllFails(t *testing.T) {
	f := NewFactorizer()
	_, err := f.FactorizeAll(context.Background(), Strings("a"), Of([]int{1}))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.FactorizeAll(ctx, Strings("a"))
	assert.ErrorIs(t, err, context.Canceled)
}
