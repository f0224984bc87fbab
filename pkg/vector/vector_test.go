package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/index"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

func keyed(t *testing.T, v *Vector, keys ...any) *Vector {
	t.Helper()
	h, err := index.NewHash(keys...)
	require.NoError(t, err)
	out, err := v.WithIndex(h)
	require.NoError(t, err)
	return out.ToOwned()
}

// panicsWithType asserts that f panics with an *errors.Error of type want.
func panicsWithType(t *testing.T, want errors.ErrorType, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(*errors.Error)
		require.True(t, ok, "panic value %v is not *errors.Error", r)
		assert.Equal(t, want, err.Type)
	}()
	f()
}

func TestGetByKey(t *testing.T) {
	v := Doubles(1, 2, 3)
	x, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	x, err = v.Get(int64(2))
	require.NoError(t, err)
	assert.Equal(t, 3.0, x)

	_, err = v.Get(3)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	_, err = v.Get("a")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestLocationOutOfRangePanics(t *testing.T) {
	v := Ints(1, 2)
	panicsWithType(t, errors.ErrorTypeOutOfRange, func() { v.Loc().Get(2) })
	panicsWithType(t, errors.ErrorTypeOutOfRange, func() { v.Loc().IsNA(-1) })
	panicsWithType(t, errors.ErrorTypeOutOfRange, func() { v.Loc().Double(5) })
	panicsWithType(t, errors.ErrorTypeOutOfRange, func() { v.Compare(0, 2) })

	err := v.Loc().Set(2, int32(1))
	assert.True(t, errors.IsType(err, errors.ErrorTypeOutOfRange))
	assert.True(t, errors.IsType(v.Loc().SetNA(-1), errors.ErrorTypeOutOfRange))
}

func TestSetChecksType(t *testing.T) {
	v := Doubles(1, 2)
	require.NoError(t, v.Set(0, int32(7)))
	assert.Equal(t, 7.0, v.Loc().Double(0))

	err := v.Set(1, "x")
	assert.True(t, errors.IsType(err, errors.ErrorTypeIllegalType))

	iv := Ints(1)
	err = iv.Loc().Set(0, 1.5)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIllegalType))

	require.NoError(t, v.Set(1, nil))
	assert.True(t, v.Loc().IsNA(1))

	err = v.Set("missing", 1.0)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestTypedLocationReads(t *testing.T) {
	v := Of(int32(3), nil)
	loc := v.Loc()
	assert.Equal(t, int32(3), loc.Int(0))
	assert.Equal(t, int64(3), loc.Long(0))
	assert.Equal(t, 3.0, loc.Double(0))
	assert.Equal(t, float32(3), loc.Float(0))
	assert.Equal(t, complex(3, 0), loc.Complex(0))
	assert.Equal(t, na.Int64, loc.Long(1))
	assert.True(t, na.IsFloat64(loc.Double(1)))

	s, ok := loc.Text(0)
	assert.True(t, ok)
	assert.Equal(t, "3", s)
	_, ok = loc.Text(1)
	assert.False(t, ok)

	assert.Equal(t, na.True, Logicals(na.True).Loc().Logical(0))
	assert.Equal(t, na.LogicalNA, Strings("x").Loc().Logical(0))
}

func TestNAPerType(t *testing.T) {
	for _, typ := range Types {
		t.Run(typ.String(), func(t *testing.T) {
			v := build(t, typ.NewBuilderOfSize(2))
			assert.Equal(t, 2, v.CountNA())
			assert.True(t, v.Loc().IsNA(1))
		})
	}
}

func TestWithIndexIsAView(t *testing.T) {
	v := Doubles(1, 2)
	h, err := index.NewHash("a", "b")
	require.NoError(t, err)

	w, err := v.WithIndex(h)
	require.NoError(t, err)
	assert.True(t, v.Transferable())
	assert.False(t, w.Transferable())

	x, err := w.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	require.NoError(t, w.Set("a", 5.0))
	assert.Equal(t, 5.0, v.Loc().Double(0), "writes through a view reach the owner")

	_, err = v.WithIndex(index.NewRange(3))
	assert.True(t, errors.IsType(err, errors.ErrorTypeSizeMismatch))
}

func TestToOwnedIsIndependent(t *testing.T) {
	v := Strings("a", "b")
	w, err := v.WithIndex(v.Index())
	require.NoError(t, err)

	o := w.ToOwned()
	assert.True(t, o.Transferable())
	require.NoError(t, o.Loc().Set(0, "z"))
	assert.Equal(t, "a", v.Loc().Get(0))
}

func TestCompareWith(t *testing.T) {
	a := Ints(1, na.Int32)
	b := Doubles(1.5, 0.5)
	assert.Equal(t, -1, a.CompareWith(0, b, 0))
	assert.Equal(t, 1, a.CompareWith(0, b, 1))
	assert.Equal(t, 1, a.CompareWith(1, b, 0), "NA is greatest")
	assert.Equal(t, 1, a.Compare(1, 0))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Doubles(1, na.Float64), Doubles(1, na.Float64)))
	assert.False(t, Equal(Doubles(1, 2), Doubles(1, 3)))
	assert.False(t, Equal(Doubles(1), Floats(1)))
	assert.False(t, Equal(Doubles(1, 2), keyed(t, Doubles(1, 2), "a", "b")))
	assert.True(t, Equal(keyed(t, Ints(1), "k"), keyed(t, Ints(1), "k")))
}

func TestConstructors(t *testing.T) {
	v, err := New(Long, 1, int32(2), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), na.Int64}, v.Values())

	_, err = New(Int, "x")
	assert.True(t, errors.IsType(err, errors.ErrorTypeIllegalType))

	e := Empty(Complex)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, Complex, e.Type())

	r := Repeat("x", 3)
	assert.Equal(t, []any{"x", "x", "x"}, r.Values())
	assert.Equal(t, 2, Repeat(nil, 2).CountNA())

	vals := []float64{1, 2}
	d := Doubles(vals...)
	vals[0] = 9
	assert.Equal(t, 1.0, d.Loc().Double(0), "constructors copy their input")

	assert.Equal(t, Complex, Complexes(1i).Type())
	assert.Equal(t, Long, Longs(1).Type())
}
