package vector

import (
	"slices"

	"github.com/ajitpratap0/serieskit/pkg/index"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

func owned[T any](t Type, c *codec[T], values []T) *Vector {
	return &Vector{
		typ: t,
		col: &dense[T]{c: c, data: slices.Clone(values)},
		idx: index.NewRange(len(values)),
	}
}

// Of builds a Vector from values, inferring its Type.
func Of(values ...any) *Vector {
	b := NewInferringBuilder()
	for _, v := range values {
		// an inferring builder accepts every value
		_ = b.Add(v)
	}
	v, _ := b.Build()
	return v
}

// New builds a Vector of Type t from values. Values t cannot hold fail with
// an illegal_type error.
func New(t Type, values ...any) (*Vector, error) {
	b := t.NewBuilderWithCapacity(len(values))
	for _, v := range values {
		if err := b.Add(v); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Empty returns a Vector of Type t with no values.
func Empty(t Type) *Vector {
	return &Vector{typ: t, col: newStore(t, 0), idx: index.NewRange(0)}
}

// Repeat returns a Vector holding n copies of x.
func Repeat(x any, n int) *Vector {
	t := TypeOf(x)
	s := newStore(t, n)
	if !na.Is(x) {
		for i := 0; i < n; i++ {
			// x's own Type always holds x
			_ = s.Set(i, x)
		}
	}
	return &Vector{typ: t, col: s, idx: index.NewRange(n)}
}

// Doubles returns a Double vector copied from values.
func Doubles(values ...float64) *Vector { return owned(Double, doubleCodec, values) }

// Floats returns a Float vector copied from values.
func Floats(values ...float32) *Vector { return owned(Float, floatCodec, values) }

// Ints returns an Int vector copied from values.
func Ints(values ...int32) *Vector { return owned(Int, intCodec, values) }

// Longs returns a Long vector copied from values.
func Longs(values ...int64) *Vector { return owned(Long, longCodec, values) }

// Complexes returns a Complex vector copied from values.
func Complexes(values ...complex128) *Vector { return owned(Complex, complexCodec, values) }

// Logicals returns a Logical vector copied from values.
func Logicals(values ...na.Logical) *Vector { return owned(Logical, logicalCodec, values) }

// Strings returns a String vector. Use New(String, ...) for values with NA.
func Strings(values ...string) *Vector {
	data := make([]any, len(values))
	for i, s := range values {
		data[i] = s
	}
	return owned(String, stringCodec, data)
}
