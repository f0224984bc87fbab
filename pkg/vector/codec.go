package vector

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/ajitpratap0/serieskit/pkg/convert"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// codec carries the per-Type element behaviour for storage of T.
type codec[T any] struct {
	typ  Type
	na   T
	isNA func(T) bool
	// cmp orders two non-NA values.
	cmp func(a, b T) int
	// from converts a non-NA value the Type can hold.
	from func(v any) (T, bool)
}

// compare orders a and b with NA greater than every value.
func (c *codec[T]) compare(a, b T) int {
	an, bn := c.isNA(a), c.isNA(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return c.cmp(a, b)
}

func (c *codec[T]) convert(v any) (T, bool) {
	if na.Is(v) {
		return c.na, true
	}
	return c.from(v)
}

func compareBoxed[T any](c *codec[T], a, b any) int {
	x, okx := c.convert(a)
	y, oky := c.convert(b)
	if !okx || !oky {
		return compareObjects(a, b)
	}
	return c.compare(x, y)
}

var (
	logicalCodec = &codec[na.Logical]{
		typ:  Logical,
		na:   na.LogicalNA,
		isNA: func(v na.Logical) bool { return v == na.LogicalNA },
		cmp:  cmp.Compare[na.Logical],
		from: convert.ToLogical,
	}
	intCodec = &codec[int32]{
		typ:  Int,
		na:   na.Int32,
		isNA: na.IsInt32,
		cmp:  cmp.Compare[int32],
		from: convert.ToInt32,
	}
	longCodec = &codec[int64]{
		typ:  Long,
		na:   na.Int64,
		isNA: na.IsInt64,
		cmp:  cmp.Compare[int64],
		from: convert.ToInt64,
	}
	floatCodec = &codec[float32]{
		typ:  Float,
		na:   na.Float32,
		isNA: na.IsFloat32,
		cmp:  cmp.Compare[float32],
		from: convert.ToFloat32,
	}
	doubleCodec = &codec[float64]{
		typ:  Double,
		na:   na.Float64,
		isNA: na.IsFloat64,
		cmp:  cmp.Compare[float64],
		from: convert.ToFloat64,
	}
	complexCodec = &codec[complex128]{
		typ:  Complex,
		na:   na.Complex128,
		isNA: na.IsComplex128,
		cmp:  compareComplex,
		from: convert.ToComplex128,
	}
	stringCodec = &codec[any]{
		typ:  String,
		isNA: isNil,
		cmp: func(a, b any) int {
			return strings.Compare(a.(string), b.(string))
		},
		from: func(v any) (any, bool) {
			s, ok := v.(string)
			return s, ok
		},
	}
	objectCodec = &codec[any]{
		typ:  Object,
		isNA: na.Is,
		cmp:  compareObjects,
		from: func(v any) (any, bool) { return v, true },
	}
)

func isNil(v any) bool { return v == nil }

func compareComplex(a, b complex128) int {
	if c := cmp.Compare(real(a), real(b)); c != 0 {
		return c
	}
	return cmp.Compare(imag(a), imag(b))
}

// compareObjects is the Object order: NA last, numbers numerically, strings
// lexically, otherwise by resolved Type and then by printed form.
func compareObjects(a, b any) int {
	an, bn := na.Is(a), na.Is(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	ta, tb := TypeOf(a), TypeOf(b)
	if isNumeric(ta) && isNumeric(tb) {
		if ta == Complex || tb == Complex {
			x, _ := convert.ToComplex128(a)
			y, _ := convert.ToComplex128(b)
			return compareComplex(x, y)
		}
		x, _ := convert.ToFloat64(a)
		y, _ := convert.ToFloat64(b)
		return cmp.Compare(x, y)
	}
	if ta == String && tb == String {
		return strings.Compare(a.(string), b.(string))
	}
	if ta != tb {
		return cmp.Compare(ta, tb)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
