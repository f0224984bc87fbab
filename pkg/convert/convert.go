// Package convert coerces scalar values between host types without losing
// information. NA of any source kind converts to the NA of the target kind.
package convert

import (
	"fmt"
	"math"
	"reflect"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// ToFloat64 converts any numeric or logical value to float64.
func ToFloat64(v any) (float64, bool) {
	if na.Is(v) {
		return na.Float64, true
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case na.Logical:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case complex128:
		if imag(x) == 0 {
			return real(x), true
		}
		return 0, false
	}
	if i, ok := signed(v); ok {
		return float64(i), true
	}
	if u, ok := unsigned(v); ok {
		return float64(u), true
	}
	return 0, false
}

// ToFloat32 converts v to float32. float64 input must round-trip exactly.
func ToFloat32(v any) (float32, bool) {
	if na.Is(v) {
		return na.Float32, true
	}
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		if math.IsNaN(x) {
			return float32(math.NaN()), true
		}
		f := float32(x)
		if float64(f) != x {
			return 0, false
		}
		return f, true
	}
	if i, ok := signed(v); ok && i >= -(1<<24) && i <= 1<<24 {
		return float32(i), true
	}
	if l, ok := v.(na.Logical); ok {
		return float32(l), true
	}
	return 0, false
}

// ToInt64 converts integers, logicals and integral floats to int64.
func ToInt64(v any) (int64, bool) {
	if na.Is(v) {
		return na.Int64, true
	}
	if i, ok := signed(v); ok {
		return i, true
	}
	if u, ok := unsigned(v); ok && u <= math.MaxInt64 {
		return int64(u), true
	}
	switch x := v.(type) {
	case na.Logical:
		return int64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float64:
		if x == math.Trunc(x) && x > math.MinInt64 && x < math.MaxInt64 {
			return int64(x), true
		}
	case float32:
		f := float64(x)
		if f == math.Trunc(f) && f > math.MinInt64 && f < math.MaxInt64 {
			return int64(f), true
		}
	}
	return 0, false
}

// ToInt32 converts v to int32. The int32 minimum is reserved for NA, so a
// non-NA value equal to it does not fit.
func ToInt32(v any) (int32, bool) {
	if na.Is(v) {
		return na.Int32, true
	}
	i, ok := ToInt64(v)
	if !ok || i <= math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int32(i), true
}

// ToComplex128 converts any numeric value to complex128.
func ToComplex128(v any) (complex128, bool) {
	if na.Is(v) {
		return na.Complex128, true
	}
	switch x := v.(type) {
	case complex128:
		return x, true
	case complex64:
		return complex128(x), true
	}
	f, ok := ToFloat64(v)
	if !ok {
		return 0, false
	}
	return complex(f, 0), true
}

// ToLogical converts bools, logicals and the integers 0 and 1.
func ToLogical(v any) (na.Logical, bool) {
	if na.Is(v) {
		return na.LogicalNA, true
	}
	switch x := v.(type) {
	case na.Logical:
		return x, true
	case bool:
		return na.FromBool(x), true
	}
	if i, ok := signed(v); ok && (i == 0 || i == 1) {
		return na.Logical(i), true
	}
	return 0, false
}

// ToString converts strings and fmt.Stringers. NA reports false since the
// string kind has no unboxed sentinel; callers store nil instead.
func ToString(v any) (string, bool) {
	if na.Is(v) {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

var (
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
	logicalType = reflect.TypeOf(na.Logical(0))
)

// To converts v to a value of host type target. NA converts to the NA of
// target (nil for reference kinds).
func To(target reflect.Type, v any) (any, error) {
	if target == nil || target == anyType {
		return v, nil
	}
	if target == logicalType {
		if l, ok := ToLogical(v); ok {
			return l, nil
		}
		return nil, illegal(target, v)
	}
	if na.Is(v) {
		return na.Of(target), nil
	}
	switch target.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		i, ok := ToInt32(v)
		if !ok {
			return nil, illegal(target, v)
		}
		out := reflect.ValueOf(i).Convert(target)
		if out.Int() != int64(i) {
			return nil, illegal(target, v)
		}
		return out.Interface(), nil
	case reflect.Int, reflect.Int64:
		i, ok := ToInt64(v)
		if !ok {
			return nil, illegal(target, v)
		}
		return reflect.ValueOf(i).Convert(target).Interface(), nil
	case reflect.Float32:
		if f, ok := ToFloat32(v); ok {
			return f, nil
		}
	case reflect.Float64:
		if f, ok := ToFloat64(v); ok {
			return f, nil
		}
	case reflect.Complex128:
		if c, ok := ToComplex128(v); ok {
			return c, nil
		}
	case reflect.Bool:
		if l, ok := ToLogical(v); ok {
			b, _ := l.Bool()
			return b, nil
		}
	case reflect.String:
		if s, ok := ToString(v); ok {
			return s, nil
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Type().AssignableTo(target) {
			return v, nil
		}
	}
	return nil, illegal(target, v)
}

func illegal(target reflect.Type, v any) error {
	return errors.IllegalType(target.String(), fmt.Sprintf("%T", v))
}

func signed(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

func unsigned(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uintptr:
		return uint64(x), true
	}
	return 0, false
}
