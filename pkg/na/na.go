// Package na defines the missing-value (NA) sentinel for every storage kind.
//
// Each primitive storage kind reserves one in-domain value as its NA marker so
// that columns can be stored unboxed without a validity bitmap:
//
//   - signed integers use the minimum value of their width
//   - float32 and float64 use a signalling NaN carrying the payload 0x7A2
//   - complex128 uses NA in both parts
//   - reference kinds (string, object) use nil
//
// The float sentinel is deliberately a specific NaN. Ordinary NaN produced by
// arithmetic (0/0, Inf-Inf, math.NaN()) is a value, not NA. The test ignores
// the quiet bit, so NA that has passed through arithmetic is still NA.
package na

import (
	"fmt"
	"math"
	"reflect"
)

// Integer sentinels.
const (
	Int8  int8  = math.MinInt8
	Int16 int16 = math.MinInt16
	Int32 int32 = math.MinInt32
	Int64 int64 = math.MinInt64
	Int   int   = math.MinInt
)

const (
	payload = 0x7A2

	float64Bits uint64 = 0x7FF0000000000000 | payload
	float64Mask uint64 = 0x0007FFFFFFFFFFFF

	float32Bits uint32 = 0x7F800000 | payload
	float32Mask uint32 = 0x003FFFFF
)

var (
	// Float64 is the float64 NA.
	Float64 = math.Float64frombits(float64Bits)
	// Float32 is the float32 NA.
	Float32 = math.Float32frombits(float32Bits)
	// Complex128 is the complex128 NA.
	Complex128 = complex(Float64, Float64)
)

// IsInt32 reports whether v is the int32 NA.
func IsInt32(v int32) bool { return v == Int32 }

// IsInt64 reports whether v is the int64 NA.
func IsInt64(v int64) bool { return v == Int64 }

// IsFloat64 reports whether v is the float64 NA. Ordinary NaN is not NA.
func IsFloat64(v float64) bool {
	return v != v && math.Float64bits(v)&float64Mask == payload
}

// IsFloat32 reports whether v is the float32 NA.
func IsFloat32(v float32) bool {
	return v != v && math.Float32bits(v)&float32Mask == payload
}

// IsComplex128 reports whether either part of v is NA.
func IsComplex128(v complex128) bool {
	return IsFloat64(real(v)) || IsFloat64(imag(v))
}

// Is reports whether v is the NA of its dynamic type. nil is NA. Types with
// no reserved sentinel (bool, string, unsigned integers, structs) are never NA.
func Is(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case int8:
		return x == Int8
	case int16:
		return x == Int16
	case int32:
		return x == Int32
	case int64:
		return x == Int64
	case int:
		return x == Int
	case float32:
		return IsFloat32(x)
	case float64:
		return IsFloat64(x)
	case complex64:
		return IsFloat32(real(x)) || IsFloat32(imag(x))
	case complex128:
		return IsComplex128(x)
	case Logical:
		return x == LogicalNA
	}
	return false
}

// Of returns the NA of host type t, or nil for reference and untyped kinds.
func Of(t reflect.Type) any {
	if t == nil {
		return nil
	}
	if t == logicalType {
		return LogicalNA
	}
	switch t.Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		return Int
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return complex(Float32, Float32)
	case reflect.Complex128:
		return Complex128
	}
	return nil
}

// String renders v, printing NA as "NA".
func String(v any) string {
	if Is(v) {
		return "NA"
	}
	return fmt.Sprint(v)
}
