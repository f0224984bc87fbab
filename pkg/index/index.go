// Package index maps the keys of a vector to storage locations.
//
// An Index is an ordered bijection between a set of unique, comparable keys
// and the locations [0, Len()). Range is the identity index used by default;
// Hash supports arbitrary keys. Both are immutable once built; use Builder to
// derive a modified copy.
//
// Integer keys of every width are normalised to int so that 3, int32(3) and
// int64(3) address the same entry.
package index

import (
	"math"
	"reflect"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// Index is an immutable key to location mapping.
type Index interface {
	// Len returns the number of keys.
	Len() int
	// Location returns the location of key or a not_found error.
	Location(key any) (int, error)
	// Key returns the key at loc. It panics with an out_of_range *errors.Error
	// when loc is outside [0, Len()).
	Key(loc int) any
	// Contains reports whether key is present.
	Contains(key any) bool
	// Keys returns the keys in location order.
	Keys() []any
	// NewBuilder returns an empty builder.
	NewBuilder() *Builder
	// NewCopyBuilder returns a builder seeded with this index's keys.
	NewCopyBuilder() *Builder
}

// Equal reports whether a and b hold the same keys in the same order.
func Equal(a, b Index) bool {
	if a.Len() != b.Len() {
		return false
	}
	if _, ok := a.(Range); ok {
		if _, ok := b.(Range); ok {
			return true
		}
	}
	for i := 0; i < a.Len(); i++ {
		if a.Key(i) != b.Key(i) {
			return false
		}
	}
	return true
}

// Normalize returns the canonical form of key and validates it. Integer keys
// become int; nil, NaN and non-comparable keys are rejected.
func Normalize(key any) (any, error) {
	switch k := key.(type) {
	case nil:
		return nil, errors.New(errors.ErrorTypeValidation, "index key must not be nil")
	case int:
		return k, nil
	case int8:
		return int(k), nil
	case int16:
		return int(k), nil
	case int32:
		return int(k), nil
	case int64:
		return int(k), nil
	case uint8:
		return int(k), nil
	case uint16:
		return int(k), nil
	case uint32:
		return int(k), nil
	case uint:
		if k <= math.MaxInt {
			return int(k), nil
		}
	case uint64:
		if k <= math.MaxInt {
			return int(k), nil
		}
	case float64:
		if k != k {
			return nil, errors.New(errors.ErrorTypeValidation, "index key must not be NaN")
		}
	case float32:
		if k != k {
			return nil, errors.New(errors.ErrorTypeValidation, "index key must not be NaN")
		}
	}
	if !reflect.TypeOf(key).Comparable() {
		return nil, errors.Newf(errors.ErrorTypeValidation, "index key of type %T is not comparable", key)
	}
	return key, nil
}

func outOfRange(loc, n int) {
	if loc < 0 || loc >= n {
		panic(errors.OutOfRange(loc, n))
	}
}
