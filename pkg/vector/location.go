package vector

import (
	"github.com/ajitpratap0/serieskit/pkg/convert"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// Location is the positional facade of a Vector. Reads outside [0, Len())
// panic with an out_of_range *errors.Error.
type Location struct {
	v *Vector
}

// Loc returns the positional facade of v.
func (v *Vector) Loc() Location { return Location{v: v} }

// Get returns the value at i.
func (l Location) Get(i int) any {
	l.v.checkLoc(i)
	return l.v.col.Get(i)
}

// IsNA reports whether the value at i is NA.
func (l Location) IsNA(i int) bool {
	l.v.checkLoc(i)
	return l.v.col.IsNA(i)
}

// Set stores x at i.
func (l Location) Set(i int, x any) error {
	if i < 0 || i >= l.v.Len() {
		return errors.OutOfRange(i, l.v.Len())
	}
	return l.v.set(i, x)
}

// SetNA stores NA at i.
func (l Location) SetNA(i int) error {
	if i < 0 || i >= l.v.Len() {
		return errors.OutOfRange(i, l.v.Len())
	}
	l.v.col.SetNA(i)
	return nil
}

// Double returns the value at i as float64. Values that do not convert read
// as NA.
func (l Location) Double(i int) float64 {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[float64]); ok {
		return d.data[i]
	}
	if f, ok := convert.ToFloat64(l.v.col.Get(i)); ok {
		return f
	}
	return na.Float64
}

// Float returns the value at i as float32.
func (l Location) Float(i int) float32 {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[float32]); ok {
		return d.data[i]
	}
	if f, ok := convert.ToFloat32(l.v.col.Get(i)); ok {
		return f
	}
	return na.Float32
}

// Int returns the value at i as int32.
func (l Location) Int(i int) int32 {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[int32]); ok {
		return d.data[i]
	}
	if n, ok := convert.ToInt32(l.v.col.Get(i)); ok {
		return n
	}
	return na.Int32
}

// Long returns the value at i as int64.
func (l Location) Long(i int) int64 {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[int64]); ok {
		return d.data[i]
	}
	if n, ok := convert.ToInt64(l.v.col.Get(i)); ok {
		return n
	}
	return na.Int64
}

// Logical returns the value at i as a Logical.
func (l Location) Logical(i int) na.Logical {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[na.Logical]); ok {
		return d.data[i]
	}
	if b, ok := convert.ToLogical(l.v.col.Get(i)); ok {
		return b
	}
	return na.LogicalNA
}

// Complex returns the value at i as complex128.
func (l Location) Complex(i int) complex128 {
	l.v.checkLoc(i)
	if d, ok := l.v.col.(*dense[complex128]); ok {
		return d.data[i]
	}
	if c, ok := convert.ToComplex128(l.v.col.Get(i)); ok {
		return c
	}
	return na.Complex128
}

// Text returns the value at i as a string and false when it is NA. Non-string
// values are printed.
func (l Location) Text(i int) (string, bool) {
	l.v.checkLoc(i)
	x := l.v.col.Get(i)
	if na.Is(x) {
		return "", false
	}
	if s, ok := x.(string); ok {
		return s, true
	}
	return na.String(x), true
}
