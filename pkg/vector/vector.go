// Package vector implements typed, missing-value aware columns.
//
// A Vector is an ordered sequence of values of one Type addressed two ways:
// by key through its Index (Get, Set) and by location through Loc(). Every
// location holds either a value or the Type's NA.
//
// A Vector either owns its storage (Transferable) or is a view over another
// Vector's storage. Writes through a view reach the owner; use ToOwned to get
// an independent copy. Builders created from a Vector always copy.
package vector

import (
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/index"
)

// Vector is a typed column with an index.
type Vector struct {
	typ Type
	col column
	idx index.Index
}

// Len returns the number of values.
func (v *Vector) Len() int { return v.col.Len() }

// Type returns the storage Type.
func (v *Vector) Type() Type { return v.typ }

// Index returns the key index.
func (v *Vector) Index() index.Index { return v.idx }

// Transferable reports whether v owns its storage and may be handed
// elsewhere without copying.
func (v *Vector) Transferable() bool {
	_, owned := v.col.(store)
	return owned
}

// Get returns the value stored under key.
func (v *Vector) Get(key any) (any, error) {
	loc, err := v.idx.Location(key)
	if err != nil {
		return nil, err
	}
	return v.col.Get(loc), nil
}

// Set stores x under key. The key must exist.
func (v *Vector) Set(key any, x any) error {
	loc, err := v.idx.Location(key)
	if err != nil {
		return err
	}
	return v.set(loc, x)
}

// IsNAKey reports whether the value under key is NA.
func (v *Vector) IsNAKey(key any) (bool, error) {
	loc, err := v.idx.Location(key)
	if err != nil {
		return false, err
	}
	return v.col.IsNA(loc), nil
}

func (v *Vector) set(loc int, x any) error {
	if vt := TypeOf(x); !v.typ.IsNA(x) && !v.typ.CanHold(vt) {
		return errors.IllegalType(v.typ.String(), vt.String())
	}
	return v.col.Set(loc, x)
}

func (v *Vector) checkLoc(loc int) {
	if loc < 0 || loc >= v.col.Len() {
		panic(errors.OutOfRange(loc, v.col.Len()))
	}
}

// Compare orders the values at locations i and j under the Type's order.
func (v *Vector) Compare(i, j int) int {
	v.checkLoc(i)
	v.checkLoc(j)
	return v.col.Compare(i, j)
}

// CompareWith orders the value at i against the value at j of other, using
// the order of the least Type that holds both.
func (v *Vector) CompareWith(i int, other *Vector, j int) int {
	v.checkLoc(i)
	other.checkLoc(j)
	return Promote(v.typ, other.typ).Compare(v.col.Get(i), other.col.Get(j))
}

// WithIndex returns a vector sharing v's storage under a different index.
// The result is a view and not Transferable.
func (v *Vector) WithIndex(idx index.Index) (*Vector, error) {
	if idx.Len() != v.Len() {
		return nil, errors.SizeMismatch(v.Len(), idx.Len())
	}
	return &Vector{typ: v.typ, col: newView(v.col, nil), idx: idx}, nil
}

// ToOwned returns an independent copy of v.
func (v *Vector) ToOwned() *Vector {
	return &Vector{typ: v.typ, col: v.col.Take(identity(v.Len())), idx: v.idx}
}

// NewBuilder returns an empty builder of v's Type.
func (v *Vector) NewBuilder(opts ...BuilderOption) *Builder {
	return v.typ.NewBuilder(opts...)
}

// NewCopyBuilder returns a builder of v's Type seeded with a copy of v's
// values and keys. Changes to the builder are never visible through v.
func (v *Vector) NewCopyBuilder(opts ...BuilderOption) *Builder {
	b := newBuilder(v.typ, false, opts)
	b.store = v.col.Take(identity(v.Len()))
	b.size = v.Len()
	if _, ok := v.idx.(index.Range); !ok {
		b.keys = v.idx.NewCopyBuilder()
	}
	return b
}

// Values returns the values in location order. NA is the Type's NA.
func (v *Vector) Values() []any {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.col.Get(i)
	}
	return out
}

// CountNA returns the number of NA values.
func (v *Vector) CountNA() int {
	n := 0
	for i := 0; i < v.Len(); i++ {
		if v.col.IsNA(i) {
			n++
		}
	}
	return n
}

// Equal reports whether a and b have the same Type, keys and values. NA
// equals NA.
func Equal(a, b *Vector) bool {
	if a.typ != b.typ || a.Len() != b.Len() || !index.Equal(a.idx, b.idx) {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.typ.Compare(a.col.Get(i), b.col.Get(i)) != 0 {
			return false
		}
	}
	return true
}

func identity(n int) []int {
	locs := make([]int, n)
	for i := range locs {
		locs[i] = i
	}
	return locs
}
