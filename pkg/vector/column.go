package vector

import (
	"fmt"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// column is the storage behind a Vector: either an owned dense array or a
// view routing reads and writes to another column.
type column interface {
	Len() int
	Get(i int) any
	IsNA(i int) bool
	// Set stores v, which must be NA or a value the column's Type can hold.
	Set(i int, v any) error
	SetNA(i int)
	Compare(i, j int) int
	// Take copies the values at locs into a new owned store. A negative
	// location yields NA.
	Take(locs []int) store
}

// store is an owned, contiguous column that a Builder can grow in place.
type store interface {
	column
	grow(capacity int)
	swap(i, j int)
	removeAt(i int)
	clip(n int) store
}

// dense is the owned storage for every Type.
type dense[T any] struct {
	c    *codec[T]
	data []T
}

func newDense[T any](c *codec[T], n int) *dense[T] {
	d := &dense[T]{c: c, data: make([]T, n)}
	d.fill(0, n)
	return d
}

func (d *dense[T]) fill(from, to int) {
	for i := from; i < to; i++ {
		d.data[i] = d.c.na
	}
}

func newStore(t Type, n int) store {
	switch t {
	case Logical:
		return newDense(logicalCodec, n)
	case Int:
		return newDense(intCodec, n)
	case Long:
		return newDense(longCodec, n)
	case Float:
		return newDense(floatCodec, n)
	case Double:
		return newDense(doubleCodec, n)
	case Complex:
		return newDense(complexCodec, n)
	case String:
		return newDense(stringCodec, n)
	}
	return newDense(objectCodec, n)
}

func (d *dense[T]) Len() int { return len(d.data) }

func (d *dense[T]) Get(i int) any { return d.data[i] }

func (d *dense[T]) IsNA(i int) bool { return d.c.isNA(d.data[i]) }

func (d *dense[T]) Set(i int, v any) error {
	if na.Is(v) {
		d.data[i] = d.c.na
		return nil
	}
	x, ok := d.c.from(v)
	if !ok {
		return errors.IllegalType(d.c.typ.String(), fmt.Sprintf("%T", v))
	}
	d.data[i] = x
	return nil
}

func (d *dense[T]) SetNA(i int) { d.data[i] = d.c.na }

func (d *dense[T]) Compare(i, j int) int { return d.c.compare(d.data[i], d.data[j]) }

func (d *dense[T]) Take(locs []int) store {
	out := &dense[T]{c: d.c, data: make([]T, len(locs))}
	for i, loc := range locs {
		if loc < 0 {
			out.data[i] = d.c.na
			continue
		}
		out.data[i] = d.data[loc]
	}
	return out
}

func (d *dense[T]) grow(capacity int) {
	if capacity <= len(d.data) {
		return
	}
	old := len(d.data)
	next := make([]T, capacity)
	copy(next, d.data)
	d.data = next
	d.fill(old, capacity)
}

func (d *dense[T]) swap(i, j int) { d.data[i], d.data[j] = d.data[j], d.data[i] }

// removeAt shifts the tail left and leaves NA in the freed last slot.
func (d *dense[T]) removeAt(i int) {
	copy(d.data[i:], d.data[i+1:])
	d.data[len(d.data)-1] = d.c.na
}

func (d *dense[T]) clip(n int) store {
	return &dense[T]{c: d.c, data: d.data[:n:n]}
}

// view reads and writes through owner. locs maps view locations to owner
// locations; nil is the identity.
type view struct {
	owner store
	locs  []int
}

func newView(owner column, locs []int) *view {
	if v, ok := owner.(*view); ok {
		if locs == nil {
			return &view{owner: v.owner, locs: v.locs}
		}
		if v.locs != nil {
			mapped := make([]int, len(locs))
			for i, l := range locs {
				mapped[i] = v.locs[l]
			}
			locs = mapped
		}
		return &view{owner: v.owner, locs: locs}
	}
	return &view{owner: owner.(store), locs: locs}
}

func (v *view) loc(i int) int {
	if v.locs == nil {
		return i
	}
	return v.locs[i]
}

func (v *view) Len() int {
	if v.locs == nil {
		return v.owner.Len()
	}
	return len(v.locs)
}

func (v *view) Get(i int) any { return v.owner.Get(v.loc(i)) }

func (v *view) IsNA(i int) bool { return v.owner.IsNA(v.loc(i)) }

func (v *view) Set(i int, x any) error { return v.owner.Set(v.loc(i), x) }

func (v *view) SetNA(i int) { v.owner.SetNA(v.loc(i)) }

func (v *view) Compare(i, j int) int { return v.owner.Compare(v.loc(i), v.loc(j)) }

func (v *view) Take(locs []int) store {
	mapped := make([]int, len(locs))
	for i, l := range locs {
		if l < 0 {
			mapped[i] = -1
			continue
		}
		mapped[i] = v.loc(l)
	}
	return v.owner.Take(mapped)
}
