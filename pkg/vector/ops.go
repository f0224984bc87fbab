package vector

import (
	"math/rand"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/index"
)

// SortOrder is the direction of Sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Sort returns an owned copy of v ordered by the Type's order. The sort is
// stable. NA sorts last ascending and first descending, since Descending
// reverses the whole order.
func (v *Vector) Sort(order SortOrder) *Vector {
	perm := identity(v.Len())
	slices.SortStableFunc(perm, func(a, b int) int {
		c := v.col.Compare(a, b)
		if order == Descending {
			return -c
		}
		return c
	})
	return v.take(perm, true)
}

// Argsort returns the locations of v in sorted order.
func (v *Vector) Argsort(order SortOrder) []int {
	perm := identity(v.Len())
	slices.SortStableFunc(perm, func(a, b int) int {
		c := v.col.Compare(a, b)
		if order == Descending {
			return -c
		}
		return c
	})
	return perm
}

// Selection returns the locations whose value satisfies pred.
func (v *Vector) Selection(pred func(x any) bool) *roaring.Bitmap {
	bm := roaring.New()
	for i := 0; i < v.Len(); i++ {
		if pred(v.col.Get(i)) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Select returns an owned copy of the locations in mask, keeping their keys.
func (v *Vector) Select(mask *roaring.Bitmap) *Vector {
	locs := make([]int, 0, mask.GetCardinality())
	it := mask.Iterator()
	for it.HasNext() {
		loc := int(it.Next())
		if loc >= v.Len() {
			break
		}
		locs = append(locs, loc)
	}
	return v.take(locs, true)
}

// Where returns the subsequence of values satisfying pred.
func (v *Vector) Where(pred func(x any) bool) *Vector {
	return v.Select(v.Selection(pred))
}

// Take returns a view of the given locations, keeping their keys. When locs
// repeats a location the keys would no longer be unique, so the result is
// indexed by position instead.
func (v *Vector) Take(locs []int) *Vector {
	for _, l := range locs {
		v.checkLoc(l)
	}
	return v.take(locs, false)
}

// Slice returns a view of locations [from, to).
func (v *Vector) Slice(from, to int) *Vector {
	if from < 0 || to > v.Len() || from > to {
		panic(errors.OutOfRange(to, v.Len()))
	}
	locs := make([]int, to-from)
	for i := range locs {
		locs[i] = from + i
	}
	return v.take(locs, false)
}

// Head returns a view of the first n values, or all of them when n exceeds
// the length.
func (v *Vector) Head(n int) *Vector {
	if n > v.Len() {
		n = v.Len()
	}
	if n < 0 {
		n = 0
	}
	return v.Slice(0, n)
}

// take gathers locs with their keys. owned copies the values; otherwise the
// result is a view.
func (v *Vector) take(locs []int, owned bool) *Vector {
	var col column
	if owned {
		col = v.col.Take(locs)
	} else {
		col = newView(v.col, locs)
	}
	return &Vector{typ: v.typ, col: col, idx: gatherKeys(v.idx, locs)}
}

// gatherKeys builds the index of the keys at locs. Keys that stay a dense
// 0..n-1 run collapse to a Range, and a repeated key gives a Range over locs.
func gatherKeys(idx index.Index, locs []int) index.Index {
	b := idx.NewBuilder()
	for _, l := range locs {
		if err := b.Add(idx.Key(l)); err != nil {
			return index.NewRange(len(locs))
		}
	}
	return b.Build()
}

// Reindex returns an owned vector laid out by idx. Keys of idx that v lacks
// hold NA.
func (v *Vector) Reindex(idx index.Index) *Vector {
	locs := make([]int, idx.Len())
	for i := range locs {
		loc, err := v.idx.Location(idx.Key(i))
		if err != nil {
			loc = -1
		}
		locs[i] = loc
	}
	return &Vector{typ: v.typ, col: v.col.Take(locs), idx: idx}
}

// Drop returns an owned copy of v without key. Dropping an absent key fails
// with a not_found error.
func (v *Vector) Drop(key any) (*Vector, error) {
	loc, err := v.idx.Location(key)
	if err != nil {
		return nil, err
	}
	locs := make([]int, 0, v.Len()-1)
	for i := 0; i < v.Len(); i++ {
		if i != loc {
			locs = append(locs, i)
		}
	}
	keys := v.idx.NewCopyBuilder()
	keys.RemoveAt(loc)
	return &Vector{typ: v.typ, col: v.col.Take(locs), idx: keys.Build()}, nil
}

// Shuffle returns an owned copy of v in a random order drawn from rng.
func (v *Vector) Shuffle(rng *rand.Rand) *Vector {
	return v.take(rng.Perm(v.Len()), true)
}

// Combine appends b to a. The result Type is the promotion of both Types;
// keys must not overlap unless both vectors use the default index.
func Combine(a, b *Vector, opts ...BuilderOption) (*Vector, error) {
	t := Promote(a.typ, b.typ)
	out := t.NewBuilderWithCapacity(a.Len()+b.Len(), opts...)
	_, ra := a.idx.(index.Range)
	_, rb := b.idx.(index.Range)
	for _, src := range []*Vector{a, b} {
		for i := 0; i < src.Len(); i++ {
			var err error
			if ra && rb {
				err = out.AddFrom(src, i)
			} else {
				err = out.Set(src.idx.Key(i), src.col.Get(i))
			}
			if err != nil {
				return nil, err
			}
		}
	}
	if !(ra && rb) && out.Len() != a.Len()+b.Len() {
		return nil, errors.New(errors.ErrorTypeConflict, "combined vectors share keys")
	}
	return out.Build()
}

// ToFloat64s returns the values as float64, with NA as the float64 NA. Values
// that do not convert read as NA.
func (v *Vector) ToFloat64s() []float64 {
	out := make([]float64, v.Len())
	loc := v.Loc()
	for i := range out {
		out[i] = loc.Double(i)
	}
	return out
}
