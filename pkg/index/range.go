package index

import "fmt"

// Range is the identity index over [0, n): key i lives at location i.
type Range struct {
	n int
}

// NewRange returns the identity index of size n.
func NewRange(n int) Range {
	if n < 0 {
		n = 0
	}
	return Range{n: n}
}

// Len implements Index.
func (r Range) Len() int { return r.n }

// Location implements Index.
func (r Range) Location(key any) (int, error) {
	k, err := Normalize(key)
	if err != nil {
		return 0, err
	}
	if i, ok := k.(int); ok && i >= 0 && i < r.n {
		return i, nil
	}
	return 0, notFound(key)
}

// Key implements Index.
func (r Range) Key(loc int) any {
	outOfRange(loc, r.n)
	return loc
}

// Contains implements Index.
func (r Range) Contains(key any) bool {
	_, err := r.Location(key)
	return err == nil
}

// Keys implements Index.
func (r Range) Keys() []any {
	keys := make([]any, r.n)
	for i := range keys {
		keys[i] = i
	}
	return keys
}

// NewBuilder implements Index.
func (r Range) NewBuilder() *Builder { return NewBuilder() }

// NewCopyBuilder implements Index.
func (r Range) NewCopyBuilder() *Builder { return &Builder{n: r.n} }

func (r Range) String() string { return fmt.Sprintf("Range[0, %d)", r.n) }
