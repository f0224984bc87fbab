package index

import (
	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// Builder accumulates keys for a new Index.
//
// A builder starts in range mode, where it only counts keys 0, 1, 2, ...
// The first key that breaks that sequence (or a Swap / interior RemoveAt)
// materialises the keys and switches to hash mode. A builder that never
// leaves range mode builds a Range.
type Builder struct {
	n    int
	keys []any
	pos  map[any]int
}

// NewBuilder returns an empty builder in range mode.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of keys added so far.
func (b *Builder) Len() int {
	if b.pos != nil {
		return len(b.keys)
	}
	return b.n
}

func (b *Builder) hashed() bool { return b.pos != nil }

func (b *Builder) upgrade() {
	if b.hashed() {
		return
	}
	b.keys = make([]any, b.n, b.n+b.n/2+1)
	b.pos = make(map[any]int, b.n)
	for i := 0; i < b.n; i++ {
		b.keys[i] = i
		b.pos[i] = i
	}
	b.n = 0
}

// Add appends key. It fails with a conflict error when key is present.
func (b *Builder) Add(key any) error {
	k, err := Normalize(key)
	if err != nil {
		return err
	}
	if !b.hashed() {
		if i, ok := k.(int); ok && i == b.n {
			b.n++
			return nil
		}
		if i, ok := k.(int); ok && i >= 0 && i < b.n {
			return errors.DuplicateKey(key)
		}
		b.upgrade()
	}
	if _, dup := b.pos[k]; dup {
		return errors.DuplicateKey(key)
	}
	b.pos[k] = len(b.keys)
	b.keys = append(b.keys, k)
	return nil
}

// GetOrAdd returns the location of key, appending it first when absent.
func (b *Builder) GetOrAdd(key any) (int, error) {
	loc, err := b.Location(key)
	if err == nil {
		return loc, nil
	}
	if !errors.IsType(err, errors.ErrorTypeNotFound) {
		return 0, err
	}
	if err := b.Add(key); err != nil {
		return 0, err
	}
	return b.Len() - 1, nil
}

// Extend appends count keys. Each new key is its location, or in hash mode
// the next integer after that not yet present, so Extend never conflicts
// with keys added explicitly.
func (b *Builder) Extend(count int) {
	if !b.hashed() {
		b.n += count
		return
	}
	next := len(b.keys)
	for i := 0; i < count; i++ {
		for b.taken(next) {
			next++
		}
		b.pos[next] = len(b.keys)
		b.keys = append(b.keys, next)
		next++
	}
}

func (b *Builder) taken(key int) bool {
	_, ok := b.pos[key]
	return ok
}

// Location returns the location of key.
func (b *Builder) Location(key any) (int, error) {
	k, err := Normalize(key)
	if err != nil {
		return 0, err
	}
	if !b.hashed() {
		if i, ok := k.(int); ok && i >= 0 && i < b.n {
			return i, nil
		}
		return 0, notFound(key)
	}
	if loc, ok := b.pos[k]; ok {
		return loc, nil
	}
	return 0, notFound(key)
}

// Key returns the key at loc.
func (b *Builder) Key(loc int) any {
	outOfRange(loc, b.Len())
	if !b.hashed() {
		return loc
	}
	return b.keys[loc]
}

// Swap exchanges the keys at locations i and j.
func (b *Builder) Swap(i, j int) {
	n := b.Len()
	outOfRange(i, n)
	outOfRange(j, n)
	if i == j {
		return
	}
	b.upgrade()
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.pos[b.keys[i]] = i
	b.pos[b.keys[j]] = j
}

// RemoveAt removes the key at loc, shifting later keys down by one.
func (b *Builder) RemoveAt(loc int) {
	outOfRange(loc, b.Len())
	if !b.hashed() && loc == b.n-1 {
		b.n--
		return
	}
	b.upgrade()
	delete(b.pos, b.keys[loc])
	b.keys = append(b.keys[:loc], b.keys[loc+1:]...)
	for i := loc; i < len(b.keys); i++ {
		b.pos[b.keys[i]] = i
	}
}

// Build returns the index and resets the builder.
func (b *Builder) Build() Index {
	if !b.hashed() {
		r := NewRange(b.n)
		b.n = 0
		return r
	}
	return b.buildHash()
}

func (b *Builder) buildHash() *Hash {
	if !b.hashed() {
		b.upgrade()
	}
	h := &Hash{keys: b.keys, pos: b.pos}
	b.keys, b.pos, b.n = nil, nil, 0
	return h
}
