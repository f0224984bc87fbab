package index

import (
	"fmt"

	"github.com/ajitpratap0/serieskit/pkg/errors"
)

// Hash indexes arbitrary comparable keys through a map.
type Hash struct {
	keys []any
	pos  map[any]int
}

// NewHash builds a hash index over keys in the given order. Duplicate or
// invalid keys are rejected.
func NewHash(keys ...any) (*Hash, error) {
	b := NewBuilder()
	for _, k := range keys {
		if err := b.Add(k); err != nil {
			return nil, err
		}
	}
	return b.buildHash(), nil
}

// Len implements Index.
func (h *Hash) Len() int { return len(h.keys) }

// Location implements Index.
func (h *Hash) Location(key any) (int, error) {
	k, err := Normalize(key)
	if err != nil {
		return 0, err
	}
	if loc, ok := h.pos[k]; ok {
		return loc, nil
	}
	return 0, notFound(key)
}

// Key implements Index.
func (h *Hash) Key(loc int) any {
	outOfRange(loc, len(h.keys))
	return h.keys[loc]
}

// Contains implements Index.
func (h *Hash) Contains(key any) bool {
	_, err := h.Location(key)
	return err == nil
}

// Keys implements Index.
func (h *Hash) Keys() []any {
	return append([]any(nil), h.keys...)
}

// NewBuilder implements Index.
func (h *Hash) NewBuilder() *Builder { return NewBuilder() }

// NewCopyBuilder implements Index.
func (h *Hash) NewCopyBuilder() *Builder {
	b := &Builder{
		keys: append(make([]any, 0, len(h.keys)), h.keys...),
		pos:  make(map[any]int, len(h.pos)),
	}
	for k, v := range h.pos {
		b.pos[k] = v
	}
	return b
}

func (h *Hash) String() string { return fmt.Sprintf("Hash(len=%d)", len(h.keys)) }

func notFound(key any) error {
	return errors.NoSuchElement(key)
}
