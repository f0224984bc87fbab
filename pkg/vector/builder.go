package vector

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/index"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/reader"
)

// Builder stages values for a new Vector.
//
// A builder is either pinned to a Type, rejecting values that Type cannot
// hold, or inferring: the first non-NA value fixes a provisional Type and
// later values promote it as needed. Setting past the end grows the builder
// and leaves the gap NA. Build freezes the content; any later call fails
// with a state error.
//
// Builders are not safe for concurrent use.
type Builder struct {
	typ        Type
	infer      bool
	store      store
	size       int
	keys       *index.Builder
	built      bool
	promotions int
	logger     *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used to report promotions.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func newBuilder(t Type, infer bool, opts []BuilderOption) *Builder {
	b := &Builder{typ: t, infer: infer, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewInferringBuilder returns a builder that infers its Type from the values
// added to it. A builder that only ever sees NA builds an Object Vector.
func NewInferringBuilder(opts ...BuilderOption) *Builder {
	return newBuilder(Object, true, opts)
}

// Type returns the current Type. For an inferring builder it changes as
// values are added.
func (b *Builder) Type() Type { return b.typ }

// Len returns the high-water mark of written locations.
func (b *Builder) Len() int { return b.size }

// Promotions returns how many times the builder widened its Type.
func (b *Builder) Promotions() int { return b.promotions }

func (b *Builder) check() error {
	if b.built {
		return errors.BuilderClosed()
	}
	return nil
}

// Add appends v.
func (b *Builder) Add(v any) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.setAt(b.size, v)
}

// AddNA appends NA.
func (b *Builder) AddNA() error {
	if err := b.check(); err != nil {
		return err
	}
	return b.setNAAt(b.size)
}

// AddFrom appends the value at location loc of from.
func (b *Builder) AddFrom(from *Vector, loc int) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.SetFromAt(b.size, from, loc)
}

// SetAt stores v at loc, growing the builder when loc is past the end.
func (b *Builder) SetAt(loc int, v any) error {
	if err := b.check(); err != nil {
		return err
	}
	if loc < 0 {
		return errors.OutOfRange(loc, b.size)
	}
	return b.setAt(loc, v)
}

// SetNAAt stores NA at loc.
func (b *Builder) SetNAAt(loc int) error {
	if err := b.check(); err != nil {
		return err
	}
	if loc < 0 {
		return errors.OutOfRange(loc, b.size)
	}
	return b.setNAAt(loc)
}

// SetFromAt stores the value at fromLoc of from at loc.
func (b *Builder) SetFromAt(loc int, from *Vector, fromLoc int) error {
	if err := b.check(); err != nil {
		return err
	}
	if fromLoc < 0 || fromLoc >= from.Len() {
		return errors.OutOfRange(fromLoc, from.Len())
	}
	if loc < 0 {
		return errors.OutOfRange(loc, b.size)
	}
	if from.col.IsNA(fromLoc) {
		return b.setNAAt(loc)
	}
	return b.setAt(loc, from.col.Get(fromLoc))
}

// Set stores v under key. An unknown key is appended.
func (b *Builder) Set(key any, v any) error {
	if err := b.check(); err != nil {
		return err
	}
	if !na.Is(v) {
		if err := b.accept(TypeOf(v)); err != nil {
			return err
		}
	}
	loc, err := b.keyed().GetOrAdd(key)
	if err != nil {
		return err
	}
	return b.setAt(loc, v)
}

// SetNA stores NA under key. An unknown key is appended.
func (b *Builder) SetNA(key any) error {
	if err := b.check(); err != nil {
		return err
	}
	loc, err := b.keyed().GetOrAdd(key)
	if err != nil {
		return err
	}
	return b.setNAAt(loc)
}

// Swap exchanges the values, and keys when present, at locations i and j.
func (b *Builder) Swap(i, j int) error {
	if err := b.check(); err != nil {
		return err
	}
	if err := b.inRange(i); err != nil {
		return err
	}
	if err := b.inRange(j); err != nil {
		return err
	}
	if b.store != nil {
		b.store.swap(i, j)
	}
	if b.keys != nil {
		b.keys.Swap(i, j)
	}
	return nil
}

// RemoveAt removes location loc, shifting later values down.
func (b *Builder) RemoveAt(loc int) error {
	if err := b.check(); err != nil {
		return err
	}
	if err := b.inRange(loc); err != nil {
		return err
	}
	if b.store != nil {
		b.store.removeAt(loc)
	}
	if b.keys != nil {
		b.keys.RemoveAt(loc)
	}
	b.size--
	return nil
}

// Read appends the next field of entry.
func (b *Builder) Read(entry reader.DataEntry) error {
	if err := b.check(); err != nil {
		return err
	}
	return readEntry(b, entry)
}

// ReadAll appends every remaining field of entry.
func (b *Builder) ReadAll(entry reader.DataEntry) error {
	for entry.HasNext() {
		if err := b.Read(entry); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the staged Vector. The builder cannot be used afterwards.
func (b *Builder) Build() (*Vector, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	b.built = true
	if b.store == nil {
		b.store = newStore(b.typ, b.size)
	}
	b.store.grow(b.size)

	var idx index.Index = index.NewRange(b.size)
	if b.keys != nil {
		idx = b.keys.Build()
	}
	v := &Vector{typ: b.typ, col: b.store.clip(b.size), idx: idx}
	b.store, b.keys = nil, nil
	return v, nil
}

func (b *Builder) inRange(loc int) error {
	if loc < 0 || loc >= b.size {
		return errors.OutOfRange(loc, b.size)
	}
	return nil
}

// keyed switches the builder to explicit keys, seeding them with the
// locations written so far.
func (b *Builder) keyed() *index.Builder {
	if b.keys == nil {
		b.keys = index.NewRange(b.size).NewCopyBuilder()
	}
	return b.keys
}

// accept makes the builder able to store a value of type vt, creating the
// store or promoting as needed.
func (b *Builder) accept(vt Type) error {
	if b.store == nil {
		b.typ = vt
		b.store = newStore(vt, b.size)
		return nil
	}
	if b.typ.CanHold(vt) {
		return nil
	}
	if !b.infer {
		return errors.IllegalType(b.typ.String(), vt.String())
	}
	return promote(b, Promote(b.typ, vt))
}

func (b *Builder) setAt(loc int, v any) error {
	if na.Is(v) {
		return b.setNAAt(loc)
	}
	if err := b.accept(TypeOf(v)); err != nil {
		return err
	}
	grow(b, loc+1)
	if err := b.store.Set(loc, v); err != nil {
		return err
	}
	b.mark(loc)
	return nil
}

func (b *Builder) setNAAt(loc int) error {
	if b.store != nil {
		grow(b, loc+1)
		b.store.SetNA(loc)
	}
	b.mark(loc)
	return nil
}

// mark raises the high-water mark to include loc.
func (b *Builder) mark(loc int) {
	if loc < b.size {
		return
	}
	if b.keys != nil {
		b.keys.Extend(loc + 1 - b.keys.Len())
	}
	b.size = loc + 1
}

// grow ensures the store has room for required values. Capacity grows to
// max(1.5*old+1, required); new slots are NA.
func grow(b *Builder, required int) {
	old := b.store.Len()
	if required <= old {
		return
	}
	capacity := old*3/2 + 1
	if capacity < required {
		capacity = required
	}
	b.store.grow(capacity)
}

// promote rebuilds the staged values in type to. NA stays NA.
func promote(b *Builder, to Type) error {
	next := newStore(to, b.store.Len())
	for i := 0; i < b.size; i++ {
		if b.store.IsNA(i) {
			continue
		}
		if err := next.Set(i, b.store.Get(i)); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "promotion lost a value")
		}
	}
	b.logger.Debug("promoted builder",
		zap.Stringer("from", b.typ),
		to.logField(),
		zap.Int("size", b.size))
	b.typ = to
	b.store = next
	b.promotions++
	return nil
}

// readEntry pulls one field from entry. Pinned builders use the typed,
// NA-aware reads; inferring builders take the parsed field as is.
func readEntry(b *Builder, entry reader.DataEntry) error {
	if !entry.HasNext() {
		return errors.New(errors.ErrorTypeData, "entry has no more fields")
	}
	if b.infer {
		v, err := entry.Next()
		if err != nil {
			return err
		}
		return b.setAt(b.size, v)
	}
	switch b.typ {
	case Logical:
		return b.setAt(b.size, entry.NextLogical())
	case Int:
		return b.setAt(b.size, entry.NextInt())
	case Long:
		return b.setAt(b.size, entry.NextLong())
	case Float:
		return b.setAt(b.size, entry.NextFloat())
	case Double:
		return b.setAt(b.size, entry.NextDouble())
	case Complex:
		return b.setAt(b.size, entry.NextComplex())
	case String:
		if s, ok := entry.NextString(); ok {
			return b.setAt(b.size, s)
		}
		return b.setNAAt(b.size)
	}
	v, err := entry.Next()
	if err != nil {
		return err
	}
	return b.setAt(b.size, v)
}
