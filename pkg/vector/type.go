package vector

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// Type is the storage class of a Vector. The set of types is closed.
type Type uint8

const (
	// Object stores arbitrary values boxed; nil is NA.
	Object Type = iota
	// Logical stores na.Logical.
	Logical
	// Int stores int32.
	Int
	// Long stores int64.
	Long
	// Float stores float32.
	Float
	// Double stores float64.
	Double
	// Complex stores complex128.
	Complex
	// String stores strings boxed; nil is NA.
	String
)

// Types lists every Type in declaration order.
var Types = []Type{Object, Logical, Int, Long, Float, Double, Complex, String}

var typeNames = [...]string{
	Object:  "object",
	Logical: "logical",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Complex: "complex",
	String:  "string",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType returns the Type with the given name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Object, errors.Newf(errors.ErrorTypeValidation, "unknown type %q", name)
}

var (
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
	logicalType = reflect.TypeOf(na.Logical(0))
	stringType  = reflect.TypeOf("")
)

var hostTypes = [...]reflect.Type{
	Object:  anyType,
	Logical: logicalType,
	Int:     reflect.TypeOf(int32(0)),
	Long:    reflect.TypeOf(int64(0)),
	Float:   reflect.TypeOf(float32(0)),
	Double:  reflect.TypeOf(float64(0)),
	Complex: reflect.TypeOf(complex128(0)),
	String:  stringType,
}

// HostType returns the Go type of a single stored element.
func (t Type) HostType() reflect.Type { return hostTypes[t] }

// resolved is the static host type table. Types absent from it are Object.
var resolved = map[reflect.Type]Type{
	reflect.TypeOf(int8(0)):       Int,
	reflect.TypeOf(int16(0)):      Int,
	reflect.TypeOf(int32(0)):      Int,
	reflect.TypeOf(uint8(0)):      Int,
	reflect.TypeOf(uint16(0)):     Int,
	reflect.TypeOf(int(0)):        Long,
	reflect.TypeOf(int64(0)):      Long,
	reflect.TypeOf(uint32(0)):     Long,
	reflect.TypeOf(float32(0)):    Float,
	reflect.TypeOf(float64(0)):    Double,
	reflect.TypeOf(complex64(0)):  Complex,
	reflect.TypeOf(complex128(0)): Complex,
	reflect.TypeOf(false):         Logical,
	logicalType:                   Logical,
	stringType:                    String,
}

// Resolve maps a host type to its Type. It is total: nil and every type
// without a dedicated storage class resolve to Object.
func Resolve(t reflect.Type) Type {
	if t == nil {
		return Object
	}
	if typ, ok := resolved[t]; ok {
		return typ
	}
	return Object
}

// TypeOf resolves the Type of a value. nil resolves to Object.
func TypeOf(v any) Type {
	return Resolve(reflect.TypeOf(v))
}

func isNumeric(t Type) bool {
	return t == Int || t == Long || t == Float || t == Double || t == Complex
}

// Promote returns the least Type that can represent values of both a and b.
// Numeric types widen along Int, Long, Double, Complex with Float joining at
// Double; every other mixed pair becomes Object.
func Promote(a, b Type) Type {
	if a == b {
		return a
	}
	if !isNumeric(a) || !isNumeric(b) {
		return Object
	}
	if a == Float || b == Float {
		other := a
		if a == Float {
			other = b
		}
		if other == Complex {
			return Complex
		}
		return Double
	}
	if a > b {
		return a
	}
	return b
}

// CanHold reports whether values of type u can be stored in a t column
// without changing t.
func (t Type) CanHold(u Type) bool {
	return Promote(t, u) == t
}

// NA returns the missing value of t.
func (t Type) NA() any {
	switch t {
	case Logical:
		return na.LogicalNA
	case Int:
		return na.Int32
	case Long:
		return na.Int64
	case Float:
		return na.Float32
	case Double:
		return na.Float64
	case Complex:
		return na.Complex128
	}
	return nil
}

// IsNA reports whether v is NA.
func (t Type) IsNA(v any) bool { return na.Is(v) }

// Convert returns v in t's element representation. A value whose Type t
// cannot hold fails with an illegal_type error; NA converts to t.NA().
func (t Type) Convert(v any) (any, error) {
	if na.Is(v) {
		return t.NA(), nil
	}
	if vt := TypeOf(v); !t.CanHold(vt) {
		return nil, errors.IllegalType(t.String(), vt.String())
	}
	switch t {
	case Object:
		return v, nil
	case Logical:
		return convertWith(logicalCodec, v)
	case Int:
		return convertWith(intCodec, v)
	case Long:
		return convertWith(longCodec, v)
	case Float:
		return convertWith(floatCodec, v)
	case Double:
		return convertWith(doubleCodec, v)
	case Complex:
		return convertWith(complexCodec, v)
	}
	return convertWith(stringCodec, v)
}

func convertWith[T any](c *codec[T], v any) (any, error) {
	x, ok := c.from(v)
	if !ok {
		return nil, errors.IllegalType(c.typ.String(), fmt.Sprintf("%T", v))
	}
	return x, nil
}

// Compare orders a and b under t: NA is greater than every value and equal
// to itself. Values t cannot hold are ordered as objects.
func (t Type) Compare(a, b any) int {
	switch t {
	case Logical:
		return compareBoxed(logicalCodec, a, b)
	case Int:
		return compareBoxed(intCodec, a, b)
	case Long:
		return compareBoxed(longCodec, a, b)
	case Float:
		return compareBoxed(floatCodec, a, b)
	case Double:
		return compareBoxed(doubleCodec, a, b)
	case Complex:
		return compareBoxed(complexCodec, a, b)
	case String:
		return compareBoxed(stringCodec, a, b)
	}
	return compareBoxed(objectCodec, a, b)
}

// NewBuilder returns an empty builder pinned to t.
func (t Type) NewBuilder(opts ...BuilderOption) *Builder {
	return t.NewBuilderWithCapacity(0, opts...)
}

// NewBuilderWithCapacity returns an empty builder pinned to t with room for
// capacity values before reallocating.
func (t Type) NewBuilderWithCapacity(capacity int, opts ...BuilderOption) *Builder {
	b := newBuilder(t, false, opts)
	b.store = newStore(t, capacity)
	return b
}

// NewBuilderOfSize returns a builder pinned to t holding size NA values.
func (t Type) NewBuilderOfSize(size int, opts ...BuilderOption) *Builder {
	b := t.NewBuilderWithCapacity(size, opts...)
	b.size = size
	return b
}

func (t Type) logField() zap.Field { return zap.Stringer("type", t) }
