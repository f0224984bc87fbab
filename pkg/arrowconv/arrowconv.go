// Package arrowconv converts vectors and column stores to and from Apache
// Arrow arrays, records and IPC files. NA maps to an Arrow null in both
// directions.
//
// Type mapping:
//
//	logical  boolean
//	int      int32
//	long     int64
//	float    float32
//	double   float64
//	complex  struct<re: float64, im: float64>
//	string   utf8
//	object   utf8 (values printed)
//
// Object columns are exported by printing each value and come back as
// string vectors.
package arrowconv

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

var complexType = arrow.StructOf(
	arrow.Field{Name: "re", Type: arrow.PrimitiveTypes.Float64},
	arrow.Field{Name: "im", Type: arrow.PrimitiveTypes.Float64},
)

// DataType returns the Arrow type a vector of Type t exports as.
func DataType(t vector.Type) arrow.DataType {
	switch t {
	case vector.Logical:
		return arrow.FixedWidthTypes.Boolean
	case vector.Int:
		return arrow.PrimitiveTypes.Int32
	case vector.Long:
		return arrow.PrimitiveTypes.Int64
	case vector.Float:
		return arrow.PrimitiveTypes.Float32
	case vector.Double:
		return arrow.PrimitiveTypes.Float64
	case vector.Complex:
		return complexType
	}
	return arrow.BinaryTypes.String
}

// ToArrow copies v into a new Arrow array allocated from mem. The caller
// must Release the result.
func ToArrow(v *vector.Vector, mem memory.Allocator) arrow.Array {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	b := array.NewBuilder(mem, DataType(v.Type()))
	defer b.Release()
	b.Reserve(v.Len())

	loc := v.Loc()
	for i := 0; i < v.Len(); i++ {
		if loc.IsNA(i) {
			appendNull(b)
			continue
		}
		switch ab := b.(type) {
		case *array.BooleanBuilder:
			ab.Append(loc.Logical(i) == na.True)
		case *array.Int32Builder:
			ab.Append(loc.Int(i))
		case *array.Int64Builder:
			ab.Append(loc.Long(i))
		case *array.Float32Builder:
			ab.Append(loc.Float(i))
		case *array.Float64Builder:
			ab.Append(loc.Double(i))
		case *array.StructBuilder:
			c := loc.Complex(i)
			ab.Append(true)
			ab.FieldBuilder(0).(*array.Float64Builder).Append(real(c))
			ab.FieldBuilder(1).(*array.Float64Builder).Append(imag(c))
		case *array.StringBuilder:
			s, _ := loc.Text(i)
			ab.Append(s)
		}
	}
	return b.NewArray()
}

// appendNull appends a null, keeping struct children aligned.
func appendNull(b array.Builder) {
	sb, ok := b.(*array.StructBuilder)
	if !ok {
		b.AppendNull()
		return
	}
	sb.Append(false)
	for i := 0; i < sb.NumField(); i++ {
		sb.FieldBuilder(i).AppendNull()
	}
}

// FromArrow copies arr into a new vector. Nulls become NA. Arrow types with
// no vector counterpart fail with a capability error.
func FromArrow(arr arrow.Array) (*vector.Vector, error) {
	t, err := typeOf(arr.DataType())
	if err != nil {
		return nil, err
	}
	b := t.NewBuilderWithCapacity(arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			if err := b.AddNA(); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.Add(value(arr, i)); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func typeOf(dt arrow.DataType) (vector.Type, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return vector.Logical, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.UINT8, arrow.UINT16:
		return vector.Int, nil
	case arrow.INT64, arrow.UINT32:
		return vector.Long, nil
	case arrow.FLOAT32:
		return vector.Float, nil
	case arrow.FLOAT64:
		return vector.Double, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return vector.String, nil
	case arrow.STRUCT:
		if arrow.TypeEqual(dt, complexType) {
			return vector.Complex, nil
		}
	}
	return vector.Object, errors.Newf(errors.ErrorTypeCapability, "unsupported arrow type %s", dt)
}

func value(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Boolean:
		return na.FromBool(a.Value(i))
	case *array.Int8:
		return a.Value(i)
	case *array.Int16:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Uint8:
		return a.Value(i)
	case *array.Uint16:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Uint32:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Struct:
		re := a.Field(0).(*array.Float64).Value(i)
		im := a.Field(1).(*array.Float64).Value(i)
		return complex(re, im)
	}
	panic(fmt.Sprintf("arrowconv: no reader for %s", arr.DataType()))
}
