package vector

import (
	"math"
	"strconv"
	"strings"

	"github.com/ajitpratap0/serieskit/pkg/json"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// String renders v as "type[len]{v0, v1, ...}" with NA printed as NA.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.WriteString(v.typ.String())
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(v.Len()))
	sb.WriteString("]{")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(na.String(v.col.Get(i)))
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON encodes the values as a JSON array with NA as null.
func (v *Vector) MarshalJSON() ([]byte, error) {
	values := make([]interface{}, v.Len())
	for i := range values {
		values[i] = JSONValue(v.col.Get(i))
	}
	return json.MarshalArray(values)
}

// JSONValue maps a stored value to something encoding/json can represent:
// NA becomes nil, Logical a bool, complex a [re, im] pair and non-finite
// floats their names.
func JSONValue(x any) any {
	if na.Is(x) {
		return nil
	}
	switch t := x.(type) {
	case na.Logical:
		b, _ := t.Bool()
		return b
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case complex128:
		return []any{finite(real(t)), finite(imag(t))}
	}
	return x
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}
