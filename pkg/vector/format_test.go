package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/serieskit/pkg/na"
)

func TestString(t *testing.T) {
	assert.Equal(t, "double[3]{1, NA, 2.5}", Doubles(1, na.Float64, 2.5).String())
	assert.Equal(t, "string[2]{a, NA}", Of("a", nil).String())
	assert.Equal(t, "logical[2]{true, NA}", Logicals(na.True, na.LogicalNA).String())
	assert.Equal(t, "int[0]{}", Empty(Int).String())
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    *Vector
		want string
	}{
		{"double", Doubles(1.5, na.Float64, math.Inf(1)), `[1.5,null,"+Inf"]`},
		{"logical", Logicals(na.True, na.False, na.LogicalNA), `[true,false,null]`},
		{"complex", Complexes(1+2i), `[[1,2]]`},
		{"string", Of("a", nil), `["a",null]`},
		{"empty", Empty(Long), `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.v.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestJSONValueKeepsOrdinaryNaN(t *testing.T) {
	assert.Equal(t, "NaN", JSONValue(math.NaN()))
	assert.Nil(t, JSONValue(na.Float32))
	assert.Equal(t, int32(3), JSONValue(int32(3)))
}
