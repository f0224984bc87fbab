// Package avroconv writes column stores as Avro object container files and
// reads them back.
//
// Every column becomes a nullable field, a union of null and:
//
//	Logical  boolean
//	Int      int
//	Long     long
//	Float    float
//	Double   double
//	Complex  array of two doubles, real then imaginary
//	String   string
//	Object   string (printed)
//
// Avro field names are restricted to [A-Za-z_][A-Za-z0-9_]*, so other column
// names are rewritten in the schema. The original names and types travel in
// the file metadata and are restored by ReadOCF.
package avroconv

import (
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"

	"github.com/ajitpratap0/serieskit/pkg/columnar"
	"github.com/ajitpratap0/serieskit/pkg/errors"
	"github.com/ajitpratap0/serieskit/pkg/na"
	"github.com/ajitpratap0/serieskit/pkg/vector"
)

const (
	columnsKey = "serieskit.columns"
	typesKey   = "serieskit.types"

	// rows per OCF block
	blockSize = 1024
)

// exported returns the Type a column is written as.
func exported(t vector.Type) vector.Type {
	if t == vector.Object {
		return vector.String
	}
	return t
}

func avroType(t vector.Type) any {
	switch t {
	case vector.Logical:
		return "boolean"
	case vector.Int:
		return "int"
	case vector.Long:
		return "long"
	case vector.Float:
		return "float"
	case vector.Double:
		return "double"
	case vector.Complex:
		return map[string]any{"type": "array", "items": "double"}
	}
	return "string"
}

// FieldNames returns the Avro field name used for each column name.
func FieldNames(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		name := sanitize(c)
		base := name
		for n := 2; seen[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

func sanitize(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
		default:
			r = '_'
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// Schema returns the Avro record schema of s as JSON.
func Schema(s *columnar.ColumnStore) (string, error) {
	names := FieldNames(s.ColumnNames())
	fields := make([]map[string]any, 0, s.ColumnCount())
	for i, f := range s.Schema() {
		fields = append(fields, map[string]any{
			"name":    names[i],
			"type":    []any{"null", avroType(exported(f.Type))},
			"default": nil,
		})
	}
	data, err := gojson.Marshal(map[string]any{
		"type":      "record",
		"name":      "Row",
		"namespace": "serieskit",
		"fields":    fields,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode avro schema")
	}
	return string(data), nil
}

func metadata(s *columnar.ColumnStore) (map[string][]byte, error) {
	types := make([]string, 0, s.ColumnCount())
	for _, f := range s.Schema() {
		types = append(types, exported(f.Type).String())
	}
	columns, err := gojson.Marshal(s.ColumnNames())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode column names")
	}
	return map[string][]byte{
		columnsKey: columns,
		typesKey:   []byte(strings.Join(types, ",")),
	}, nil
}

// native returns the Avro union value of v at loc, nil for NA.
func native(v *vector.Vector, t vector.Type, loc int) any {
	l := v.Loc()
	if l.IsNA(loc) {
		return nil
	}
	switch t {
	case vector.Logical:
		b, _ := l.Logical(loc).Bool()
		return goavro.Union("boolean", b)
	case vector.Int:
		return goavro.Union("int", l.Int(loc))
	case vector.Long:
		return goavro.Union("long", l.Long(loc))
	case vector.Float:
		return goavro.Union("float", l.Float(loc))
	case vector.Double:
		return goavro.Union("double", l.Double(loc))
	case vector.Complex:
		c := l.Complex(loc)
		return goavro.Union("array", []any{real(c), imag(c)})
	}
	text, _ := l.Text(loc)
	return goavro.Union("string", text)
}

// WriteOCF writes s to w as an uncompressed Avro object container file.
// Wrap w with pkg/compression for a compressed stream.
func WriteOCF(w io.Writer, s *columnar.ColumnStore) error {
	schema, err := Schema(s)
	if err != nil {
		return err
	}
	meta, err := metadata(s)
	if err != nil {
		return err
	}
	ocfw, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Schema:          schema,
		CompressionName: goavro.CompressionNullLabel,
		MetaData:        meta,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to create avro writer")
	}

	names := s.ColumnNames()
	fields := FieldNames(names)
	columns := make([]*vector.Vector, len(names))
	for i, name := range names {
		if columns[i], err = s.Column(name); err != nil {
			return err
		}
	}

	block := make([]any, 0, blockSize)
	for row := 0; row < s.RowCount(); row++ {
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			rec[fields[i]] = native(col, col.Type(), row)
		}
		block = append(block, rec)
		if len(block) == blockSize || row == s.RowCount()-1 {
			if err := ocfw.Append(block); err != nil {
				return errors.Wrap(err, errors.ErrorTypeIO, "failed to write avro block").
					WithDetail("row", row)
			}
			block = block[:0]
		}
	}
	return nil
}

type recordSchema struct {
	Fields []struct {
		Name string `json:"name"`
		Type any    `json:"type"`
	} `json:"fields"`
}

// ReadOCF reads an Avro object container file into a new store. Files
// written by WriteOCF get their column names and types back; for other files
// fields map to columns by their Avro type.
func ReadOCF(r io.Reader) (*columnar.ColumnStore, error) {
	ocfr, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to open avro file")
	}

	var schema recordSchema
	if err := gojson.Unmarshal([]byte(ocfr.Codec().Schema()), &schema); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse avro schema")
	}
	n := len(schema.Fields)
	names := make([]string, n)
	types := make([]vector.Type, n)
	for i, f := range schema.Fields {
		names[i] = f.Name
		t, err := typeOf(f.Type)
		if err != nil {
			return nil, err.WithDetail("field", f.Name)
		}
		types[i] = t
	}
	restore(ocfr.MetaData(), names, types)

	builders := make([]*vector.Builder, n)
	for i, t := range types {
		builders[i] = t.NewBuilder()
	}
	row := 0
	for ocfr.Scan() {
		datum, err := ocfr.Read()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read avro record").WithDetail("row", row)
		}
		rec, _ := datum.(map[string]any)
		for i, f := range schema.Fields {
			if err := add(builders[i], rec[f.Name]); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to load field").
					WithDetail("column", names[i]).
					WithDetail("row", row)
			}
		}
		row++
	}
	if err := ocfr.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read avro file")
	}

	store := columnar.NewColumnStore()
	for i, b := range builders {
		v, err := b.Build()
		if err != nil {
			return nil, err
		}
		if err := store.AddColumn(names[i], v); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// restore applies the column names and types recorded by WriteOCF, when
// they are present and match the schema.
func restore(meta map[string][]byte, names []string, types []vector.Type) {
	var columns []string
	if err := gojson.Unmarshal(meta[columnsKey], &columns); err == nil && len(columns) == len(names) {
		copy(names, columns)
	}
	recorded := strings.Split(string(meta[typesKey]), ",")
	if len(recorded) != len(types) {
		return
	}
	for i, name := range recorded {
		if t, err := vector.ParseType(name); err == nil {
			types[i] = t
		}
	}
}

// typeOf maps an Avro field type, optionally a union with null, to a Type.
func typeOf(avro any) (vector.Type, *errors.Error) {
	switch t := avro.(type) {
	case string:
		switch t {
		case "boolean":
			return vector.Logical, nil
		case "int":
			return vector.Int, nil
		case "long":
			return vector.Long, nil
		case "float":
			return vector.Float, nil
		case "double":
			return vector.Double, nil
		case "string":
			return vector.String, nil
		}
	case []any:
		var branches []any
		for _, b := range t {
			if b != "null" {
				branches = append(branches, b)
			}
		}
		if len(branches) == 1 {
			return typeOf(branches[0])
		}
	case map[string]any:
		if t["type"] == "array" && t["items"] == "double" {
			return vector.Complex, nil
		}
		if s, ok := t["type"].(string); ok && s != "array" && s != "record" && s != "map" {
			return typeOf(s)
		}
	}
	return vector.Object, errors.Newf(errors.ErrorTypeCapability, "unsupported avro type %v", avro)
}

// add appends a decoded Avro value, unwrapping unions.
func add(b *vector.Builder, x any) error {
	if m, ok := x.(map[string]any); ok && len(m) == 1 {
		for _, v := range m {
			x = v
		}
	}
	switch t := x.(type) {
	case nil:
		return b.AddNA()
	case bool:
		return b.Add(na.FromBool(t))
	case []any:
		if len(t) != 2 {
			return errors.Newf(errors.ErrorTypeData, "complex value needs 2 parts, got %d", len(t))
		}
		re, _ := t[0].(float64)
		im, _ := t[1].(float64)
		return b.Add(complex(re, im))
	}
	return b.Add(x)
}
