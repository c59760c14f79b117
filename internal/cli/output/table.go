package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders data as a table. It accepts a Table, a slice of structs
// or scalars, a map or a single struct; anything else is written as JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch t := data.(type) {
	case *Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	table, err := toTable(data)
	if err != nil {
		return (&JSONFormatter{}).Format(w, data)
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

func toTable(data any) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceToTable(v), nil
	case reflect.Map:
		return mapToTable(v), nil
	case reflect.Struct:
		return structToTable(v), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

// column is an exported struct field shown in a table.
type column struct {
	index int
	name  string
}

func columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("table") == "-" {
			continue
		}
		cols = append(cols, column{index: i, name: fieldName(field)})
	}
	return cols
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(field.Name)
}

func sliceToTable(v reflect.Value) *Table {
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}

	if elemType.Kind() != reflect.Struct || isStringer(elemType) {
		table := &Table{Headers: []string{"VALUE"}}
		for i := 0; i < v.Len(); i++ {
			table.AddRow(formatValue(v.Index(i)))
		}
		return table
	}

	cols := columns(elemType)
	table := &Table{}
	for _, c := range cols {
		table.Headers = append(table.Headers, strings.ToUpper(c.name))
	}
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = formatValue(elem.Field(c.index))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// mapToTable renders a map as KEY/VALUE rows sorted by key.
func mapToTable(v reflect.Value) *Table {
	table := &Table{Headers: []string{"KEY", "VALUE"}}
	iter := v.MapRange()
	for iter.Next() {
		table.AddRow(formatValue(iter.Key()), formatValue(iter.Value()))
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i][0] < table.Rows[j][0]
	})
	return table
}

func structToTable(v reflect.Value) *Table {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}
	for _, c := range columns(v.Type()) {
		table.AddRow(c.name, formatValue(v.Field(c.index)))
	}
	return table
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

func isStringer(t reflect.Type) bool {
	return t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType)
}

// formatValue renders a single cell.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "-"
		}
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		v = v.Elem()
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}

	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return "-"
		}
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 2, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ",")
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Table is tabular data with optional headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

