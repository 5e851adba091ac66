// Package schema is the fixed allow-list behind the generic table endpoints.
// Caller-supplied table and column names are only ever matched against these
// definitions; nothing from a request is interpolated into SQL identifiers.
package schema

// Column describes one writable column of an importable table.
type Column struct {
	Name     string
	Type     string
	Required bool
}

// Table describes one table reachable through the generic surface.
type Table struct {
	Name string
	// NaturalKey identifies a record across imports (titulo for articulos,
	// nombre elsewhere).
	NaturalKey string
	Columns    []Column
}

var tables = map[string]Table{
	"grados": {
		Name:       "grados",
		NaturalKey: "nombre",
		Columns: []Column{
			{Name: "nombre", Type: "text", Required: true},
		},
	},
	"areas": {
		Name:       "areas",
		NaturalKey: "nombre",
		Columns: []Column{
			{Name: "nombre", Type: "text", Required: true},
			{Name: "grado_id", Type: "integer", Required: true},
		},
	},
	"temas": {
		Name:       "temas",
		NaturalKey: "nombre",
		Columns: []Column{
			{Name: "nombre", Type: "text", Required: true},
			{Name: "area_id", Type: "integer", Required: true},
		},
	},
	"articulos": {
		Name:       "articulos",
		NaturalKey: "titulo",
		Columns: []Column{
			{Name: "titulo", Type: "text", Required: true},
			{Name: "contenido", Type: "jsonb", Required: false},
			{Name: "grado_id", Type: "integer", Required: true},
			{Name: "area_id", Type: "integer", Required: true},
			{Name: "tema_id", Type: "integer", Required: true},
			{Name: "usuario_id", Type: "integer", Required: true},
		},
	},
}

// referenceOnly tables can be targeted by foreign-key validation but are not
// importable. Keeps password material out of the generic field-map path.
var referenceOnly = map[string]bool{
	"usuarios": true,
}

// Lookup returns the table definition for an importable table.
func Lookup(name string) (Table, bool) {
	t, ok := tables[name]
	return t, ok
}

// LookupReference accepts importable and reference-only tables. Used by
// foreign-key existence checks (articles reference usuarios).
func LookupReference(name string) (string, bool) {
	if _, ok := tables[name]; ok {
		return name, true
	}
	if referenceOnly[name] {
		return name, true
	}
	return "", false
}

// HasColumn reports whether the named column is writable on the table.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the writable column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// TableNames returns the importable table names.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	return names
}
