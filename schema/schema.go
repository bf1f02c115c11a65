package schema

import "fmt"

// Column describes one column of a table.
type Column struct {
	Name       string // column name, unique within its table.
	Type       string // scalar database type; element type for arrays.
	Array      bool   // column stores an array of Type.
	PrimaryKey bool   // column is part of the primary key.
	Nullable   bool   // catalog reports the column as nullable.
	Default    string // raw default expression, if HasDefault.
	HasDefault bool   // column has a default expression.
}

// String implements the fmt.Stringer interface.
func (c *Column) String() string {
	if c.Array {
		return fmt.Sprintf("%s: %s[]", c.Name, c.Type)
	}
	return fmt.Sprintf("%s: %s", c.Name, c.Type)
}

// TableKey identifies a table within a database.
type TableKey struct {
	Schema string
	Name   string
}

// String implements the fmt.Stringer interface.
func (k TableKey) String() string {
	return k.Schema + "." + k.Name
}

// Table describes a table and its columns in catalog order.
type Table struct {
	Name    string
	Schema  string
	Columns []*Column
}

// Key returns the identity of the table.
func (t *Table) Key() TableKey {
	return TableKey{Schema: t.Schema, Name: t.Name}
}

// Equal reports whether t and o denote the same table. Columns are ignored.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Key() == o.Key()
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// PrimaryKeys returns the primary-key columns in column order.
func (t *Table) PrimaryKeys() []*Column {
	return t.filter(true)
}

// Fields returns the columns that are not part of the primary key,
// in column order.
func (t *Table) Fields() []*Column {
	return t.filter(false)
}

func (t *Table) filter(pk bool) []*Column {
	var cols []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey == pk {
			cols = append(cols, c)
		}
	}
	return cols
}

// Model is the set of tables loaded from one database schema.
type Model struct {
	Schema string
	Tables []*Table
}

// Table returns the table with the given name.
func (m *Model) Table(name string) (*Table, bool) {
	for _, t := range m.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Len returns the number of tables in the model.
func (m *Model) Len() int {
	return len(m.Tables)
}
