// Package schema parses the Prisma-style model dialect consumed by the generators.
package schema

// FieldType is the scalar type tag of a field as written in the schema
// (e.g. "String", "Int"). Relation, enum and list types are kept verbatim.
type FieldType string

// Recognised scalar tags.
const (
	TypeFloat    FieldType = "Float"
	TypeInt      FieldType = "Int"
	TypeDecimal  FieldType = "Decimal"
	TypeBigInt   FieldType = "BigInt"
	TypeString   FieldType = "String"
	TypeBoolean  FieldType = "Boolean"
	TypeDateTime FieldType = "DateTime"
)

// Field is a single member of a model block.
type Field struct {
	Name     string
	Type     FieldType
	Optional bool // declared with a trailing "?"
}

// Model is one parsed `model <Name> { ... }` block. Field order is the
// declaration order.
type Model struct {
	Name   string
	Fields []Field
}

// Models is the ordered result of parsing a schema.
type Models []Model

// Lookup returns the model with the given name.
func (ms Models) Lookup(name string) (Model, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Names returns model names in declaration order.
func (ms Models) Names() []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}
