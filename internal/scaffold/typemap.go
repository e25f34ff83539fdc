package scaffold

import "github.com/example/prismagen/internal/schema"

// Mutability selects the interface (mutable) or class (readonly) form of a
// member declaration.
type Mutability int

const (
	Mutable Mutability = iota
	Immutable
)

const nullableSuffix = " | null"

// tsTypes maps recognised scalar tags to TypeScript types. Tags not listed
// here are omitted from every generated artifact.
var tsTypes = map[schema.FieldType]string{
	schema.TypeFloat:    "number",
	schema.TypeInt:      "number",
	schema.TypeDecimal:  "number",
	schema.TypeBigInt:   "number",
	schema.TypeString:   "string",
	schema.TypeBoolean:  "boolean",
	schema.TypeDateTime: "Date",
}

// TypeMapper translates schema field types into TypeScript.
type TypeMapper struct{}

// TSType returns the TypeScript type for a scalar tag.
func (TypeMapper) TSType(t schema.FieldType) (string, bool) {
	ts, ok := tsTypes[t]
	return ts, ok
}

// Mappable reports whether f has a recognised scalar type.
func (m TypeMapper) Mappable(f schema.Field) bool {
	_, ok := m.TSType(f.Type)
	return ok
}

// Member returns the member declaration for f, e.g. "age: number | null" or
// "readonly age: number | null". It returns false for unmappable fields.
func (m TypeMapper) Member(f schema.Field, mut Mutability) (string, bool) {
	ts, ok := m.TSType(f.Type)
	if !ok {
		return "", false
	}

	decl := f.Name + ": " + ts
	if mut == Immutable {
		decl = "readonly " + decl
	}
	if f.Optional {
		decl += nullableSuffix
	}
	return decl, true
}

// NeedsNumericCoercion reports whether the persistence value of f must be
// wrapped in Number(...) when mapped to the domain.
// Prisma returns Decimal and BigInt as objects, the domain stores number.
func (TypeMapper) NeedsNumericCoercion(f schema.Field) bool {
	return f.Type == schema.TypeDecimal || f.Type == schema.TypeBigInt
}

// Members renders every mappable field of fields in order.
func (m TypeMapper) Members(fields []schema.Field, mut Mutability) []string {
	var out []string
	for _, f := range fields {
		if decl, ok := m.Member(f, mut); ok {
			out = append(out, decl)
		}
	}
	return out
}
