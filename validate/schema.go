package validate

import (
	"fmt"

	"github.com/unkn0wn-root/toon"
)

// SchemaKind tags the arm of a Schema.
type SchemaKind uint8

const (
	SchemaAny SchemaKind = iota
	SchemaNull
	SchemaBool
	SchemaInt
	SchemaFloat
	SchemaString
	SchemaRef
	SchemaArray
	SchemaObject
)

// Schema describes a shallow structural shape for a Value tree: each
// scalar arm matches exactly that Value kind, Array matches an array
// whose every element matches Elem, and Object matches an object whose
// named Fields all match and, unless AllowExtra, has no other fields.
type Schema struct {
	kind       SchemaKind
	elem       *Schema
	fields     map[string]Schema
	allowExtra bool
}

func Any() Schema    { return Schema{kind: SchemaAny} }
func Null() Schema   { return Schema{kind: SchemaNull} }
func Bool() Schema   { return Schema{kind: SchemaBool} }
func Int() Schema    { return Schema{kind: SchemaInt} }
func Float() Schema  { return Schema{kind: SchemaFloat} }
func String() Schema { return Schema{kind: SchemaString} }
func Ref() Schema    { return Schema{kind: SchemaRef} }

// Array builds a schema matching an array whose every element matches elem.
func Array(elem Schema) Schema { return Schema{kind: SchemaArray, elem: &elem} }

// Object builds a schema matching an object with the given named fields.
// When allowExtra is false, any field not named in fields is a violation.
func Object(fields map[string]Schema, allowExtra bool) Schema {
	return Schema{kind: SchemaObject, fields: fields, allowExtra: allowExtra}
}

func (k SchemaKind) tag() string {
	switch k {
	case SchemaNull:
		return "null"
	case SchemaBool:
		return "bool"
	case SchemaInt:
		return "int"
	case SchemaFloat:
		return "float"
	case SchemaString:
		return "string"
	case SchemaRef:
		return "ref"
	case SchemaArray:
		return "array"
	case SchemaObject:
		return "object"
	default:
		return "any"
	}
}

func valueTag(v toon.Value) string {
	switch v.Kind() {
	case toon.KindNull:
		return "null"
	case toon.KindBool:
		return "bool"
	case toon.KindInt:
		return "int"
	case toon.KindFloat:
		return "float"
	case toon.KindString:
		return "string"
	case toon.KindRef:
		return "ref"
	case toon.KindArray:
		return "array"
	case toon.KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ValidateSchema reports the first SchemaViolationError found walking
// value against schema, located by a dotted/indexed path rooted at "$".
func ValidateSchema(value toon.Value, schema Schema) error {
	return validateSchemaAt(value, schema, "$")
}

func validateSchemaAt(value toon.Value, schema Schema, path string) error {
	if schema.kind == SchemaAny {
		return nil
	}

	got := valueTag(value)
	want := schema.kind.tag()
	if got != want {
		return &toon.SchemaViolationError{Path: path, Expected: want, Actual: got}
	}

	switch schema.kind {
	case SchemaArray:
		items, _ := value.AsArray()
		for i, item := range items {
			if err := validateSchemaAt(item, *schema.elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case SchemaObject:
		fields, _ := value.AsObject()
		for name, fieldSchema := range schema.fields {
			fieldVal, ok := fields[name]
			if !ok {
				return &toon.SchemaViolationError{Path: path + "." + name, Expected: fieldSchema.kind.tag(), Actual: "missing"}
			}
			if err := validateSchemaAt(fieldVal, fieldSchema, path+"."+name); err != nil {
				return err
			}
		}
		if !schema.allowExtra {
			for name := range fields {
				if _, declared := schema.fields[name]; !declared {
					return &toon.SchemaViolationError{Path: path + "." + name, Expected: "absent", Actual: valueTag(fields[name])}
				}
			}
		}
	}
	return nil
}
