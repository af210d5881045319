package property

import (
	"k8s.io/kube-openapi/pkg/validation/spec"

	"github.com/flavono123/shaper/internal/field"
)

func GetRefKey(prop *spec.SchemaProps) string {
	var ref spec.Ref
	if HasAllOf(prop) {
		ref = prop.AllOf[0].Ref
	} else {
		ref = prop.Ref
	}

	tokens := ref.GetPointer().DecodedTokens()
	if len(tokens) == 0 {
		return ""
	}
	refKey := tokens[len(tokens)-1] // #/definitions/[Address]

	return refKey
}

// GetType picks the declared type, else the first typed variant of
// allOf, oneOf or anyOf, whichever is present first. A schema with properties but no type is an
// object.
func GetType(prop *spec.SchemaProps) string {
	if HasType(prop) {
		return prop.Type[0]
	}
	var variants []spec.Schema
	switch {
	case HasAllOf(prop):
		variants = prop.AllOf
	case HasOneOf(prop):
		variants = prop.OneOf
	case HasAnyOf(prop):
		variants = prop.AnyOf
	}
	for _, schema := range variants {
		if t := GetType(&schema.SchemaProps); t != "" {
			return t
		}
	}
	if HasProperties(prop) {
		return "object"
	}

	return ""
}

// FieldType maps a JSON Schema type onto a field type. ok is false when
// the schema type has no field counterpart and was coerced to string.
func FieldType(prop *spec.SchemaProps) (t field.Type, ok bool) {
	switch GetType(prop) {
	case "string":
		return field.String, true
	case "number", "integer":
		return field.Number, true
	case "object":
		return field.Nested, true
	}
	return field.String, false
}

func HasAllOf(prop *spec.SchemaProps) bool {
	return len(prop.AllOf) > 0
}

func HasOneOf(prop *spec.SchemaProps) bool {
	return len(prop.OneOf) > 0
}

func HasAnyOf(prop *spec.SchemaProps) bool {
	return len(prop.AnyOf) > 0
}

func HasProperties(prop *spec.SchemaProps) bool {
	return len(prop.Properties) > 0
}

func HasType(prop *spec.SchemaProps) bool {
	return len(prop.Type) > 0
}

func HasRef(prop *spec.SchemaProps) bool {
	return GetRefKey(prop) != ""
}
