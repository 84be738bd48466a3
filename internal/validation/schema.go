package validation

import (
	"context"
	"regexp"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FuncValidator validates a value against the answers collected so far. It
// returns a non-empty diagnostic when the value is rejected. The error return
// is reserved for failures of the validator itself.
type FuncValidator func(ctx context.Context, value any, answers map[string]any) (string, error)

// Schema is a declarative validation schema. Zero-valued fields are ignored,
// so an empty Schema accepts every value.
//
// A Schema is compiled on first use and keeps the compiled form, so it must
// not be mutated or copied after it has been checked once.
type Schema struct {
	// Set membership, valid for any value type.
	Equals    any   `json:"equals,omitempty"`
	NotEquals any   `json:"notEquals,omitempty"`
	Enum      []any `json:"enum,omitempty"`

	// String keywords.
	MinLength  *int   `json:"minLength,omitempty"`
	MaxLength  *int   `json:"maxLength,omitempty"`
	Pattern    string `json:"pattern,omitempty"`
	StartsWith string `json:"startsWith,omitempty"`
	EndsWith   string `json:"endsWith,omitempty"`
	Includes   string `json:"includes,omitempty"`

	// Numeric keywords.
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Array keywords, used for multi-select answers.
	MinItems    *int  `json:"minItems,omitempty"`
	MaxItems    *int  `json:"maxItems,omitempty"`
	UniqueItems bool  `json:"uniqueItems,omitempty"`
	Contains    any   `json:"contains,omitempty"`
	ContainsAll []any `json:"containsAll,omitempty"`
	ContainsAny []any `json:"containsAny,omitempty"`

	// Semver is a Masterminds semver constraint (e.g. ">=1.21") the value,
	// a version string, must satisfy.
	Semver string `json:"semver,omitempty"`

	// Required rejects a missing (nil) value. Without it a nil value is
	// accepted and no other keyword is evaluated.
	Required bool `json:"required,omitempty"`

	// Message replaces the generated diagnostic when the value is rejected.
	Message string `json:"message,omitempty"`

	// Func runs after every declarative keyword has passed.
	Func FuncValidator `json:"-"`

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

// document translates the declarative keywords into a JSON Schema document.
// Several pattern-like keywords map to the single "pattern" keyword, so they
// are combined under allOf.
func (s *Schema) document() map[string]any {
	doc := map[string]any{}
	var allOf []any

	if s.Equals != nil {
		doc["const"] = s.Equals
	}
	if s.NotEquals != nil {
		doc["not"] = map[string]any{"const": s.NotEquals}
	}
	if len(s.Enum) > 0 {
		doc["enum"] = s.Enum
	}

	if s.MinLength != nil {
		doc["minLength"] = *s.MinLength
	}
	if s.MaxLength != nil {
		doc["maxLength"] = *s.MaxLength
	}
	for _, p := range s.patterns() {
		allOf = append(allOf, map[string]any{"pattern": p})
	}

	setFloat(doc, "minimum", s.Minimum)
	setFloat(doc, "maximum", s.Maximum)
	setFloat(doc, "exclusiveMinimum", s.ExclusiveMinimum)
	setFloat(doc, "exclusiveMaximum", s.ExclusiveMaximum)
	setFloat(doc, "multipleOf", s.MultipleOf)

	if s.MinItems != nil {
		doc["minItems"] = *s.MinItems
	}
	if s.MaxItems != nil {
		doc["maxItems"] = *s.MaxItems
	}
	if s.UniqueItems {
		doc["uniqueItems"] = true
	}
	if s.Contains != nil {
		allOf = append(allOf, containsConst(s.Contains))
	}
	for _, item := range s.ContainsAll {
		allOf = append(allOf, containsConst(item))
	}
	if len(s.ContainsAny) > 0 {
		allOf = append(allOf, map[string]any{
			"type":     "array",
			"contains": map[string]any{"enum": s.ContainsAny},
		})
	}

	if len(allOf) > 0 {
		doc["allOf"] = allOf
	}
	return doc
}

// patterns returns the regular expressions implied by the string keywords.
func (s *Schema) patterns() []string {
	var out []string
	if s.Pattern != "" {
		out = append(out, s.Pattern)
	}
	if s.StartsWith != "" {
		out = append(out, "^"+regexp.QuoteMeta(s.StartsWith))
	}
	if s.EndsWith != "" {
		out = append(out, regexp.QuoteMeta(s.EndsWith)+"$")
	}
	if s.Includes != "" {
		out = append(out, regexp.QuoteMeta(s.Includes))
	}
	return out
}

func containsConst(v any) map[string]any {
	return map[string]any{
		"type":     "array",
		"contains": map[string]any{"const": v},
	}
}

func setFloat(doc map[string]any, key string, v *float64) {
	if v != nil {
		doc[key] = *v
	}
}

// Int returns a pointer to v, for the optional integer keywords.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for the optional numeric keywords.
func Float(v float64) *float64 { return &v }
