package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const resourceURL = "validation.schema.json"

var printer = message.NewPrinter(language.English)

// Check evaluates value against s. It returns an empty string when the value
// is valid and a human-readable diagnostic when it is not. A nil schema
// accepts everything.
//
// The error return is for malformed schemas (bad pattern, bad semver
// constraint) and for failures of a Func validator, never for invalid values.
func Check(ctx context.Context, s *Schema, value any, answers map[string]any) (string, error) {
	if s == nil {
		return "", nil
	}
	if value == nil {
		if s.Required {
			return s.diagnostic("a value is required"), nil
		}
		return "", nil
	}

	sch, err := s.compile()
	if err != nil {
		return "", err
	}

	inst, err := instance(value)
	if err != nil {
		return "", err
	}

	if err := sch.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return "", fmt.Errorf("validating value: %w", err)
		}
		return s.diagnostic(describe(ve)), nil
	}

	if s.Semver != "" {
		msg, err := checkSemver(s.Semver, value)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return s.diagnostic(msg), nil
		}
	}

	if s.Func != nil {
		msg, err := s.Func(ctx, value, answers)
		if err != nil {
			return "", fmt.Errorf("running validation func: %w", err)
		}
		if msg != "" {
			return s.diagnostic(msg), nil
		}
	}

	return "", nil
}

// Compile reports whether s is well formed: its patterns compile and its
// semver constraint parses. A nil schema is well formed.
func Compile(s *Schema) error {
	if s == nil {
		return nil
	}
	if _, err := s.compile(); err != nil {
		return err
	}
	if s.Semver != "" {
		if _, err := semver.NewConstraint(s.Semver); err != nil {
			return fmt.Errorf("parsing semver constraint %q: %w", s.Semver, err)
		}
	}
	return nil
}

func (s *Schema) diagnostic(generated string) string {
	if s.Message != "" {
		return s.Message
	}
	return generated
}

// compile translates s into a JSON Schema and compiles it once.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		s.compiled, s.compileErr = s.build()
	})
	return s.compiled, s.compileErr
}

func (s *Schema) build() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(s.document())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return sch, nil
}

// instance converts an arbitrary Go value into the JSON data model the
// validator understands ([]string becomes []any, structs become maps).
func instance(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("converting value to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("preparing value for validation: %w", err)
	}
	return inst, nil
}

// describe flattens the error tree into its leaf messages.
func describe(ve *jsonschema.ValidationError) string {
	var msgs []string
	collectMessages(ve, &msgs)
	if len(msgs) == 0 {
		return ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func collectMessages(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectMessages(cause, msgs)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	kw := ve.ErrorKind.KeywordPath()
	if len(kw) > 0 {
		switch kw[len(kw)-1] {
		case "allOf", "$ref":
			return
		}
	}

	msg := ve.ErrorKind.LocalizedString(printer)
	for _, seen := range *msgs {
		if seen == msg {
			return
		}
	}
	*msgs = append(*msgs, msg)
}

func checkSemver(constraint string, value any) (string, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", fmt.Errorf("parsing semver constraint %q: %w", constraint, err)
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Sprintf("expected a version string, got %T", value), nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(str), "v"))
	if err != nil {
		return fmt.Sprintf("%q is not a valid semantic version", str), nil
	}
	if !c.Check(v) {
		return fmt.Sprintf("version %s does not satisfy %s", str, constraint), nil
	}
	return "", nil
}
