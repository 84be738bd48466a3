// Package answers reads preset answer files and writes collected answers.
package answers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/qflow/internal/definition"
	"github.com/agentx-labs/qflow/internal/qtree"
)

// Load reads an answers file. The format follows the file extension and
// the document must be a mapping from question names to values.
func Load(path string) (qtree.Answers, error) {
	format, err := definition.FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes an answers document.
func Parse(data []byte, format definition.Format) (qtree.Answers, error) {
	raw, err := definition.Decode(data, format)
	if err != nil {
		return nil, err
	}
	switch m := raw.(type) {
	case nil:
		return qtree.Answers{}, nil
	case map[string]any:
		return qtree.Answers(m), nil
	default:
		return nil, fmt.Errorf("answers must be a mapping of question names to values, got %T", raw)
	}
}

// Write encodes bag in the given format. Option records are written with
// their serialized field names.
func Write(w io.Writer, bag qtree.Answers, format definition.Format) error {
	plain, err := toPlain(bag)
	if err != nil {
		return err
	}

	switch format {
	case definition.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case definition.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plain); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case definition.FormatTOML:
		if err := toml.NewEncoder(w).Encode(plain); err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported answers format %q", format)
	}
}

// toPlain converts bag to maps, slices and scalars so every encoder sees
// the same field names.
func toPlain(bag qtree.Answers) (map[string]any, error) {
	data, err := json.Marshal(bag)
	if err != nil {
		return nil, fmt.Errorf("converting answers: %w", err)
	}
	plain := map[string]any{}
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("converting answers: %w", err)
	}
	for k, v := range plain {
		if v == nil {
			delete(plain, k)
		}
	}
	return plain, nil
}
