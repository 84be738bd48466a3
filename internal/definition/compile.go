package definition

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/validation"
)

// Tree compiles the definition into an untrimmed question tree.
func (d *Definition) Tree() (*qtree.Node, error) {
	return compileNode(d.Root, "/root")
}

// Build compiles the definition and freezes it into a qtree.Tree.
func (d *Definition) Build() (*qtree.Tree, error) {
	root, err := d.Tree()
	if err != nil {
		return nil, err
	}
	return qtree.Build(root)
}

func compileNode(spec NodeSpec, path string) (*qtree.Node, error) {
	data, err := compileData(spec, path)
	if err != nil {
		return nil, err
	}
	if err := compileRules(spec.Condition, path+"/condition"); err != nil {
		return nil, err
	}

	n := qtree.NewNode(data).When(spec.Condition)
	for i, child := range spec.Children {
		c, err := compileNode(child, fmt.Sprintf("%s/children/%d", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}
	return n, nil
}

func compileData(spec NodeSpec, path string) (qtree.Data, error) {
	if spec.Type == string(qtree.TypeGroup) {
		return &qtree.Group{Label: spec.Title}, nil
	}

	if err := compileRules(spec.Validation, path+"/validation"); err != nil {
		return nil, err
	}
	base := qtree.QuestionBase{Name: spec.Name, Validation: spec.Validation}
	if spec.Title != "" {
		base.Title = qtree.Literal(spec.Title)
	}
	if spec.Prompt != "" {
		base.Prompt = qtree.Literal(spec.Prompt)
	}
	if spec.Placeholder != "" {
		base.Placeholder = qtree.Literal(spec.Placeholder)
	}

	switch qtree.NodeType(spec.Type) {
	case qtree.TypeText:
		q := &qtree.TextQuestion{QuestionBase: base, Password: spec.Password}
		if s, ok := spec.Default.(string); ok {
			q.Default = qtree.Literal(s)
		}
		return q, nil

	case qtree.TypeNumber:
		q := &qtree.NumberQuestion{QuestionBase: base}
		if f, ok := spec.Default.(float64); ok {
			q.Default = qtree.Literal(f)
		}
		return q, nil

	case qtree.TypeSingleSelect:
		opts, err := compileOptions(spec.Options, path)
		if err != nil {
			return nil, err
		}
		q := &qtree.SingleSelectQuestion{
			QuestionBase:     base,
			Options:          qtree.Literal(opts),
			ReturnObject:     spec.ReturnObject,
			SkipSingleOption: spec.SkipSingleOption,
		}
		if s, ok := spec.Default.(string); ok {
			q.Default = qtree.Literal(s)
		}
		return q, nil

	case qtree.TypeMultiSelect:
		opts, err := compileOptions(spec.Options, path)
		if err != nil {
			return nil, err
		}
		q := &qtree.MultiSelectQuestion{
			QuestionBase:     base,
			Options:          qtree.Literal(opts),
			ReturnObject:     spec.ReturnObject,
			SkipSingleOption: spec.SkipSingleOption,
		}
		if spec.Default != nil {
			var ids []string
			if err := mapstructure.Decode(spec.Default, &ids); err != nil {
				return nil, fmt.Errorf("%s/default: %w", path, err)
			}
			q.Default = qtree.Literal(ids)
		}
		return q, nil

	case qtree.TypeFile:
		q := &qtree.FileQuestion{QuestionBase: base, Folder: spec.Folder}
		if s, ok := spec.Default.(string); ok {
			q.Default = qtree.Literal(s)
		}
		return q, nil

	default:
		return nil, qtree.NewError("definition", qtree.KindUnsupportedNodeType,
			"%s: unsupported node type %q", path, spec.Type)
	}
}

// compileOptions builds an option list from plain strings or records.
func compileOptions(raw []any, path string) (qtree.OptionList, error) {
	if len(raw) == 0 {
		return qtree.OptionList{}, nil
	}
	if _, plain := raw[0].(string); plain {
		ids := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return qtree.OptionList{}, fmt.Errorf("%s/options/%d: options mix strings and records", path, i)
			}
			ids[i] = s
		}
		return qtree.StringOptions(ids...), nil
	}

	items := make([]qtree.OptionItem, len(raw))
	for i, r := range raw {
		if err := mapstructure.Decode(r, &items[i]); err != nil {
			return qtree.OptionList{}, fmt.Errorf("%s/options/%d: %w", path, i, err)
		}
	}
	return qtree.ItemOptions(items...), nil
}

func compileRules(s *validation.Schema, path string) error {
	if s == nil {
		return nil
	}
	if err := validation.Compile(s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
