package qtree

import (
	"context"

	"github.com/agentx-labs/qflow/internal/validation"
)

// NodeType discriminates the node variants.
type NodeType string

const (
	TypeGroup        NodeType = "group"
	TypeText         NodeType = "text"
	TypeNumber       NodeType = "number"
	TypeSingleSelect NodeType = "singleSelect"
	TypeMultiSelect  NodeType = "multiSelect"
	TypeFile         NodeType = "file"
	TypeFunc         NodeType = "func"
)

// Data is the payload of a Node: a *Group or one of the question variants.
// The set of implementations is closed.
type Data interface {
	Type() NodeType
	data()
}

// Group has no prompt. It exists to attach one trigger condition to a
// cluster of questions.
type Group struct {
	Label string
}

func (*Group) Type() NodeType { return TypeGroup }
func (*Group) data()          {}

// Question is implemented by every question variant.
type Question interface {
	Data
	Base() *QuestionBase
}

// QuestionBase holds the fields shared by all question variants.
type QuestionBase struct {
	// Name is the answer bag key. It must be unique within a tree.
	Name        string
	Title       Value[string]
	Prompt      Value[string]
	Placeholder Value[string]
	Validation  *validation.Schema

	// Value is the last accepted answer, set by the traversal engine.
	Value any
}

func (b *QuestionBase) Base() *QuestionBase { return b }
func (*QuestionBase) data()                 {}

// TextQuestion asks for a line of text.
type TextQuestion struct {
	QuestionBase
	Default  Value[string]
	Password bool
}

func (*TextQuestion) Type() NodeType { return TypeText }

// NumberQuestion asks for a number; answers are float64.
type NumberQuestion struct {
	QuestionBase
	Default Value[float64]
}

func (*NumberQuestion) Type() NodeType { return TypeNumber }

// SingleSelectQuestion picks one option. The answer is the option id, or the
// whole OptionItem when ReturnObject is set and the list is not plain.
type SingleSelectQuestion struct {
	QuestionBase
	Options          Value[OptionList]
	Default          Value[string]
	ReturnObject     bool
	SkipSingleOption bool
}

func (*SingleSelectQuestion) Type() NodeType { return TypeSingleSelect }

// MultiSelectQuestion picks any number of options. The answer is a []string
// of ids, or []OptionItem when ReturnObject is set and the list is not plain.
type MultiSelectQuestion struct {
	QuestionBase
	Options          Value[OptionList]
	Default          Value[[]string]
	ReturnObject     bool
	SkipSingleOption bool
}

func (*MultiSelectQuestion) Type() NodeType { return TypeMultiSelect }

// FileQuestion asks for a path that must exist. Folder selects directories
// instead of regular files.
type FileQuestion struct {
	QuestionBase
	Folder  bool
	Default Value[string]
}

func (*FileQuestion) Type() NodeType { return TypeFile }

// FuncQuestion has no UI. Func runs against the answers and its result is
// stored as the answer; it is used for validation-only or data-loading steps.
type FuncQuestion struct {
	QuestionBase
	Func func(ctx context.Context, answers Answers) (any, error)
}

func (*FuncQuestion) Type() NodeType { return TypeFunc }

// AsQuestion returns d as a Question if it is not a group.
func AsQuestion(d Data) (Question, bool) {
	q, ok := d.(Question)
	return q, ok
}

// Text returns a text question.
func Text(name, title string) *TextQuestion {
	return &TextQuestion{QuestionBase: base(name, title)}
}

// Number returns a number question.
func Number(name, title string) *NumberQuestion {
	return &NumberQuestion{QuestionBase: base(name, title)}
}

// SingleSelect returns a single-select question over a static option list.
func SingleSelect(name, title string, options OptionList) *SingleSelectQuestion {
	return &SingleSelectQuestion{QuestionBase: base(name, title), Options: Literal(options)}
}

// MultiSelect returns a multi-select question over a static option list.
func MultiSelect(name, title string, options OptionList) *MultiSelectQuestion {
	return &MultiSelectQuestion{QuestionBase: base(name, title), Options: Literal(options)}
}

// File returns a question for an existing regular file.
func File(name, title string) *FileQuestion {
	return &FileQuestion{QuestionBase: base(name, title)}
}

// Folder returns a question for an existing directory.
func Folder(name, title string) *FileQuestion {
	return &FileQuestion{QuestionBase: base(name, title), Folder: true}
}

// Func returns a func question.
func Func(name string, fn func(ctx context.Context, answers Answers) (any, error)) *FuncQuestion {
	return &FuncQuestion{QuestionBase: QuestionBase{Name: name}, Func: fn}
}

func base(name, title string) QuestionBase {
	b := QuestionBase{Name: name}
	if title != "" {
		b.Title = Literal(title)
	}
	return b
}
