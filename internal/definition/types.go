package definition

import "github.com/agentx-labs/qflow/internal/validation"

// Definition is a parsed definition file.
type Definition struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Root        NodeSpec `json:"root"`
}

// NodeSpec declares one node of the question tree.
type NodeSpec struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`

	// Default is a string, a number or a list of strings depending on Type.
	Default any `json:"default,omitempty"`

	// Options holds plain strings or option records.
	Options []any `json:"options,omitempty"`

	ReturnObject     bool `json:"returnObject,omitempty"`
	SkipSingleOption bool `json:"skipSingleOption,omitempty"`
	Folder           bool `json:"folder,omitempty"`
	Password         bool `json:"password,omitempty"`

	Validation *validation.Schema `json:"validation,omitempty"`
	Condition  *validation.Schema `json:"condition,omitempty"`

	Children []NodeSpec `json:"children,omitempty"`
}

// Format is the serialization of a definition or answers file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)
