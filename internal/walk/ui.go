package walk

import (
	"context"

	"github.com/agentx-labs/qflow/internal/qtree"
)

// PromptConfig carries the resolved presentation of one question.
type PromptConfig struct {
	Name        string
	Title       string
	Message     string
	Placeholder string
	Step        int
	TotalSteps  int

	// Validate returns a non-empty diagnostic for an unacceptable value. UIs
	// must only return a success once it accepts the value.
	Validate func(ctx context.Context, value any) string
}

// Check runs Validate if it is set.
func (c PromptConfig) Check(ctx context.Context, value any) string {
	if c.Validate == nil {
		return ""
	}
	return c.Validate(ctx, value)
}

// TextConfig configures a text or number input. For Number inputs the
// answer must be a float64.
type TextConfig struct {
	PromptConfig
	Default  string
	Password bool
	Number   bool
}

// SelectConfig configures a single selection; the answer is an option id.
type SelectConfig struct {
	PromptConfig
	Options qtree.OptionList
	Default string
}

// MultiSelectConfig configures a multiple selection; the answer is a
// []string of option ids.
type MultiSelectConfig struct {
	PromptConfig
	Options qtree.OptionList
	Default []string
}

// FileConfig configures a path input; the answer is the path.
type FileConfig struct {
	PromptConfig
	Folder  bool
	Default string
}

// UI is the rendering surface asked for one answer at a time. Each method
// returns Success, Back, Cancel or an error result.
type UI interface {
	InputText(ctx context.Context, cfg TextConfig) InputResult
	SelectOption(ctx context.Context, cfg SelectConfig) InputResult
	SelectOptions(ctx context.Context, cfg MultiSelectConfig) InputResult
	SelectFile(ctx context.Context, cfg FileConfig) InputResult
}
