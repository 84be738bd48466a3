package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/walk"
)

func newTestTerminal(input string, opts ...TerminalOption) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return NewTerminal(strings.NewReader(input), &out, opts...), &out
}

func langs() qtree.OptionList {
	return qtree.ItemOptions(
		qtree.OptionItem{ID: "go", Label: "Go", Description: "compiled"},
		qtree.OptionItem{ID: "ts", Label: "TypeScript"},
	)
}

func TestTerminal_InputText(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		cfg   walk.TextConfig
		want  walk.InputResult
	}{
		{
			name:  "typed",
			input: "hello\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n", Title: "Name"}},
			want:  walk.Success("hello"),
		},
		{
			name:  "empty takes default",
			input: "\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}, Default: "app"},
			want:  walk.Success("app"),
		},
		{
			name:  "last line without newline",
			input: "tail",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}},
			want:  walk.Success("tail"),
		},
		{
			name:  "end of input cancels",
			input: "",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}},
			want:  walk.Cancel(),
		},
		{
			name:  "back keyword",
			input: "back\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}},
			want:  walk.Back(),
		},
		{
			name:  "cancel keyword ignores case",
			input: "CANCEL\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}},
			want:  walk.Cancel(),
		},
		{
			name:  "number",
			input: "abc\n42.5\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}, Number: true},
			want:  walk.Success(42.5),
		},
		{
			name:  "number default",
			input: "\n",
			cfg:   walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}, Number: true, Default: "8080"},
			want:  walk.Success(8080.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(tt.input)
			assert.Equal(t, tt.want, term.InputText(ctx, tt.cfg))
		})
	}
}

func TestTerminal_RepromptsUntilValid(t *testing.T) {
	term, out := newTestTerminal("\nab\nabc\n")
	cfg := walk.TextConfig{PromptConfig: walk.PromptConfig{
		Name: "n",
		Validate: func(_ context.Context, v any) string {
			if len(v.(string)) < 3 {
				return "too short"
			}
			return ""
		},
	}}

	res := term.InputText(context.Background(), cfg)

	assert.Equal(t, walk.Success("abc"), res)
	assert.Equal(t, 2, strings.Count(out.String(), "too short"))
}

func TestTerminal_CustomKeywords(t *testing.T) {
	term, _ := newTestTerminal("back\n:b\n", WithKeywords(":b", ":q"))
	cfg := walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}}

	assert.Equal(t, walk.Success("back"), term.InputText(context.Background(), cfg))
	assert.Equal(t, walk.Back(), term.InputText(context.Background(), cfg))
}

func TestTerminal_Header(t *testing.T) {
	term, out := newTestTerminal("x\n")
	term.InputText(context.Background(), walk.TextConfig{
		PromptConfig: walk.PromptConfig{Name: "n", Title: "Project name", Message: "lowercase", Step: 2, TotalSteps: 5},
		Default:      "demo",
	})

	assert.Contains(t, out.String(), "[2/5] Project name")
	assert.Contains(t, out.String(), "lowercase")
	assert.Contains(t, out.String(), "(default: demo)")
}

func TestTerminal_PasswordHidesDefault(t *testing.T) {
	term, out := newTestTerminal("\n")
	res := term.InputText(context.Background(), walk.TextConfig{
		PromptConfig: walk.PromptConfig{Name: "p"},
		Default:      "s3cret",
		Password:     true,
	})

	assert.Equal(t, walk.Success("s3cret"), res)
	assert.NotContains(t, out.String(), "s3cret")
}

func TestTerminal_SelectOption(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		def     string
		want    walk.InputResult
		wantOut []string
	}{
		{
			name:    "by number",
			input:   "2\n",
			want:    walk.Success("ts"),
			wantOut: []string{"1) Go - compiled", "2) TypeScript"},
		},
		{
			name:    "out of range then id",
			input:   "9\ngo\n",
			want:    walk.Success("go"),
			wantOut: []string{`invalid selection "9"`},
		},
		{
			name:  "default",
			input: "\n",
			def:   "ts",
			want:  walk.Success("ts"),
		},
		{
			name:    "no default requires a choice",
			input:   "\n1\n",
			want:    walk.Success("go"),
			wantOut: []string{"choose one of the options"},
		},
		{
			name:    "default no longer offered",
			input:   "\n2\n",
			def:     "rust",
			want:    walk.Success("ts"),
			wantOut: []string{"choose one of the options"},
		},
		{
			name:  "back",
			input: "back\n",
			want:  walk.Back(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTestTerminal(tt.input)
			res := term.SelectOption(ctx, walk.SelectConfig{
				PromptConfig: walk.PromptConfig{Name: "lang"},
				Options:      langs(),
				Default:      tt.def,
			})
			assert.Equal(t, tt.want, res)
			for _, w := range tt.wantOut {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestTerminal_SelectOptions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		def     []string
		want    walk.InputResult
		wantOut string
	}{
		{
			name:  "numbers deduplicated",
			input: "2, 1,2\n",
			want:  walk.Success([]string{"ts", "go"}),
		},
		{
			name:  "default",
			input: "\n",
			def:   []string{"go"},
			want:  walk.Success([]string{"go"}),
		},
		{
			name:  "default keeps offered ids",
			input: "\n",
			def:   []string{"rust", "ts"},
			want:  walk.Success([]string{"ts"}),
		},
		{
			name:    "invalid entry reprompts",
			input:   "1,x\n1\n",
			want:    walk.Success([]string{"go"}),
			wantOut: `invalid selection "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTestTerminal(tt.input)
			res := term.SelectOptions(ctx, walk.MultiSelectConfig{
				PromptConfig: walk.PromptConfig{Name: "caps"},
				Options:      langs(),
				Default:      tt.def,
			})
			assert.Equal(t, tt.want, res)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestTerminal_SelectFileUsesValidation(t *testing.T) {
	term, out := newTestTerminal("/nope\n/ok\n")
	res := term.SelectFile(context.Background(), walk.FileConfig{PromptConfig: walk.PromptConfig{
		Name: "dir",
		Validate: func(_ context.Context, v any) string {
			if v != "/ok" {
				return "does not exist"
			}
			return ""
		},
	}})

	assert.Equal(t, walk.Success("/ok"), res)
	assert.Contains(t, out.String(), "does not exist")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestTerminal_ReadError(t *testing.T) {
	term := NewTerminal(failingReader{}, &bytes.Buffer{})
	res := term.InputText(context.Background(), walk.TextConfig{PromptConfig: walk.PromptConfig{Name: "n"}})

	require.Equal(t, walk.ResultError, res.Kind)
	assert.Contains(t, res.Err.Error(), "disk on fire")
}

func TestTerminal_WithWalker(t *testing.T) {
	root := qtree.NewGroup()
	root.AddChild(qtree.NewNode(qtree.Text("name", "Name")))
	root.AddChild(qtree.NewNode(qtree.SingleSelect("lang", "Language", langs())))
	tree, err := qtree.Build(root)
	require.NoError(t, err)

	term, _ := newTestTerminal("demo\nback\nother\n2\n")
	res := walk.New(walk.NewVisitor(term)).Traverse(context.Background(), tree, qtree.Answers{})

	require.Equal(t, walk.ResultSuccess, res.Kind)
	assert.Equal(t, qtree.Answers{"name": "other", "lang": "ts"}, res.Value)
}

func TestTerminal_BackChangesComputedOptions(t *testing.T) {
	root := qtree.NewGroup()
	root.AddChild(qtree.NewNode(qtree.SingleSelect("kind", "Kind", qtree.StringOptions("a", "b"))))
	feature := &qtree.SingleSelectQuestion{
		QuestionBase: qtree.QuestionBase{Name: "feature"},
		Options: qtree.Computed(func(_ context.Context, a qtree.Answers) (qtree.OptionList, error) {
			if a.String("kind") == "a" {
				return qtree.StringOptions("x", "y"), nil
			}
			return qtree.StringOptions("y", "z"), nil
		}),
	}
	root.AddChild(qtree.NewNode(feature))
	root.AddChild(qtree.NewNode(qtree.Text("last", "Last")))
	tree, err := qtree.Build(root)
	require.NoError(t, err)

	// a; x; back to feature; back to kind; b; Enter has no default since x
	// is gone; z; last.
	term, out := newTestTerminal("1\n1\nback\nback\n2\n\n2\ndone\n")
	res := walk.New(walk.NewVisitor(term)).Traverse(context.Background(), tree, qtree.Answers{})

	require.Equal(t, walk.ResultSuccess, res.Kind, "err: %v", res.Err)
	assert.Equal(t, qtree.Answers{"kind": "b", "feature": "z", "last": "done"}, res.Value)
	assert.Contains(t, out.String(), "choose one of the options")
}
