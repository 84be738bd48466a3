package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/walk"
)

// Default navigation keywords.
const (
	DefaultBackKeyword   = "back"
	DefaultCancelKeyword = "cancel"
)

// Terminal is a line-oriented UI. Text answers are typed, selections are
// made from numbered menus. Typing the back or cancel keyword at any prompt
// navigates instead of answering, and end of input cancels.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	back   string
	cancel string
	style  styles
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithKeywords sets the back and cancel keywords. Empty values keep the
// defaults.
func WithKeywords(back, cancel string) TerminalOption {
	return func(t *Terminal) {
		if back != "" {
			t.back = back
		}
		if cancel != "" {
			t.cancel = cancel
		}
	}
}

// WithColor enables ANSI styling when the output supports it.
func WithColor(enabled bool) TerminalOption {
	return func(t *Terminal) {
		t.style = newStyles(t.out, enabled)
	}
}

// NewTerminal returns a Terminal reading from r and writing to w.
func NewTerminal(r io.Reader, w io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:     bufio.NewReader(r),
		out:    w,
		fd:     -1,
		back:   DefaultBackKeyword,
		cancel: DefaultCancelKeyword,
		style:  newStyles(w, false),
	}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (t *Terminal) InputText(ctx context.Context, cfg walk.TextConfig) walk.InputResult {
	t.header(cfg.PromptConfig)
	for {
		hint := cfg.Placeholder
		if cfg.Default != "" && !cfg.Password {
			hint = "default: " + cfg.Default
		}
		t.ask(hint)

		line, res, ok := t.read(cfg.Password)
		if !ok {
			return res
		}
		if line == "" {
			line = cfg.Default
		}

		var value any = line
		if cfg.Number {
			n, err := strconv.ParseFloat(line, 64)
			if err != nil {
				t.problem(fmt.Sprintf("%q is not a number", line))
				continue
			}
			value = n
		}
		if msg := cfg.Check(ctx, value); msg != "" {
			t.problem(msg)
			continue
		}
		return walk.Success(value)
	}
}

func (t *Terminal) SelectOption(ctx context.Context, cfg walk.SelectConfig) walk.InputResult {
	t.header(cfg.PromptConfig)
	t.menu(cfg.Options.Items)
	def := cfg.Default
	if _, found := cfg.Options.Find(def); !found {
		def = ""
	}
	for {
		hint := fmt.Sprintf("1-%d", cfg.Options.Len())
		if def != "" {
			hint += ", default: " + def
		}
		t.ask(hint)

		line, res, ok := t.read(false)
		if !ok {
			return res
		}

		id := def
		if line != "" {
			var err error
			if id, err = pick(cfg.Options.IDs(), line); err != nil {
				t.problem(err.Error())
				continue
			}
		}
		if id == "" {
			t.problem("choose one of the options")
			continue
		}
		if msg := cfg.Check(ctx, id); msg != "" {
			t.problem(msg)
			continue
		}
		return walk.Success(id)
	}
}

func (t *Terminal) SelectOptions(ctx context.Context, cfg walk.MultiSelectConfig) walk.InputResult {
	t.header(cfg.PromptConfig)
	t.menu(cfg.Options.Items)
	def := make([]string, 0, len(cfg.Default))
	for _, id := range cfg.Default {
		if _, found := cfg.Options.Find(id); found {
			def = append(def, id)
		}
	}
	for {
		hint := "comma-separated numbers"
		if len(def) > 0 {
			hint += ", default: " + strings.Join(def, ",")
		}
		t.ask(hint)

		line, res, ok := t.read(false)
		if !ok {
			return res
		}

		ids := append([]string{}, def...)
		if line != "" {
			var err error
			if ids, err = pickMany(cfg.Options.IDs(), line); err != nil {
				t.problem(err.Error())
				continue
			}
		}
		if msg := cfg.Check(ctx, ids); msg != "" {
			t.problem(msg)
			continue
		}
		return walk.Success(ids)
	}
}

func (t *Terminal) SelectFile(ctx context.Context, cfg walk.FileConfig) walk.InputResult {
	return t.InputText(ctx, walk.TextConfig{PromptConfig: cfg.PromptConfig, Default: cfg.Default})
}

func (t *Terminal) header(cfg walk.PromptConfig) {
	fmt.Fprintln(t.out)
	if cfg.TotalSteps > 0 {
		fmt.Fprintf(t.out, "%s ", t.style.progress(fmt.Sprintf("[%d/%d]", cfg.Step, cfg.TotalSteps)))
	}
	fmt.Fprintln(t.out, t.style.title(cfg.Title))
	if cfg.Message != "" {
		fmt.Fprintf(t.out, "  %s\n", t.style.hint(cfg.Message))
	}
}

func (t *Terminal) menu(items []qtree.OptionItem) {
	for i, it := range items {
		line := fmt.Sprintf("  %d) %s", i+1, it.Label)
		if it.Description != "" {
			line += " " + t.style.hint("- "+it.Description)
		}
		fmt.Fprintln(t.out, line)
	}
}

func (t *Terminal) ask(hint string) {
	if hint != "" {
		fmt.Fprintf(t.out, "%s ", t.style.hint("("+hint+")"))
	}
	fmt.Fprint(t.out, "> ")
}

func (t *Terminal) problem(msg string) {
	fmt.Fprintf(t.out, "  %s\n", t.style.problem("✗ "+msg))
}

// read returns the trimmed input line. ok is false when the line was a
// navigation keyword, input ended, or reading failed; res then holds the
// result to return.
func (t *Terminal) read(secret bool) (string, walk.InputResult, bool) {
	var (
		line string
		err  error
	)
	if secret && t.fd >= 0 {
		var b []byte
		b, err = term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		line = string(b)
	} else {
		line, err = t.in.ReadString('\n')
	}

	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", walk.Cancel(), false
		}
		return "", walk.Fail(fmt.Errorf("reading input: %w", err)), false
	}

	line = strings.TrimSpace(line)
	switch {
	case strings.EqualFold(line, t.back):
		return "", walk.Back(), false
	case strings.EqualFold(line, t.cancel):
		return "", walk.Cancel(), false
	}
	return line, walk.InputResult{}, true
}

// pick resolves a menu entry typed as its number or its id.
func pick(ids []string, in string) (string, error) {
	if n, err := strconv.Atoi(in); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("invalid selection %q: choose 1-%d", in, len(ids))
		}
		return ids[n-1], nil
	}
	for _, id := range ids {
		if id == in {
			return id, nil
		}
	}
	return "", fmt.Errorf("invalid selection %q: choose 1-%d", in, len(ids))
}

func pickMany(ids []string, in string) ([]string, error) {
	fields := strings.FieldsFunc(in, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(fields))
	seen := make(map[string]bool)
	for _, f := range fields {
		id, err := pick(ids, f)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}
