package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/answers"
	"github.com/agentx-labs/qflow/internal/definition"
	"github.com/agentx-labs/qflow/internal/prompt"
	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/walk"
)

// walkOptions are the flags shared by the commands that run a questionnaire.
type walkOptions struct {
	answersFile    string
	nonInteractive bool
	format         string
	output         string
}

func addWalkFlags(cmd *cobra.Command, o *walkOptions) {
	cmd.Flags().StringVarP(&o.answersFile, "answers", "a", "", "Answers file (YAML, TOML or JSON); implies --non-interactive")
	cmd.Flags().BoolVar(&o.nonInteractive, "non-interactive", false, "Never prompt; take preset answers or defaults")
	cmd.Flags().StringVarP(&o.format, "format", "f", "yaml", "Output format: yaml, json or toml")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write answers to a file instead of stdout")
}

// runQuestionnaire walks tree with the UI selected by o and writes the
// collected answers. It returns nil on success and when the user went back
// past the first question.
func runQuestionnaire(cmd *cobra.Command, tree *qtree.Tree, o walkOptions) (qtree.Answers, error) {
	format := definition.Format(o.format)
	switch format {
	case definition.FormatYAML, definition.FormatJSON, definition.FormatTOML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (use yaml, json or toml)", o.format)
	}

	ui, err := selectUI(cmd, o)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	engine := walk.New(walk.NewVisitor(ui), walk.WithLogger(logger))
	res := engine.Traverse(ctx, tree, qtree.Answers{})

	switch res.Kind {
	case walk.ResultSuccess:
		bag := res.Value.(qtree.Answers)
		if err := writeAnswers(cmd, bag, format, o.output); err != nil {
			return nil, err
		}
		return bag, nil
	case walk.ResultBack:
		fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to go back to; no answers collected.")
		return nil, nil
	case walk.ResultCancel:
		return nil, ErrCanceled
	default:
		if errors.Is(res.Err, context.Canceled) {
			return nil, ErrCanceled
		}
		return nil, res.Err
	}
}

func selectUI(cmd *cobra.Command, o walkOptions) (walk.UI, error) {
	if o.answersFile != "" || o.nonInteractive {
		preset := qtree.Answers{}
		if o.answersFile != "" {
			var err error
			if preset, err = answers.Load(o.answersFile); err != nil {
				return nil, err
			}
		}
		logger.Debug("answering from preset", "answers", len(preset))
		return prompt.NewHeadless(preset), nil
	}

	out := cmd.ErrOrStderr()
	color := settings.Color
	if f, ok := out.(*os.File); !ok || !prompt.IsInteractive(f) {
		color = false
	}
	return prompt.NewTerminal(cmd.InOrStdin(), out,
		prompt.WithKeywords(settings.BackKeyword, settings.CancelKeyword),
		prompt.WithColor(color),
	), nil
}

// createFile opens the --output file.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func writeAnswers(cmd *cobra.Command, bag qtree.Answers, format definition.Format, path string) (err error) {
	if path == "" {
		return writeTo(cmd.OutOrStdout(), bag, format)
	}

	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("creating answers file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing answers file %s: %w", path, cerr)
		}
	}()
	return writeTo(f, bag, format)
}

func writeTo(w io.Writer, bag qtree.Answers, format definition.Format) error {
	if err := answers.Write(w, bag, format); err != nil {
		return fmt.Errorf("writing answers: %w", err)
	}
	return nil
}
