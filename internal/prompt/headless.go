package prompt

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/walk"
)

const headlessSource = "headless"

// Headless answers every question from a preset answer bag, typically
// loaded from an answers file. Preset values are weakly decoded to the
// type each question expects, so "8080" satisfies a number question and a
// single string satisfies a multi-select. A question absent from the preset
// takes its default; without one the walk fails with MissingAnswer.
// Headless never navigates back.
type Headless struct {
	preset qtree.Answers
}

// NewHeadless returns a Headless UI over preset.
func NewHeadless(preset qtree.Answers) *Headless {
	if preset == nil {
		preset = qtree.Answers{}
	}
	return &Headless{preset: preset}
}

func (h *Headless) InputText(ctx context.Context, cfg walk.TextConfig) walk.InputResult {
	raw, ok := h.preset[cfg.Name]
	if !ok {
		if cfg.Default == "" {
			return missing(cfg.PromptConfig)
		}
		raw = cfg.Default
	}

	var value any
	if cfg.Number {
		var n float64
		if err := mapstructure.WeakDecode(raw, &n); err != nil {
			return invalid(cfg.PromptConfig, err.Error())
		}
		value = n
	} else {
		var s string
		if err := mapstructure.WeakDecode(raw, &s); err != nil {
			return invalid(cfg.PromptConfig, err.Error())
		}
		value = s
	}
	return accept(ctx, cfg.PromptConfig, value)
}

func (h *Headless) SelectOption(ctx context.Context, cfg walk.SelectConfig) walk.InputResult {
	raw, ok := h.preset[cfg.Name]
	if !ok {
		if cfg.Default == "" {
			return missing(cfg.PromptConfig)
		}
		raw = cfg.Default
	}

	id, err := optionID(raw)
	if err != nil {
		return invalid(cfg.PromptConfig, err.Error())
	}
	if _, found := cfg.Options.Find(id); !found {
		return invalid(cfg.PromptConfig, "\""+id+"\" is not one of the options")
	}
	return accept(ctx, cfg.PromptConfig, id)
}

func (h *Headless) SelectOptions(ctx context.Context, cfg walk.MultiSelectConfig) walk.InputResult {
	raw, ok := h.preset[cfg.Name]
	if !ok {
		if cfg.Default == nil {
			return missing(cfg.PromptConfig)
		}
		raw = cfg.Default
	}

	var entries []any
	if err := mapstructure.WeakDecode(raw, &entries); err != nil {
		return invalid(cfg.PromptConfig, err.Error())
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		id, err := optionID(e)
		if err != nil {
			return invalid(cfg.PromptConfig, err.Error())
		}
		if _, found := cfg.Options.Find(id); !found {
			return invalid(cfg.PromptConfig, "\""+id+"\" is not one of the options")
		}
		ids = append(ids, id)
	}
	return accept(ctx, cfg.PromptConfig, ids)
}

func (h *Headless) SelectFile(ctx context.Context, cfg walk.FileConfig) walk.InputResult {
	return h.InputText(ctx, walk.TextConfig{PromptConfig: cfg.PromptConfig, Default: cfg.Default})
}

// optionID accepts an option as its id or as an option record.
func optionID(raw any) (string, error) {
	if m, ok := raw.(map[string]any); ok {
		var item qtree.OptionItem
		if err := mapstructure.WeakDecode(m, &item); err != nil {
			return "", err
		}
		return item.ID, nil
	}
	var id string
	if err := mapstructure.WeakDecode(raw, &id); err != nil {
		return "", err
	}
	return id, nil
}

func accept(ctx context.Context, cfg walk.PromptConfig, value any) walk.InputResult {
	if msg := cfg.Check(ctx, value); msg != "" {
		return invalid(cfg, msg)
	}
	return walk.Success(value)
}

func missing(cfg walk.PromptConfig) walk.InputResult {
	return walk.Fail(qtree.NewError(headlessSource, qtree.KindMissingAnswer,
		"no answer for %q and no default", cfg.Name))
}

func invalid(cfg walk.PromptConfig, msg string) walk.InputResult {
	return walk.Fail(qtree.NewError(headlessSource, qtree.KindInvalidAnswer,
		"answer for %q rejected: %s", cfg.Name, msg))
}
