package qtree

import "context"

const optionsSource = "options"

// OptionsResult is the outcome of loading a question's options.
type OptionsResult struct {
	// AutoSkip is set when the question can be answered without asking:
	// it skips single options and exactly one option was loaded.
	AutoSkip bool
	Options  OptionList
}

// LoadOptions resolves the option list of a select question against the
// current answers. Non-select questions yield an empty result. The result is
// recomputed on every call and never cached, so auto-skip can be
// re-evaluated after earlier answers change.
func LoadOptions(ctx context.Context, q Question, answers Answers) (OptionsResult, error) {
	var (
		value Value[OptionList]
		skip  bool
	)
	switch s := q.(type) {
	case *SingleSelectQuestion:
		value, skip = s.Options, s.SkipSingleOption
	case *MultiSelectQuestion:
		value, skip = s.Options, s.SkipSingleOption
	default:
		return OptionsResult{}, nil
	}

	list, err := value.Resolve(ctx, answers)
	if err != nil {
		return OptionsResult{}, WrapError(optionsSource, KindComputeFailed, err,
			"loading options for %q", q.Base().Name)
	}
	return OptionsResult{
		AutoSkip: skip && list.Len() == 1,
		Options:  list,
	}, nil
}

// SingleOption returns the answer implied by choosing the first (normally
// the only) option of list. Plain lists yield the string; record lists yield
// the id, or the record when q returns objects. Multi-select answers are
// wrapped in a one-element slice. An empty list yields nil.
func SingleOption(q Question, list OptionList) any {
	if list.Len() == 0 {
		return nil
	}
	item := list.Items[0]

	switch s := q.(type) {
	case *SingleSelectQuestion:
		if s.ReturnObject && !list.Plain {
			return item
		}
		return item.ID
	case *MultiSelectQuestion:
		if s.ReturnObject && !list.Plain {
			return []OptionItem{item}
		}
		return []string{item.ID}
	default:
		return nil
	}
}

// ConditionValue returns the value a child's trigger condition is evaluated
// against. Conditions are expressed against ids, so option records stored by
// ReturnObject selects are reduced to their ids. A nil result means the
// question has no answer yet.
func ConditionValue(q Question) any {
	switch v := q.Base().Value.(type) {
	case OptionItem:
		return v.ID
	case *OptionItem:
		if v == nil {
			return nil
		}
		return v.ID
	case []OptionItem:
		return itemIDs(v)
	default:
		return v
	}
}
