package walk

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/validation"
)

const visitorSource = "visitor"

// Visitor produces the answer for one question. step and totalSteps are
// progress hints only.
type Visitor interface {
	Visit(ctx context.Context, q qtree.Question, answers qtree.Answers, step, totalSteps int) InputResult
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(ctx context.Context, q qtree.Question, answers qtree.Answers, step, totalSteps int) InputResult

func (f VisitorFunc) Visit(ctx context.Context, q qtree.Question, answers qtree.Answers, step, totalSteps int) InputResult {
	return f(ctx, q, answers, step, totalSteps)
}

type questionVisitor struct {
	ui UI
}

// NewVisitor returns the standard Visitor backed by ui.
func NewVisitor(ui UI) Visitor {
	return &questionVisitor{ui: ui}
}

func (v *questionVisitor) Visit(ctx context.Context, q qtree.Question, answers qtree.Answers, step, totalSteps int) InputResult {
	switch q := q.(type) {
	case *qtree.FuncQuestion:
		return runFunc(ctx, q, answers)
	case *qtree.TextQuestion:
		return v.text(ctx, q, answers, step, totalSteps)
	case *qtree.NumberQuestion:
		return v.number(ctx, q, answers, step, totalSteps)
	case *qtree.SingleSelectQuestion:
		return v.singleSelect(ctx, q, answers, step, totalSteps)
	case *qtree.MultiSelectQuestion:
		return v.multiSelect(ctx, q, answers, step, totalSteps)
	case *qtree.FileQuestion:
		return v.file(ctx, q, answers, step, totalSteps)
	default:
		return Fail(qtree.NewError(visitorSource, qtree.KindUnsupportedNodeType,
			"question %q has unsupported type %q", q.Base().Name, q.Type()))
	}
}

func runFunc(ctx context.Context, q *qtree.FuncQuestion, answers qtree.Answers) (res InputResult) {
	if q.Func == nil {
		return Fail(qtree.NewError(visitorSource, qtree.KindFuncFailed, "func question %q has no function", q.Name))
	}
	defer func() {
		if r := recover(); r != nil {
			res = Fail(qtree.NewError(visitorSource, qtree.KindFuncFailed, "func question %q panicked: %v", q.Name, r))
		}
	}()

	out, err := q.Func(ctx, answers)
	if err != nil {
		return Fail(qtree.WrapError(visitorSource, qtree.KindFuncFailed, err, "func question %q failed", q.Name))
	}
	return Success(out)
}

func (v *questionVisitor) text(ctx context.Context, q *qtree.TextQuestion, answers qtree.Answers, step, total int) InputResult {
	pc, err := promptConfig(ctx, q, answers, step, total, nil)
	if err != nil {
		return Fail(err)
	}
	def, err := resolveDefault(ctx, q, q.Default, answers)
	if err != nil {
		return Fail(err)
	}
	if prev, ok := q.Value.(string); ok {
		def = prev
	}
	return v.ui.InputText(ctx, TextConfig{PromptConfig: pc, Default: def, Password: q.Password})
}

func (v *questionVisitor) number(ctx context.Context, q *qtree.NumberQuestion, answers qtree.Answers, step, total int) InputResult {
	pc, err := promptConfig(ctx, q, answers, step, total, nil)
	if err != nil {
		return Fail(err)
	}
	var def string
	if q.Default.IsSet() {
		n, err := resolveDefault(ctx, q, q.Default, answers)
		if err != nil {
			return Fail(err)
		}
		def = formatNumber(n)
	}
	if prev, ok := q.Value.(float64); ok {
		def = formatNumber(prev)
	}
	return v.ui.InputText(ctx, TextConfig{PromptConfig: pc, Default: def, Number: true})
}

func (v *questionVisitor) singleSelect(ctx context.Context, q *qtree.SingleSelectQuestion, answers qtree.Answers, step, total int) InputResult {
	opts, res, done := loadOptions(ctx, q, answers)
	if done {
		return res
	}

	pc, err := promptConfig(ctx, q, answers, step, total, nil)
	if err != nil {
		return Fail(err)
	}
	def, err := resolveDefault(ctx, q, q.Default, answers)
	if err != nil {
		return Fail(err)
	}
	if prev, ok := qtree.ConditionValue(q).(string); ok {
		def = prev
	}
	if _, found := opts.Find(def); !found {
		def = ""
	}

	res = v.ui.SelectOption(ctx, SelectConfig{PromptConfig: pc, Options: opts, Default: def})
	if res.Kind != ResultSuccess {
		return res
	}

	id, ok := res.Value.(string)
	if !ok {
		return Fail(qtree.NewError(visitorSource, qtree.KindInvalidAnswer,
			"question %q: expected an option id, got %T", q.Name, res.Value))
	}
	item, found := opts.Find(id)
	if !found {
		return Fail(qtree.NewError(visitorSource, qtree.KindInvalidAnswer,
			"question %q: %q is not one of the options", q.Name, id))
	}
	if q.ReturnObject && !opts.Plain {
		return Success(item)
	}
	return Success(id)
}

func (v *questionVisitor) multiSelect(ctx context.Context, q *qtree.MultiSelectQuestion, answers qtree.Answers, step, total int) InputResult {
	opts, res, done := loadOptions(ctx, q, answers)
	if done {
		return res
	}

	pc, err := promptConfig(ctx, q, answers, step, total, nil)
	if err != nil {
		return Fail(err)
	}
	def, err := resolveDefault(ctx, q, q.Default, answers)
	if err != nil {
		return Fail(err)
	}
	if prev, ok := qtree.ConditionValue(q).([]string); ok {
		def = prev
	}
	def = offered(opts, def)

	res = v.ui.SelectOptions(ctx, MultiSelectConfig{PromptConfig: pc, Options: opts, Default: def})
	if res.Kind != ResultSuccess {
		return res
	}

	ids, ok := res.Value.([]string)
	if !ok {
		return Fail(qtree.NewError(visitorSource, qtree.KindInvalidAnswer,
			"question %q: expected option ids, got %T", q.Name, res.Value))
	}
	items := make([]qtree.OptionItem, 0, len(ids))
	for _, id := range ids {
		item, found := opts.Find(id)
		if !found {
			return Fail(qtree.NewError(visitorSource, qtree.KindInvalidAnswer,
				"question %q: %q is not one of the options", q.Name, id))
		}
		items = append(items, item)
	}
	if q.ReturnObject && !opts.Plain {
		return Success(items)
	}
	return Success(ids)
}

func (v *questionVisitor) file(ctx context.Context, q *qtree.FileQuestion, answers qtree.Answers, step, total int) InputResult {
	pc, err := promptConfig(ctx, q, answers, step, total, pathExists(q.Folder))
	if err != nil {
		return Fail(err)
	}
	def, err := resolveDefault(ctx, q, q.Default, answers)
	if err != nil {
		return Fail(err)
	}
	if prev, ok := q.Value.(string); ok {
		def = prev
	}
	return v.ui.SelectFile(ctx, FileConfig{PromptConfig: pc, Folder: q.Folder, Default: def})
}

// offered returns the ids still among the options. Options
// computed from earlier answers can change after a back navigation.
func offered(opts qtree.OptionList, ids []string) []string {
	var out []string
	for _, id := range ids {
		if _, found := opts.Find(id); found {
			out = append(out, id)
		}
	}
	return out
}

// loadOptions loads the options of a select question. done is set when the
// question is settled without the UI: loading failed, the list is empty, or
// the question auto-skips.
func loadOptions(ctx context.Context, q qtree.Question, answers qtree.Answers) (qtree.OptionList, InputResult, bool) {
	loaded, err := qtree.LoadOptions(ctx, q, answers)
	if err != nil {
		return qtree.OptionList{}, Fail(err), true
	}
	if loaded.Options.Len() == 0 {
		return qtree.OptionList{}, Fail(qtree.NewError(visitorSource, qtree.KindEmptySelectOption,
			"question %q has no options to select from", q.Base().Name)), true
	}
	if loaded.AutoSkip {
		return loaded.Options, Pass(qtree.SingleOption(q, loaded.Options)), true
	}
	return loaded.Options, InputResult{}, false
}

// promptConfig resolves the shared late-bound fields of q.
func promptConfig(ctx context.Context, q qtree.Question, answers qtree.Answers, step, total int, extra func(any) string) (PromptConfig, error) {
	b := q.Base()
	pc := PromptConfig{
		Name:       b.Name,
		Step:       step,
		TotalSteps: total,
		Validate:   validator(b.Validation, answers, extra),
	}

	var err error
	if pc.Title, err = resolveField(ctx, q, "title", b.Title, answers); err != nil {
		return pc, err
	}
	if pc.Message, err = resolveField(ctx, q, "prompt", b.Prompt, answers); err != nil {
		return pc, err
	}
	if pc.Placeholder, err = resolveField(ctx, q, "placeholder", b.Placeholder, answers); err != nil {
		return pc, err
	}
	if pc.Title == "" {
		pc.Title = b.Name
	}
	return pc, nil
}

func resolveField(ctx context.Context, q qtree.Question, field string, v qtree.Value[string], answers qtree.Answers) (string, error) {
	s, err := v.Resolve(ctx, answers)
	if err != nil {
		return "", qtree.WrapError(visitorSource, qtree.KindComputeFailed, err,
			"resolving %s of %q", field, q.Base().Name)
	}
	return s, nil
}

func resolveDefault[T any](ctx context.Context, q qtree.Question, v qtree.Value[T], answers qtree.Answers) (T, error) {
	out, err := v.Resolve(ctx, answers)
	if err != nil {
		return out, qtree.WrapError(visitorSource, qtree.KindComputeFailed, err,
			"resolving default of %q", q.Base().Name)
	}
	return out, nil
}

// validator combines the question's schema with a type-specific check.
func validator(schema *validation.Schema, answers qtree.Answers, extra func(any) string) func(context.Context, any) string {
	return func(ctx context.Context, value any) string {
		msg, err := validation.Check(ctx, schema, value, answers)
		if err != nil {
			return err.Error()
		}
		if msg != "" {
			return msg
		}
		if extra != nil {
			return extra(value)
		}
		return ""
	}
}

func pathExists(folder bool) func(any) string {
	return func(value any) string {
		p, _ := value.(string)
		if p == "" {
			return "a path is required"
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Sprintf("%s does not exist", p)
		}
		if folder && !info.IsDir() {
			return fmt.Sprintf("%s is not a folder", p)
		}
		if !folder && info.IsDir() {
			return fmt.Sprintf("%s is a folder, not a file", p)
		}
		return ""
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
