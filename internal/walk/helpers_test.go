package walk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/qflow/internal/qtree"
)

// fakeUI answers prompts from per-question reply queues and records what was
// asked. Without a queued reply it accepts the default or the first option.
type fakeUI struct {
	replies  map[string][]InputResult
	prompted []string
	text     map[string]TextConfig
	selects  map[string]SelectConfig
	multis   map[string]MultiSelectConfig
	files    map[string]FileConfig
}

func newFakeUI() *fakeUI {
	return &fakeUI{
		replies: map[string][]InputResult{},
		text:    map[string]TextConfig{},
		selects: map[string]SelectConfig{},
		multis:  map[string]MultiSelectConfig{},
		files:   map[string]FileConfig{},
	}
}

func (u *fakeUI) reply(name string, rs ...InputResult) *fakeUI {
	u.replies[name] = append(u.replies[name], rs...)
	return u
}

func (u *fakeUI) next(name string, fallback any) InputResult {
	u.prompted = append(u.prompted, name)
	if rs := u.replies[name]; len(rs) > 0 {
		u.replies[name] = rs[1:]
		return rs[0]
	}
	return Success(fallback)
}

func (u *fakeUI) InputText(_ context.Context, cfg TextConfig) InputResult {
	u.text[cfg.Name] = cfg
	if cfg.Number {
		return u.next(cfg.Name, 1.0)
	}
	fallback := cfg.Default
	if fallback == "" {
		fallback = cfg.Name + "-value"
	}
	return u.next(cfg.Name, fallback)
}

func (u *fakeUI) SelectOption(_ context.Context, cfg SelectConfig) InputResult {
	u.selects[cfg.Name] = cfg
	return u.next(cfg.Name, cfg.Options.Items[0].ID)
}

func (u *fakeUI) SelectOptions(_ context.Context, cfg MultiSelectConfig) InputResult {
	u.multis[cfg.Name] = cfg
	return u.next(cfg.Name, []string{cfg.Options.Items[0].ID})
}

func (u *fakeUI) SelectFile(_ context.Context, cfg FileConfig) InputResult {
	u.files[cfg.Name] = cfg
	return u.next(cfg.Name, cfg.Default)
}

type visit struct {
	name  string
	step  int
	total int
}

// scriptVisitor answers every question with its own name unless a reply is
// queued for it.
type scriptVisitor struct {
	replies map[string][]InputResult
	visits  []visit
}

func newScript() *scriptVisitor {
	return &scriptVisitor{replies: map[string][]InputResult{}}
}

func (s *scriptVisitor) reply(name string, rs ...InputResult) *scriptVisitor {
	s.replies[name] = append(s.replies[name], rs...)
	return s
}

func (s *scriptVisitor) Visit(_ context.Context, q qtree.Question, _ qtree.Answers, step, total int) InputResult {
	name := q.Base().Name
	s.visits = append(s.visits, visit{name: name, step: step, total: total})
	if rs := s.replies[name]; len(rs) > 0 {
		s.replies[name] = rs[1:]
		return rs[0]
	}
	return Success(name)
}

func (s *scriptVisitor) names() []string {
	out := make([]string, len(s.visits))
	for i, v := range s.visits {
		out[i] = v.name
	}
	return out
}

func text(name string) *qtree.Node {
	return qtree.NewNode(qtree.Text(name, ""))
}

// flat returns a group of text questions.
func flat(names ...string) *qtree.Node {
	root := qtree.NewGroup()
	for _, n := range names {
		root.AddChild(text(n))
	}
	return root
}

func build(t *testing.T, root *qtree.Node) *qtree.Tree {
	t.Helper()
	tree, err := qtree.Build(root)
	require.NoError(t, err)
	return tree
}
