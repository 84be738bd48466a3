package walk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentx-labs/qflow/internal/logging"
	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/validation"
)

// Engine walks question trees with a Visitor. An Engine holds no per-walk
// state, but Traverse records answers on the questions of the tree it walks,
// so concurrent traversals each need their own Tree.
type Engine struct {
	visitor Visitor
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine that asks visitor for every question.
func New(visitor Visitor, opts ...Option) *Engine {
	e := &Engine{visitor: visitor, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Traverse walks tree, storing every accepted answer on its question and in
// answers. It returns a Success result carrying answers when the walk
// completes, the Cancel or Error result that stopped it, or Back when the
// user went back past the first question. answers keeps whatever was
// collected before the walk stopped.
func (e *Engine) Traverse(ctx context.Context, tree *qtree.Tree, answers qtree.Answers) InputResult {
	if answers == nil {
		answers = qtree.Answers{}
	}

	st := newWalkState(tree.Root())
	first := ""

	for {
		if err := ctx.Err(); err != nil {
			return Fail(fmt.Errorf("traversal interrupted: %w", err))
		}

		curr, next, ok := st.pop()
		if !ok {
			break
		}
		st = next

		skip, err := e.pruned(ctx, tree, answers, curr)
		if err != nil {
			return Fail(err)
		}
		if skip {
			continue
		}

		if q, isQuestion := tree.Question(curr); isQuestion {
			name := q.Base().Name
			if first == "" {
				first = name
				e.logger.Debug("first question", "name", name)
			}

			st.step++
			total := st.step + len(st.stack)
			res := e.visit(ctx, q, answers, st.step, total)

			switch res.Kind {
			case ResultBack:
				rewound, found, err := rewind(ctx, tree, answers, st, curr)
				if err != nil {
					return Fail(err)
				}
				if !found {
					e.logger.Debug("back past first question", "name", name)
					return Back()
				}
				st = rewound
				continue
			case ResultCancel:
				e.logger.Debug("traversal canceled", "name", name)
				return res
			case ResultError:
				e.logger.Debug("traversal failed", "name", name, "error", res.Err)
				return res
			case ResultSuccess, ResultPass:
				q.Base().Value = res.Value
				answers[name] = res.Value
			default:
				return Fail(fmt.Errorf("question %q: unknown result kind %q", name, res.Kind))
			}
		}

		st = st.visited(curr).pushChildren(tree, curr)
	}

	return Success(answers)
}

// pruned reports whether the node's condition rejects its parent's answer.
// A parent without an answer (including groups) never prunes.
func (e *Engine) pruned(ctx context.Context, tree *qtree.Tree, answers qtree.Answers, id qtree.NodeID) (bool, error) {
	cond := tree.Node(id).Condition
	if cond == nil {
		return false, nil
	}
	parent := tree.Parent(id)
	if parent == qtree.NoNode {
		return false, nil
	}
	pq, ok := tree.Question(parent)
	if !ok {
		return false, nil
	}
	value := qtree.ConditionValue(pq)
	if value == nil {
		return false, nil
	}

	msg, err := validation.Check(ctx, cond, value, answers)
	if err != nil {
		return false, fmt.Errorf("evaluating condition under %q: %w", pq.Base().Name, err)
	}
	if msg != "" {
		e.logger.Debug("branch pruned", "parent", pq.Base().Name, "reason", msg)
		return true, nil
	}
	return false, nil
}

func (e *Engine) visit(ctx context.Context, q qtree.Question, answers qtree.Answers, step, total int) (res InputResult) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail(fmt.Errorf("visiting question %q: panic: %v", q.Base().Name, r))
		}
	}()
	e.logger.Debug("visiting question", "name", q.Base().Name, "step", step, "total", total)
	return e.visitor.Visit(ctx, q, answers, step, total)
}
