package walk

import (
	"context"
	"slices"

	"github.com/agentx-labs/qflow/internal/qtree"
)

// walkState is the traversal state: nodes pending visitation (top of stack
// last), nodes fully visited in order, and the progress counter. Every
// transition returns a new state and leaves its receiver untouched.
type walkState struct {
	stack   []qtree.NodeID
	history []qtree.NodeID
	step    int
}

func newWalkState(root qtree.NodeID) walkState {
	return walkState{stack: []qtree.NodeID{root}}
}

// pop removes the top of the stack.
func (s walkState) pop() (qtree.NodeID, walkState, bool) {
	if len(s.stack) == 0 {
		return qtree.NoNode, s, false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = slices.Clone(s.stack[:len(s.stack)-1])
	return top, s, true
}

// push puts ids on the stack; the last one ends up on top.
func (s walkState) push(ids ...qtree.NodeID) walkState {
	s.stack = append(slices.Clone(s.stack), ids...)
	return s
}

// pushChildren pushes the children of id in reverse order so the first child
// is popped first.
func (s walkState) pushChildren(tree *qtree.Tree, id qtree.NodeID) walkState {
	children := tree.Children(id)
	if len(children) == 0 {
		return s
	}
	rev := slices.Clone(children)
	slices.Reverse(rev)
	return s.push(rev...)
}

// dropPendingChildren pops the children of id sitting on top of the stack.
func (s walkState) dropPendingChildren(tree *qtree.Tree, id qtree.NodeID) walkState {
	n := len(s.stack)
	for n > 0 && tree.Parent(s.stack[n-1]) == id {
		n--
	}
	s.stack = slices.Clone(s.stack[:n])
	return s
}

// visited appends id to the history.
func (s walkState) visited(id qtree.NodeID) walkState {
	s.history = append(slices.Clone(s.history), id)
	return s
}

// popHistory removes the most recent history entry.
func (s walkState) popHistory() (qtree.NodeID, walkState, bool) {
	if len(s.history) == 0 {
		return qtree.NoNode, s, false
	}
	last := s.history[len(s.history)-1]
	s.history = slices.Clone(s.history[:len(s.history)-1])
	return last, s, true
}

// rewind handles a back request raised while visiting curr. curr goes back
// on the stack, then history is unwound, each unwound node returning to the
// stack with its pending children removed, until a question the user
// actually answers is found: groups, func questions and selects that
// currently auto-skip are passed over. found is false when history runs out.
//
// Auto-skip is evaluated against the current answers, not the answers at
// the time the node was first visited.
func rewind(ctx context.Context, tree *qtree.Tree, answers qtree.Answers, s walkState, curr qtree.NodeID) (walkState, bool, error) {
	s = s.dropPendingChildren(tree, curr).push(curr)

	for {
		last, next, ok := s.popHistory()
		if !ok {
			return s, false, nil
		}
		s = next.dropPendingChildren(tree, last).push(last)

		q, isQuestion := tree.Question(last)
		if !isQuestion {
			continue
		}
		switch q.(type) {
		case *qtree.FuncQuestion:
			continue
		case *qtree.SingleSelectQuestion, *qtree.MultiSelectQuestion:
			loaded, err := qtree.LoadOptions(ctx, q, answers)
			if err != nil {
				return s, false, err
			}
			if loaded.AutoSkip {
				continue
			}
		}

		s.step = countQuestions(tree, s.history)
		return s, true, nil
	}
}

// countQuestions counts the non-group nodes among ids.
func countQuestions(tree *qtree.Tree, ids []qtree.NodeID) int {
	n := 0
	for _, id := range ids {
		if _, ok := tree.Question(id); ok {
			n++
		}
	}
	return n
}
