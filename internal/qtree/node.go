package qtree

import "github.com/agentx-labs/qflow/internal/validation"

// Node is one node of a question tree under construction. Children are
// owned by their parent; a node must not be added to two parents.
type Node struct {
	Data Data

	// Condition is evaluated against the parent's answer. When it rejects
	// that answer the node and its whole subtree are skipped.
	Condition *validation.Schema

	Children []*Node
}

// NewNode returns a node carrying d.
func NewNode(d Data) *Node {
	return &Node{Data: d}
}

// NewGroup returns a group node.
func NewGroup() *Node {
	return &Node{Data: &Group{}}
}

// When sets the trigger condition and returns n.
func (n *Node) When(cond *validation.Schema) *Node {
	n.Condition = cond
	return n
}

// AddChild appends child and returns it, so nested trees can be built
// fluently.
func (n *Node) AddChild(child *Node) *Node {
	if n.Children == nil {
		n.Children = make([]*Node, 0, 1)
	}
	n.Children = append(n.Children, child)
	return child
}

// IsGroup reports whether n is a group node.
func (n *Node) IsGroup() bool {
	_, ok := n.Data.(*Group)
	return ok
}

// Trim compacts the subtree rooted at n, children first. A group left with
// no children trims to nil and must be dropped by the caller. A group left
// with exactly one child is replaced by that child, which takes over the
// group's condition (the child's own condition is discarded). Any other node
// trims to itself.
func (n *Node) Trim() *Node {
	if len(n.Children) > 0 {
		kept := n.Children[:0]
		for _, c := range n.Children {
			if t := c.Trim(); t != nil {
				kept = append(kept, t)
			}
		}
		for i := len(kept); i < len(n.Children); i++ {
			n.Children[i] = nil
		}
		n.Children = kept
	}

	if !n.IsGroup() {
		return n
	}
	switch len(n.Children) {
	case 0:
		return nil
	case 1:
		child := n.Children[0]
		child.Condition = n.Condition
		return child
	default:
		return n
	}
}
