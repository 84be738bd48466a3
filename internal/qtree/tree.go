package qtree

import "fmt"

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

const treeSource = "qtree"

type entry struct {
	node     *Node
	parent   NodeID
	children []NodeID
}

// Tree is a trimmed, immutable-shape question tree stored as an arena. Node
// ids follow pre-order, the root is 0, and the parent table is built once.
type Tree struct {
	entries []entry
}

// Build trims root and freezes it into a Tree. It rejects trees that trim to
// nothing, nodes without data, questions without a name and duplicate
// question names.
func Build(root *Node) (*Tree, error) {
	if root == nil {
		return nil, NewError(treeSource, KindEmptyTree, "question tree is empty")
	}
	root = root.Trim()
	if root == nil {
		return nil, NewError(treeSource, KindEmptyTree, "question tree is empty after trimming")
	}

	t := &Tree{}
	names := make(map[string]bool)
	if err := t.add(root, NoNode, names); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) add(n *Node, parent NodeID, names map[string]bool) error {
	if n.Data == nil {
		return NewError(treeSource, KindUnsupportedNodeType, "node under %s has no data", t.describe(parent))
	}
	if q, ok := AsQuestion(n.Data); ok {
		name := q.Base().Name
		if name == "" {
			return NewError(treeSource, KindMissingName, "%s question under %s has no name", q.Type(), t.describe(parent))
		}
		if names[name] {
			return NewError(treeSource, KindDuplicateName, "question name %q is used more than once", name)
		}
		names[name] = true
	}

	id := NodeID(len(t.entries))
	t.entries = append(t.entries, entry{node: n, parent: parent})
	if parent != NoNode {
		t.entries[parent].children = append(t.entries[parent].children, id)
	}
	for _, c := range n.Children {
		if err := t.add(c, id, names); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) describe(id NodeID) string {
	if id == NoNode {
		return "the root"
	}
	if q, ok := AsQuestion(t.entries[id].node.Data); ok {
		return fmt.Sprintf("question %q", q.Base().Name)
	}
	return fmt.Sprintf("group #%d", id)
}

// Root returns the root id.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.entries) }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node { return t.entries[id].node }

// Parent returns the parent id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.entries[id].parent }

// Children returns the child ids in document order.
func (t *Tree) Children(id NodeID) []NodeID { return t.entries[id].children }

// Question returns the question at id, if the node is not a group.
func (t *Tree) Question(id NodeID) (Question, bool) {
	return AsQuestion(t.entries[id].node.Data)
}

// Walk calls fn for every node in pre-order with its depth.
func (t *Tree) Walk(fn func(id NodeID, depth int)) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		fn(id, depth)
		for _, c := range t.entries[id].children {
			visit(c, depth+1)
		}
	}
	visit(t.Root(), 0)
}
