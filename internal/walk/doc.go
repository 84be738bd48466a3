// Package walk traverses question trees. The Engine performs a pre-order,
// depth-first walk with an explicit stack, prunes subtrees whose trigger
// condition rejects the parent's answer, asks a Visitor for each question and
// supports going back to the previous question the user actually saw.
//
// NewVisitor provides the standard Visitor: it runs func questions, loads
// and auto-skips select options and delegates everything the user must
// answer to a UI.
package walk
