// Package qtree models question flows as trees. A tree is declared with Node
// values (a group or a question plus an optional trigger condition evaluated
// against the parent's answer), compacted with Trim and frozen into an
// index-addressed Tree by Build before it is traversed.
//
// Questions form a closed set of variants (text, number, single-select,
// multi-select, file and func). Titles, defaults, placeholders and option
// lists are Value fields that are either literals or computed from the
// answers collected so far.
package qtree
