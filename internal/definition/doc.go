// Package definition loads question trees declared in definition files.
//
// A definition is a YAML, TOML or JSON document naming the questionnaire,
// its semantic version and the root node of the question tree. Files are
// validated against an embedded JSON Schema before they are compiled into
// qtree nodes, so structural mistakes are reported with the location of the
// offending field.
//
// Func questions cannot be declared in files; they only exist in trees built
// in code.
package definition
