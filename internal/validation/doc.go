// Package validation evaluates validation schemas against candidate answer
// values. The same schema type serves two purposes: trigger conditions that
// decide whether a question node is visited, and input validation applied by
// prompters before they accept an answer.
//
// Declarative keywords are translated into a JSON Schema document and checked
// with the santhosh-tekuri/jsonschema validator. The semver keyword and the
// Func hook are evaluated in Go.
package validation
