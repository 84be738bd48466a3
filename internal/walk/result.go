package walk

// ResultKind is the outcome of visiting one question, or of a whole
// traversal.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	// ResultPass is a success produced without asking the user (auto-skip).
	ResultPass   ResultKind = "pass"
	ResultBack   ResultKind = "back"
	ResultCancel ResultKind = "cancel"
	ResultError  ResultKind = "error"
)

// InputResult is the contract between the engine, visitors and UIs.
type InputResult struct {
	Kind  ResultKind
	Value any
	Err   error
}

// Success returns a success result carrying v.
func Success(v any) InputResult { return InputResult{Kind: ResultSuccess, Value: v} }

// Pass returns an auto-skip result carrying v.
func Pass(v any) InputResult { return InputResult{Kind: ResultPass, Value: v} }

// Back returns a go-back result.
func Back() InputResult { return InputResult{Kind: ResultBack} }

// Cancel returns a cancel result.
func Cancel() InputResult { return InputResult{Kind: ResultCancel} }

// Fail returns an error result.
func Fail(err error) InputResult { return InputResult{Kind: ResultError, Err: err} }

// Answered reports whether r carries an accepted answer.
func (r InputResult) Answered() bool {
	return r.Kind == ResultSuccess || r.Kind == ResultPass
}
