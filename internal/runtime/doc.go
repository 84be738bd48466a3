// Package runtime detects the language toolchains installed on the machine.
// The new-project questionnaire uses the detected versions as defaults for
// its runtime questions.
package runtime
