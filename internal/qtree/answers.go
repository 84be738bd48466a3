package qtree

// Answers is the answer bag: question name to answer value. It is the only
// state read by trigger conditions and computed values.
type Answers map[string]any

// Has reports whether name has an answer.
func (a Answers) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the answer for name if it is a string.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Strings returns the answer for name if it is a list of ids or strings.
func (a Answers) Strings(name string) []string {
	switch v := a[name].(type) {
	case []string:
		return v
	case []OptionItem:
		return itemIDs(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a shallow copy of the bag.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
