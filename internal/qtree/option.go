package qtree

// OptionItem is one selectable entry of a select question.
type OptionItem struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Label       string `json:"label" yaml:"label" mapstructure:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty" mapstructure:"detail"`
	Data        any    `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
}

// OptionList is the option list of a select question. Plain marks a list
// declared as raw strings; its items carry the string as both id and label,
// and answers drawn from it are always those strings.
type OptionList struct {
	Items []OptionItem
	Plain bool
}

// StringOptions builds a plain option list.
func StringOptions(ids ...string) OptionList {
	items := make([]OptionItem, len(ids))
	for i, id := range ids {
		items[i] = OptionItem{ID: id, Label: id}
	}
	return OptionList{Items: items, Plain: true}
}

// ItemOptions builds an option list of records. A missing label defaults to
// the id.
func ItemOptions(items ...OptionItem) OptionList {
	out := make([]OptionItem, len(items))
	for i, it := range items {
		if it.Label == "" {
			it.Label = it.ID
		}
		out[i] = it
	}
	return OptionList{Items: out}
}

// Len returns the number of options.
func (l OptionList) Len() int { return len(l.Items) }

// IDs returns the option ids in order.
func (l OptionList) IDs() []string { return itemIDs(l.Items) }

// Find returns the option with the given id.
func (l OptionList) Find(id string) (OptionItem, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return OptionItem{}, false
}

func itemIDs(items []OptionItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
