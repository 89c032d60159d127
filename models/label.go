package models

// Label represents a single label fetched from the tracker repository
type Label struct {
	Name string `json:"name"`
}

// LabelChoice is one selectable choice projected into a slash command option.
// Name and Value both carry the label name; Discord requires them separately.
type LabelChoice struct {
	Name  string
	Value string
}
