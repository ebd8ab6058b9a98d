package dataset

// Datum is the semantic payload attached to every interactive shape and
// delivered with every event. Scalar payloads (ribbons, labels) use Value;
// aggregates (key points, arcs, highlight batches) list their parts in
// Values. A Datum never carries rendering state.
type Datum struct {
	Key       string  `json:"key,omitempty"`
	Attribute string  `json:"attribute,omitempty"`
	Value     Value   `json:"value,omitzero"`
	Values    []Datum `json:"values,omitempty"`
}

// Matches reports whether d refers to key and attribute. Empty arguments
// match anything.
func (d Datum) Matches(key, attribute string) bool {
	if key != "" && d.Key != key {
		return false
	}
	if attribute != "" && d.Attribute != attribute {
		return false
	}
	return true
}
