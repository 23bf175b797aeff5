package record

import "fmt"

// Record is the canonical, normalized representation of one benchmark sample.
// It is constructed once per raw row and never mutated afterwards.
type Record struct {
	ID            string   `json:"id"`
	Query         string   `json:"query"`
	Choices       []string `json:"choices"`
	CorrectChoice string   `json:"correct_choice"`
	LabelType     string   `json:"label_type"`
	Dataset       string   `json:"dataset"`
	Split         string   `json:"split"`
}

// Validate enforces the Record invariants: a non-empty, duplicate-free choice
// vocabulary and a correct choice drawn from it.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if len(r.Choices) == 0 {
		return fmt.Errorf("record %s: choices must be non-empty", r.ID)
	}
	seen := make(map[string]struct{}, len(r.Choices))
	for _, choice := range r.Choices {
		if _, dup := seen[choice]; dup {
			return fmt.Errorf("record %s: duplicate choice %q", r.ID, choice)
		}
		seen[choice] = struct{}{}
	}
	if _, ok := seen[r.CorrectChoice]; !ok {
		return fmt.Errorf("record %s: correct choice %q is not in choices", r.ID, r.CorrectChoice)
	}
	return nil
}
