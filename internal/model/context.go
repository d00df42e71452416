package model

// EvalContext is the layered bag of already-known values a condition rule
// resolves its operand from. Answers holds globally entered values merged,
// when evaluating a specific participant, with that participant's own
// answers (participant keys win).
type EvalContext struct {
	Guardian    map[string]any `json:"guardian"`
	Participant map[string]any `json:"participant,omitempty"`
	Answers     map[string]any `json:"answers"`
}

// MergeAnswers overlays participant answers onto global answers without
// mutating either input
func MergeAnswers(global, participant map[string]any) map[string]any {
	merged := make(map[string]any, len(global)+len(participant))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range participant {
		merged[k] = v
	}
	return merged
}
