package model

// FormStep is one page of the multi-step form. A PerParticipant step is
// repeated once per registered participant, each repetition with its own
// answer set and independently evaluated field visibility.
type FormStep struct {
	Key            string          `json:"key" bson:"key"`
	Title          string          `json:"title" bson:"title"`
	Description    string          `json:"description,omitempty" bson:"description,omitempty"`
	Fields         []FormField     `json:"fields" bson:"fields"`
	PerParticipant bool            `json:"perParticipant" bson:"perParticipant"`
	LayoutColumns  int             `json:"layoutColumns" bson:"layoutColumns"`
	Conditions     *ConditionGroup `json:"conditionalLogic,omitempty" bson:"conditionalLogic,omitempty"`
}

// Clone returns a deep copy of the step
func (s FormStep) Clone() FormStep {
	out := s
	out.Fields = make([]FormField, len(s.Fields))
	for i, f := range s.Fields {
		out.Fields[i] = f.Clone()
	}
	out.Conditions = s.Conditions.Clone()
	return out
}
