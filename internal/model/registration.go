package model

import "time"

// RegistrationStatus tracks a registration through the fill flow
type RegistrationStatus string

const (
	RegistrationDraft     RegistrationStatus = "draft"
	RegistrationSubmitted RegistrationStatus = "submitted"
)

// Participant is one registered person whose per-participant steps repeat.
// Profile feeds the participant.* side of rule evaluation.
type Participant struct {
	ID      string         `json:"id" bson:"id"`
	Profile map[string]any `json:"profile" bson:"profile"`
}

// Registration is one guardian's pass through a program form: the guardian
// record, the participant roster, globally entered answers and each
// participant's own answers (keyed by participant ID).
type Registration struct {
	ID                 string                    `json:"id" bson:"_id,omitempty"`
	FormID             string                    `json:"formId" bson:"formId"`
	Program            string                    `json:"program" bson:"program"`
	Status             RegistrationStatus        `json:"status" bson:"status"`
	Guardian           map[string]any            `json:"guardian" bson:"guardian"`
	Participants       []Participant             `json:"participants" bson:"participants"`
	Answers            map[string]any            `json:"answers" bson:"answers"`
	ParticipantAnswers map[string]map[string]any `json:"participantAnswers" bson:"participantAnswers"`
	CurrentStep        int                       `json:"currentStep" bson:"currentStep"`
	CreatedAt          time.Time                 `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt" bson:"updatedAt"`
	SubmittedAt        *time.Time                `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

// AnswersFor returns the per-participant answer map for a participant ID,
// never nil
func (r *Registration) AnswersFor(participantID string) map[string]any {
	if r.ParticipantAnswers == nil {
		return map[string]any{}
	}
	if m, ok := r.ParticipantAnswers[participantID]; ok && m != nil {
		return m
	}
	return map[string]any{}
}

// VisibilityState is the engine output returned after every answer mutation:
// which steps are navigable, which fields each participant sees on the
// current step, and where the client should be standing.
type VisibilityState struct {
	VisibleSteps  []int               `json:"visibleSteps"`
	CurrentStep   int                 `json:"currentStep"`
	StepFields    []string            `json:"stepFields"`
	FieldsByIndex map[string][]string `json:"fieldsByIndex,omitempty"` // participant index -> visible field names
}
