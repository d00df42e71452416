package engine

import "formflow/internal/model"

// FillContext is a snapshot of everything entered so far: the guardian
// record, the participant roster, globally entered answers and each
// participant's own answers (aligned by index with Participants). The
// engine never mutates it; callers replace it wholesale on every edit.
type FillContext struct {
	Guardian           map[string]any
	Participants       []map[string]any
	Answers            map[string]any
	ParticipantAnswers []map[string]any
}

// Global returns the evaluation context for non-repeating steps
func (f FillContext) Global() model.EvalContext {
	return model.EvalContext{
		Guardian: f.Guardian,
		Answers:  f.Answers,
	}
}

// ForParticipant returns the evaluation context for one participant index:
// that participant's profile, plus global answers overlaid with their own.
func (f FillContext) ForParticipant(i int) model.EvalContext {
	ctx := model.EvalContext{Guardian: f.Guardian}
	if i >= 0 && i < len(f.Participants) {
		ctx.Participant = f.Participants[i]
	}
	var own map[string]any
	if i >= 0 && i < len(f.ParticipantAnswers) {
		own = f.ParticipantAnswers[i]
	}
	ctx.Answers = model.MergeAnswers(f.Answers, own)
	return ctx
}

// FieldVisible evaluates a field's own condition group under the given
// context
func FieldVisible(field model.FormField, ctx model.EvalContext) bool {
	return EvaluateGroup(field.Conditions, ctx)
}

// VisibleFieldNames returns the names of the step's fields whose conditions
// pass under the given context, in authored order.
func VisibleFieldNames(step model.FormStep, ctx model.EvalContext) []string {
	var names []string
	for _, f := range step.Fields {
		if FieldVisible(f, ctx) {
			names = append(names, f.Name)
		}
	}
	return names
}

// stepVisibleIn checks one step against one context: the step's own
// conditions must pass, and unless the step has no fields at all, at least
// one field must be individually visible. A step whose every field is hidden
// is itself hidden so the form never renders an empty page.
func stepVisibleIn(step model.FormStep, ctx model.EvalContext) bool {
	if !EvaluateGroup(step.Conditions, ctx) {
		return false
	}
	if len(step.Fields) == 0 {
		return true
	}
	for _, f := range step.Fields {
		if FieldVisible(f, ctx) {
			return true
		}
	}
	return false
}

// StepVisible decides whether a step appears in the flow. A per-participant
// step is visible when any participant index satisfies it; with no
// participants registered there is nobody to repeat it for, so it is hidden.
func StepVisible(step model.FormStep, fill FillContext) bool {
	if !step.PerParticipant {
		return stepVisibleIn(step, fill.Global())
	}
	for i := range fill.Participants {
		if stepVisibleIn(step, fill.ForParticipant(i)) {
			return true
		}
	}
	return false
}

// VisibleStepIndexes returns the ordered indices of every currently
// navigable step
func VisibleStepIndexes(schema *model.FormSchema, fill FillContext) []int {
	var visible []int
	for i, step := range schema.Steps {
		if StepVisible(step, fill) {
			visible = append(visible, i)
		}
	}
	return visible
}

// NextVisibleStep scans forward from current for the first visible step.
// If none exists it returns current unchanged, never an out-of-range index.
func NextVisibleStep(schema *model.FormSchema, fill FillContext, current int) int {
	for i := current + 1; i < len(schema.Steps); i++ {
		if StepVisible(schema.Steps[i], fill) {
			return i
		}
	}
	return current
}

// PrevVisibleStep scans backward from current for the first visible step.
// If none exists it returns current unchanged.
func PrevVisibleStep(schema *model.FormSchema, fill FillContext, current int) int {
	for i := current - 1; i >= 0; i-- {
		if StepVisible(schema.Steps[i], fill) {
			return i
		}
	}
	return current
}

// EnsureVisibleStep re-validates the displayed step after an answer
// mutation. If the current step went invisible it moves forward first, then
// backward, so the user is never stranded on a hidden page.
func EnsureVisibleStep(schema *model.FormSchema, fill FillContext, current int) int {
	if current < 0 {
		current = 0
	}
	if current >= len(schema.Steps) {
		current = len(schema.Steps) - 1
	}
	if current < 0 {
		return 0
	}
	if StepVisible(schema.Steps[current], fill) {
		return current
	}
	if next := NextVisibleStep(schema, fill, current); next != current {
		return next
	}
	return PrevVisibleStep(schema, fill, current)
}
