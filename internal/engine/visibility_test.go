package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type VisibilitySuite struct {
	suite.Suite
	schema *model.FormSchema
}

// SetupTest builds a three-step camp form: guardian details, a
// per-participant camper step, and a per-participant teen waiver gated on
// the camper's age.
func (s *VisibilitySuite) SetupTest() {
	s.schema = &model.FormSchema{
		Program: "camp",
		Title:   "Camp Registration",
		Steps: []model.FormStep{
			{
				Key: "guardian",
				Fields: []model.FormField{
					{Name: "guardian-name", Type: model.FieldTypeText},
					{
						Name: "referral-details", Type: model.FieldTypeText,
						Conditions: &model.ConditionGroup{
							Mode: model.GroupModeAll,
							Rules: []model.ConditionRule{
								{Field: "referral", Op: model.OpEquals, Value: "other"},
							},
						},
					},
				},
			},
			{
				Key:            "camper",
				PerParticipant: true,
				Fields: []model.FormField{
					{Name: "camper-age", Type: model.FieldTypeNumber},
				},
			},
			{
				Key:            "teen-waiver",
				PerParticipant: true,
				Conditions: &model.ConditionGroup{
					Mode: model.GroupModeAll,
					Rules: []model.ConditionRule{
						{Field: "participant.age", Op: model.OpGreaterOrEq, Value: "13"},
					},
				},
				Fields: []model.FormField{
					{Name: "waiver-signed", Type: model.FieldTypeCheckbox},
				},
			},
		},
	}
}

func TestVisibilitySuite(t *testing.T) {
	suite.Run(t, new(VisibilitySuite))
}

func (s *VisibilitySuite) fillWithAges(ages ...float64) FillContext {
	fill := FillContext{Answers: map[string]any{}}
	for _, age := range ages {
		fill.Participants = append(fill.Participants, map[string]any{"age": age})
		fill.ParticipantAnswers = append(fill.ParticipantAnswers, map[string]any{})
	}
	return fill
}

func (s *VisibilitySuite) TestFieldVisibility() {
	step := s.schema.Steps[0]

	s.Run("unconditioned field is always visible", func() {
		names := VisibleFieldNames(step, model.EvalContext{Answers: map[string]any{}})
		s.Equal([]string{"guardian-name"}, names)
	})

	s.Run("conditioned field appears when its rule passes", func() {
		ctx := model.EvalContext{Answers: map[string]any{"referral": "other"}}
		names := VisibleFieldNames(step, ctx)
		s.Equal([]string{"guardian-name", "referral-details"}, names)
	})
}

func (s *VisibilitySuite) TestStepVisibility() {
	s.Run("step with all fields hidden is itself hidden", func() {
		step := model.FormStep{
			Key: "extras",
			Fields: []model.FormField{
				{
					Name: "only-field",
					Conditions: &model.ConditionGroup{Rules: []model.ConditionRule{
						{Field: "flag", Op: model.OpEquals, Value: "on"},
					}},
				},
			},
		}
		fill := FillContext{Answers: map[string]any{}}
		s.False(StepVisible(step, fill))

		fill.Answers["flag"] = "on"
		s.True(StepVisible(step, fill))
	})

	s.Run("step with zero fields stays visible", func() {
		step := model.FormStep{Key: "notice"}
		s.True(StepVisible(step, FillContext{}))
	})

	s.Run("per-participant step needs participants", func() {
		s.False(StepVisible(s.schema.Steps[1], FillContext{}))
		s.True(StepVisible(s.schema.Steps[1], s.fillWithAges(10)))
	})

	s.Run("per-participant step is visible when any participant qualifies", func() {
		waiver := s.schema.Steps[2]
		s.False(StepVisible(waiver, s.fillWithAges(10, 12)))
		s.True(StepVisible(waiver, s.fillWithAges(10, 14)))
	})
}

func (s *VisibilitySuite) TestVisibleStepIndexes() {
	s.Run("young campers skip the waiver", func() {
		s.Equal([]int{0, 1}, VisibleStepIndexes(s.schema, s.fillWithAges(10)))
	})

	s.Run("a teen unlocks the waiver", func() {
		s.Equal([]int{0, 1, 2}, VisibleStepIndexes(s.schema, s.fillWithAges(10, 14)))
	})
}

func (s *VisibilitySuite) TestNavigation() {
	fill := s.fillWithAges(14)

	s.Run("next advances to the following visible step", func() {
		s.Equal(1, NextVisibleStep(s.schema, fill, 0))
		s.Equal(2, NextVisibleStep(s.schema, fill, 1))
	})

	s.Run("next at the last step is a no-op", func() {
		s.Equal(2, NextVisibleStep(s.schema, fill, 2))
	})

	s.Run("prev at the first step is a no-op", func() {
		s.Equal(0, PrevVisibleStep(s.schema, fill, 0))
	})

	s.Run("next stays put when only hidden steps remain", func() {
		young := s.fillWithAges(10)
		s.Equal(1, NextVisibleStep(s.schema, young, 1))
	})
}

func (s *VisibilitySuite) TestEnsureVisibleStep() {
	s.Run("visible current step is kept", func() {
		s.Equal(1, EnsureVisibleStep(s.schema, s.fillWithAges(14), 1))
	})

	s.Run("stranded on a hidden step moves forward first", func() {
		// Standing on the camper step with the roster emptied: both
		// per-participant steps vanish, so we land back on guardian.
		s.Equal(0, EnsureVisibleStep(s.schema, FillContext{}, 1))
	})

	s.Run("stranded past the last visible step moves backward", func() {
		s.Equal(1, EnsureVisibleStep(s.schema, s.fillWithAges(10), 2))
	})

	s.Run("out of range indices are clamped", func() {
		fill := s.fillWithAges(14)
		s.Equal(0, EnsureVisibleStep(s.schema, fill, -3))
		s.Equal(2, EnsureVisibleStep(s.schema, fill, 99))
	})
}
