package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type NormalizeSuite struct {
	suite.Suite
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeSuite))
}

func (s *NormalizeSuite) TestCleanConditionalLogic() {
	s.Run("nil group stays nil", func() {
		s.Nil(CleanConditionalLogic(nil, model.FieldLevel))
	})

	s.Run("blank field paths are dropped", func() {
		g := &model.ConditionGroup{Rules: []model.ConditionRule{
			{Field: "  ", Op: model.OpEquals, Value: "x"},
			{Field: "kept", Op: model.OpEquals, Value: "x"},
		}}
		cleaned := CleanConditionalLogic(g, model.FieldLevel)
		s.Require().NotNil(cleaned)
		s.Len(cleaned.Rules, 1)
		s.Equal("kept", cleaned.Rules[0].Field)
	})

	s.Run("value-requiring operators need a value", func() {
		g := &model.ConditionGroup{Rules: []model.ConditionRule{
			{Field: "a", Op: model.OpEquals, Value: ""},
			{Field: "b", Op: model.OpIsEmpty, Value: ""},
		}}
		cleaned := CleanConditionalLogic(g, model.FieldLevel)
		s.Require().NotNil(cleaned)
		s.Len(cleaned.Rules, 1)
		s.Equal(model.OpIsEmpty, cleaned.Rules[0].Op)
	})

	s.Run("numeric operators are rejected at step level", func() {
		g := &model.ConditionGroup{Rules: []model.ConditionRule{
			{Field: "age", Op: model.OpGreaterOrEq, Value: "13"},
		}}
		s.Nil(CleanConditionalLogic(g, model.StepLevel))
		s.NotNil(CleanConditionalLogic(g, model.FieldLevel))
	})

	s.Run("empty survivors collapse to absent", func() {
		g := &model.ConditionGroup{Mode: model.GroupModeAny, Rules: []model.ConditionRule{
			{Field: "", Op: model.OpEquals, Value: "x"},
		}}
		s.Nil(CleanConditionalLogic(g, model.FieldLevel))
	})

	s.Run("mode normalizes to all unless explicitly any", func() {
		rules := []model.ConditionRule{{Field: "a", Op: model.OpEquals, Value: "x"}}
		got := CleanConditionalLogic(&model.ConditionGroup{Mode: "weird", Rules: rules}, model.FieldLevel)
		s.Equal(model.GroupModeAll, got.Mode)
		got = CleanConditionalLogic(&model.ConditionGroup{Mode: model.GroupModeAny, Rules: rules}, model.FieldLevel)
		s.Equal(model.GroupModeAny, got.Mode)
	})
}

func (s *NormalizeSuite) TestNormalize() {
	maxLen := 80
	sch := model.FormSchema{
		Program:       "camp",
		Title:         "Camp",
		LayoutColumns: 9,
		Steps: []model.FormStep{{
			Key:           "main",
			LayoutColumns: 0,
			Fields: []model.FormField{
				{
					Name: "age", Type: model.FieldTypeNumber, ColumnSpan: 7,
					MaxLength: &maxLen, Options: []string{"stray"},
				},
			},
		}},
	}

	out := Normalize(sch)

	s.Run("layout counts are clamped", func() {
		s.Equal(MaxLayoutColumns, out.LayoutColumns)
		s.Equal(1, out.Steps[0].LayoutColumns)
	})

	s.Run("spans are clamped against the step", func() {
		s.Equal(1, out.Steps[0].Fields[0].ColumnSpan)
	})

	s.Run("inapplicable constraints are stripped", func() {
		field := out.Steps[0].Fields[0]
		s.Nil(field.MaxLength)
		s.Nil(field.Options)
	})

	s.Run("input is not mutated", func() {
		s.Equal(9, sch.LayoutColumns)
		s.Equal(7, sch.Steps[0].Fields[0].ColumnSpan)
	})
}

func (s *NormalizeSuite) TestValidate() {
	base := func() model.FormSchema {
		return model.FormSchema{
			Program: "camp",
			Title:   "Camp",
			Steps: []model.FormStep{{
				Key: "main",
				Fields: []model.FormField{
					{Name: "age", Type: model.FieldTypeNumber},
				},
			}},
		}
	}

	s.Run("valid schema is OK", func() {
		sch := base()
		res := Validate(&sch)
		s.True(res.OK())
		s.Empty(res.Warnings)
	})

	s.Run("missing program and title block", func() {
		sch := base()
		sch.Program = ""
		sch.Title = " "
		res := Validate(&sch)
		s.False(res.OK())
		s.Len(res.Errors, 2)
	})

	s.Run("duplicate field names block", func() {
		sch := base()
		sch.Steps[0].Fields = append(sch.Steps[0].Fields, model.FormField{Name: "age", Type: model.FieldTypeText})
		res := Validate(&sch)
		s.False(res.OK())
		s.Equal("duplicate_field_name", res.Errors[0].Code)
	})

	s.Run("unknown field type blocks", func() {
		sch := base()
		sch.Steps[0].Fields[0].Type = "slider"
		res := Validate(&sch)
		s.False(res.OK())
		s.Equal("unknown_field_type", res.Errors[0].Code)
	})

	s.Run("a form with no fields blocks", func() {
		sch := model.FormSchema{Program: "camp", Title: "Camp"}
		res := Validate(&sch)
		s.False(res.OK())
		s.Equal("no_fields", res.Errors[0].Code)
	})

	s.Run("dangling rule references only warn", func() {
		sch := base()
		sch.Steps[0].Fields[0].Conditions = &model.ConditionGroup{Rules: []model.ConditionRule{
			{Field: "removed-field", Op: model.OpEquals, Value: "x"},
		}}
		res := Validate(&sch)
		s.True(res.OK())
		s.Require().Len(res.Warnings, 1)
		s.Equal("dangling_rule_reference", res.Warnings[0].Code)
	})
}

func (s *NormalizeSuite) TestDanglingRuleRefs() {
	sch := model.FormSchema{
		Program: "camp",
		Title:   "Camp",
		Steps: []model.FormStep{{
			Key: "main",
			Conditions: &model.ConditionGroup{Rules: []model.ConditionRule{
				{Field: "guardian.age", Op: model.OpEquals, Value: "1"},
				{Field: "participant.age", Op: model.OpEquals, Value: "1"},
				{Field: "answers.ghost", Op: model.OpEquals, Value: "1"},
			}},
			Fields: []model.FormField{
				{Name: "present", Type: model.FieldTypeText},
				{
					Name: "gated", Type: model.FieldTypeText,
					Conditions: &model.ConditionGroup{Rules: []model.ConditionRule{
						{Field: "present", Op: model.OpNotEmpty},
						{Field: "ghost", Op: model.OpEquals, Value: "1"},
					}},
				},
			},
		}},
	}

	refs := DanglingRuleRefs(&sch)

	s.Run("guardian and participant paths are not checked", func() {
		s.NotContains(refs, "guardian.age")
		s.NotContains(refs, "participant.age")
	})

	s.Run("unknown answer keys are reported once per path", func() {
		s.Contains(refs, "answers.ghost")
		s.Contains(refs, "ghost")
		s.NotContains(refs, "present")
	})
}
