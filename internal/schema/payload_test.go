package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type PayloadSuite struct {
	suite.Suite
	schema model.FormSchema
}

func (s *PayloadSuite) SetupTest() {
	s.schema = model.FormSchema{
		Program:       "camp",
		Title:         "Camp Registration",
		LayoutColumns: 2,
		Steps: []model.FormStep{
			{
				Key:           "guardian",
				Title:         "Guardian",
				LayoutColumns: 2,
				Fields: []model.FormField{
					{ID: "f1", Name: "guardian-name", Label: "Name", Type: model.FieldTypeText, Required: true, ColumnSpan: 2},
					{ID: "f2", Name: "guardian-phone", Label: "Phone", Type: model.FieldTypeTel, ColumnSpan: 1},
				},
			},
			{
				Key:            "camper",
				Title:          "Camper",
				PerParticipant: true,
				LayoutColumns:  1,
				Fields: []model.FormField{
					{
						ID: "f3", Name: "shirt-size", Label: "Shirt Size", Type: model.FieldTypeSelect,
						Options: []string{"S", "M", "L"}, ColumnSpan: 1,
						Conditions: &model.ConditionGroup{
							Mode: model.GroupModeAll,
							Rules: []model.ConditionRule{
								{Field: "participant.age", Op: model.OpGreaterOrEq, Value: "5"},
							},
						},
					},
				},
			},
		},
	}
}

func TestPayloadSuite(t *testing.T) {
	suite.Run(t, new(PayloadSuite))
}

func (s *PayloadSuite) TestFieldTypeWireNames() {
	s.Run("renamed types", func() {
		s.Equal("dropdown", WireFieldType(model.FieldTypeSelect))
		s.Equal("phone", WireFieldType(model.FieldTypeTel))
		s.Equal(model.FieldTypeSelect, FieldTypeFromWire("dropdown"))
		s.Equal(model.FieldTypeTel, FieldTypeFromWire("phone"))
	})

	s.Run("everything else passes through", func() {
		s.Equal("textarea", WireFieldType(model.FieldTypeTextarea))
		s.Equal(model.FieldTypeNumber, FieldTypeFromWire("number"))
	})
}

func (s *PayloadSuite) TestBuildPayload() {
	p := BuildPayload(&s.schema)

	s.Run("field order encodes step and position", func() {
		s.Require().Len(p.Fields, 3)
		s.Equal(1, p.Fields[0].Order)
		s.Equal(2, p.Fields[1].Order)
		s.Equal(101, p.Fields[2].Order)
	})

	s.Run("steps carry ordered refs", func() {
		s.Require().Len(p.Steps, 2)
		s.Equal(1, p.Steps[0].Order)
		s.Equal(2, p.Steps[1].Order)
		s.Equal("guardian-name", p.Steps[0].Fields[0].FieldName)
		s.True(p.Steps[1].PerParticipant)
	})

	s.Run("wire type names are applied", func() {
		s.Equal("phone", p.Fields[1].FieldType)
		s.Equal("dropdown", p.Fields[2].FieldType)
	})

	s.Run("condition groups are copied, not shared", func() {
		s.Require().NotNil(p.Fields[2].Conditions)
		p.Fields[2].Conditions.Rules[0].Value = "99"
		s.Equal("5", s.schema.Steps[1].Fields[0].Conditions.Rules[0].Value)
	})
}

func (s *PayloadSuite) TestRoundTrip() {
	p := BuildPayload(&s.schema)
	back := FromPayload(p)

	s.Run("structure survives", func() {
		s.Equal(s.schema.Program, back.Program)
		s.Require().Len(back.Steps, 2)
		s.Equal("guardian", back.Steps[0].Key)
		s.Equal("camper", back.Steps[1].Key)
		s.True(back.Steps[1].PerParticipant)
		s.Equal(s.schema.FieldNames(), back.FieldNames())
	})

	s.Run("types return to their authoring names", func() {
		s.Equal(model.FieldTypeTel, back.Steps[0].Fields[1].Type)
		s.Equal(model.FieldTypeSelect, back.Steps[1].Fields[0].Type)
	})

	s.Run("conditions and options survive", func() {
		field := back.Steps[1].Fields[0]
		s.Equal([]string{"S", "M", "L"}, field.Options)
		s.Require().NotNil(field.Conditions)
		s.Equal(model.OpGreaterOrEq, field.Conditions.Rules[0].Op)
	})
}

func (s *PayloadSuite) TestFromPayloadWithoutStepMetadata() {
	p := BuildPayload(&s.schema)
	p.Steps = nil

	back := FromPayload(p)

	s.Run("order buckets regroup the flat list", func() {
		s.Require().Len(back.Steps, 2)
		s.Len(back.Steps[0].Fields, 2)
		s.Len(back.Steps[1].Fields, 1)
		s.Equal("shirt-size", back.Steps[1].Fields[0].Name)
	})

	s.Run("synthesized steps get placeholder metadata", func() {
		s.NotEmpty(back.Steps[0].Key)
		s.NotEqual(back.Steps[0].Key, back.Steps[1].Key)
	})
}
