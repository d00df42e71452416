package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/cache"
	"formflow/internal/model"
	"formflow/internal/repository"
	"formflow/internal/schema"
)

type FormServiceSuite struct {
	suite.Suite
	ctx     context.Context
	formSvc *FormService
}

func TestFormServiceSuite(t *testing.T) {
	suite.Run(t, new(FormServiceSuite))
}

func (s *FormServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.formSvc = NewFormService(repository.NewMemoryFormRepo(), cache.NewMemorySchemaCache())
}

func (s *FormServiceSuite) validSchema() model.FormSchema {
	return model.FormSchema{
		Program: "camp",
		Title:   "Camp Registration",
		Steps: []model.FormStep{{
			Key:   "details",
			Title: "Details",
			Fields: []model.FormField{
				{Name: "guardian-name", Label: "Name", Type: model.FieldTypeText, Required: true},
			},
		}},
	}
}

func (s *FormServiceSuite) TestCreate() {
	s.Run("valid schema is stored normalized", func() {
		id, result, err := s.formSvc.Create(s.ctx, "org_1", s.validSchema())
		s.Require().NoError(err)
		s.True(result.OK())
		s.NotEmpty(id)

		form, err := s.formSvc.GetByID(s.ctx, id)
		s.Require().NoError(err)
		s.Require().NotNil(form)
		s.Equal("org_1", form.OrganizerID)
		s.Len(form.Payload.Fields, 1)
	})

	s.Run("validation errors come back without persisting", func() {
		sch := s.validSchema()
		sch.Title = ""
		id, result, err := s.formSvc.Create(s.ctx, "org_1", sch)
		s.Require().NoError(err)
		s.False(result.OK())
		s.Empty(id)
	})
}

func (s *FormServiceSuite) TestLoadSchema() {
	id, _, err := s.formSvc.Create(s.ctx, "org_1", s.validSchema())
	s.Require().NoError(err)

	s.Run("returns the authoring representation", func() {
		sch, err := s.formSvc.LoadSchema(s.ctx, id)
		s.Require().NoError(err)
		s.Require().NotNil(sch)
		s.Equal([]string{"guardian-name"}, sch.FieldNames())
	})

	s.Run("missing form returns nil, nil", func() {
		sch, err := s.formSvc.LoadSchema(s.ctx, "missing")
		s.NoError(err)
		s.Nil(sch)
	})
}

func (s *FormServiceSuite) TestUpdateSchema() {
	id, _, err := s.formSvc.Create(s.ctx, "org_1", s.validSchema())
	s.Require().NoError(err)

	updated := s.validSchema()
	updated.Steps[0].Fields = append(updated.Steps[0].Fields, model.FormField{
		Name: "guardian-email", Label: "Email", Type: model.FieldTypeEmail,
	})

	result, err := s.formSvc.UpdateSchema(s.ctx, id, updated)
	s.Require().NoError(err)
	s.True(result.OK())

	sch, err := s.formSvc.LoadSchema(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]string{"guardian-name", "guardian-email"}, sch.FieldNames())
}

func (s *FormServiceSuite) TestApplyEdit() {
	id, _, err := s.formSvc.Create(s.ctx, "org_1", s.validSchema())
	s.Require().NoError(err)

	s.Run("edits persist and reload", func() {
		_, err := s.formSvc.ApplyEdit(s.ctx, id, func(sch *model.FormSchema) error {
			_, err := schema.AddField(sch, "details", model.FormField{Label: "Phone", Type: model.FieldTypeTel})
			return err
		})
		s.Require().NoError(err)

		sch, err := s.formSvc.LoadSchema(s.ctx, id)
		s.Require().NoError(err)
		s.Equal([]string{"guardian-name", "phone"}, sch.FieldNames())
	})

	s.Run("a failing edit leaves the form untouched", func() {
		_, err := s.formSvc.ApplyEdit(s.ctx, id, func(sch *model.FormSchema) error {
			_, err := schema.AddField(sch, "missing-step", model.FormField{Label: "X", Type: model.FieldTypeText})
			return err
		})
		s.Require().Error(err)

		sch, err := s.formSvc.LoadSchema(s.ctx, id)
		s.Require().NoError(err)
		s.Len(sch.FieldNames(), 2)
	})
}

func (s *FormServiceSuite) TestDelete() {
	id, _, err := s.formSvc.Create(s.ctx, "org_1", s.validSchema())
	s.Require().NoError(err)

	s.Require().NoError(s.formSvc.Delete(s.ctx, id))

	form, err := s.formSvc.GetByID(s.ctx, id)
	s.NoError(err)
	s.Nil(form)
}
