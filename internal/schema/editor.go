package schema

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"formflow/internal/model"
)

// Authoring CRUD. These are the only code paths that mutate a FormSchema;
// fill-time code never touches one. Conditional rules referencing a removed
// field are deliberately left in place (they evaluate against an absent
// value and Validate warns about them), so removing a field never silently
// rewrites another field's logic.

// AddStep appends a new step and returns a pointer into the schema
func AddStep(s *model.FormSchema, title string) *model.FormStep {
	key := Slugify(title)
	if key == "" {
		key = "step"
	}
	key = uniqueStepKey(s, key)

	s.Steps = append(s.Steps, model.FormStep{
		Key:           key,
		Title:         title,
		Fields:        []model.FormField{},
		LayoutColumns: ClampColumnCount(s.LayoutColumns),
	})
	return &s.Steps[len(s.Steps)-1]
}

// StepUpdate carries the mutable step attributes; nil means leave unchanged
type StepUpdate struct {
	Title          *string
	Description    *string
	PerParticipant *bool
	LayoutColumns  *int
	Conditions     *model.ConditionGroup
	ClearLogic     bool
}

// UpdateStep applies an update to the step with the given key. Changing
// LayoutColumns cascades a re-clamp of every field's ColumnSpan in the step.
func UpdateStep(s *model.FormSchema, key string, upd StepUpdate) error {
	step := s.StepByKey(key)
	if step == nil {
		return fmt.Errorf("step %q not found", key)
	}

	if upd.Title != nil {
		step.Title = *upd.Title
	}
	if upd.Description != nil {
		step.Description = *upd.Description
	}
	if upd.PerParticipant != nil {
		step.PerParticipant = *upd.PerParticipant
	}
	if upd.ClearLogic {
		step.Conditions = nil
	} else if upd.Conditions != nil {
		step.Conditions = upd.Conditions.Clone()
	}
	if upd.LayoutColumns != nil {
		step.LayoutColumns = ClampColumnCount(*upd.LayoutColumns)
		for i := range step.Fields {
			step.Fields[i].ColumnSpan = ClampColumnSpan(step.Fields[i].ColumnSpan, step.LayoutColumns)
		}
	}
	return nil
}

// RemoveStep deletes the step with the given key and reports whether it
// existed. Rules elsewhere that referenced its fields become dangling.
func RemoveStep(s *model.FormSchema, key string) bool {
	for i := range s.Steps {
		if s.Steps[i].Key == key {
			s.Steps = append(s.Steps[:i], s.Steps[i+1:]...)
			return true
		}
	}
	return false
}

// AddField appends a field to a step. An empty Name is derived from the
// label via Slugify; either way the final name is made unique across the
// whole schema before insertion.
func AddField(s *model.FormSchema, stepKey string, field model.FormField) (*model.FormField, error) {
	step := s.StepByKey(stepKey)
	if step == nil {
		return nil, fmt.Errorf("step %q not found", stepKey)
	}
	if !field.Type.IsValid() {
		return nil, fmt.Errorf("unknown field type %q", field.Type)
	}

	if field.ID == "" {
		field.ID = uuid.New().String()
	}
	if field.Name == "" {
		field.Name = Slugify(field.Label)
	}
	field.Name = UniqueFieldName(s, field.Name, "")
	field.ColumnSpan = ClampColumnSpan(field.ColumnSpan, step.LayoutColumns)

	step.Fields = append(step.Fields, field)
	return &step.Fields[len(step.Fields)-1], nil
}

// FieldUpdate carries the mutable field attributes; nil means leave
// unchanged
type FieldUpdate struct {
	Label            *string
	Type             *model.FieldType
	Required         *bool
	HelpText         *string
	Options          []string
	MaxLength        *int
	MinValue         *float64
	MaxValue         *float64
	AllowedFileTypes []string
	MaxFileSize      *int64
	ColumnSpan       *int
	Conditions       *model.ConditionGroup
	ClearLogic       bool
}

// UpdateField applies an update to the field with the given name and
// returns the field's (possibly regenerated) name. The name is regenerated
// from a changed label only when the current name was itself auto-derived
// from the current label; a hand-picked name survives relabeling.
func UpdateField(s *model.FormSchema, name string, upd FieldUpdate) (string, error) {
	var step *model.FormStep
	var field *model.FormField
	for i := range s.Steps {
		for j := range s.Steps[i].Fields {
			if s.Steps[i].Fields[j].Name == name {
				step = &s.Steps[i]
				field = &s.Steps[i].Fields[j]
			}
		}
	}
	if field == nil {
		return "", fmt.Errorf("field %q not found", name)
	}

	if upd.Label != nil && *upd.Label != field.Label {
		autoDerived := field.Name == Slugify(field.Label) || field.Name == ""
		field.Label = *upd.Label
		if autoDerived {
			field.Name = UniqueFieldName(s, Slugify(field.Label), name)
		}
	}
	if upd.Type != nil {
		if !upd.Type.IsValid() {
			return "", fmt.Errorf("unknown field type %q", *upd.Type)
		}
		field.Type = *upd.Type
	}
	if upd.Required != nil {
		field.Required = *upd.Required
	}
	if upd.HelpText != nil {
		field.HelpText = *upd.HelpText
	}
	if upd.Options != nil {
		field.Options = append([]string(nil), upd.Options...)
	}
	if upd.MaxLength != nil {
		field.MaxLength = upd.MaxLength
	}
	if upd.MinValue != nil {
		field.MinValue = upd.MinValue
	}
	if upd.MaxValue != nil {
		field.MaxValue = upd.MaxValue
	}
	if upd.AllowedFileTypes != nil {
		field.AllowedFileTypes = append([]string(nil), upd.AllowedFileTypes...)
	}
	if upd.MaxFileSize != nil {
		field.MaxFileSize = upd.MaxFileSize
	}
	if upd.ColumnSpan != nil {
		field.ColumnSpan = ClampColumnSpan(*upd.ColumnSpan, step.LayoutColumns)
	}
	if upd.ClearLogic {
		field.Conditions = nil
	} else if upd.Conditions != nil {
		field.Conditions = upd.Conditions.Clone()
	}
	return field.Name, nil
}

// RemoveField deletes the field with the given name and reports whether it
// existed. Rules referencing it are left dangling by design.
func RemoveField(s *model.FormSchema, name string) bool {
	for i := range s.Steps {
		fields := s.Steps[i].Fields
		for j := range fields {
			if fields[j].Name == name {
				s.Steps[i].Fields = append(fields[:j], fields[j+1:]...)
				return true
			}
		}
	}
	return false
}

func uniqueStepKey(s *model.FormSchema, base string) string {
	taken := make(map[string]bool, len(s.Steps))
	for _, step := range s.Steps {
		taken[step.Key] = true
	}
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}
