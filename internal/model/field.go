package model

// FieldType is the closed set of input widgets a form field can render as.
// These are the authoring-side names; the wire format renames select→dropdown
// and tel→phone (see internal/schema payload mapping).
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeURL      FieldType = "url"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
)

// fieldCaps describes which constraint knobs apply to a field type.
// Adding a type is one table row, not scattered string comparisons.
type fieldCaps struct {
	HasOptions     bool
	HasMinMax      bool
	HasMaxLength   bool
	HasFileOptions bool
}

var fieldTypeCaps = map[FieldType]fieldCaps{
	FieldTypeText:     {HasMaxLength: true},
	FieldTypeEmail:    {HasMaxLength: true},
	FieldTypeTel:      {HasMaxLength: true},
	FieldTypeNumber:   {HasMinMax: true},
	FieldTypeDate:     {},
	FieldTypeURL:      {HasMaxLength: true},
	FieldTypeTextarea: {HasMaxLength: true},
	FieldTypeSelect:   {HasOptions: true},
	FieldTypeRadio:    {HasOptions: true},
	FieldTypeCheckbox: {HasOptions: true},
	FieldTypeFile:     {HasFileOptions: true},
}

// IsValid reports whether t is a known field type
func (t FieldType) IsValid() bool {
	_, ok := fieldTypeCaps[t]
	return ok
}

// HasOptions reports whether the type carries a choice list
func (t FieldType) HasOptions() bool { return fieldTypeCaps[t].HasOptions }

// HasMinMax reports whether the type carries numeric bounds
func (t FieldType) HasMinMax() bool { return fieldTypeCaps[t].HasMinMax }

// HasMaxLength reports whether the type carries a length limit
func (t FieldType) HasMaxLength() bool { return fieldTypeCaps[t].HasMaxLength }

// HasFileOptions reports whether the type carries upload constraints
func (t FieldType) HasFileOptions() bool { return fieldTypeCaps[t].HasFileOptions }

// FormField is one authored input on a step. Name is a slug unique across
// the whole schema and is the key answers are stored under.
type FormField struct {
	ID               string          `json:"id" bson:"id"`
	Name             string          `json:"name" bson:"name"`
	Label            string          `json:"label" bson:"label"`
	Type             FieldType       `json:"type" bson:"type"`
	Required         bool            `json:"required" bson:"required"`
	HelpText         string          `json:"helpText,omitempty" bson:"helpText,omitempty"`
	Options          []string        `json:"options,omitempty" bson:"options,omitempty"`
	MaxLength        *int            `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	MinValue         *float64        `json:"minValue,omitempty" bson:"minValue,omitempty"`
	MaxValue         *float64        `json:"maxValue,omitempty" bson:"maxValue,omitempty"`
	AllowedFileTypes []string        `json:"allowedFileTypes,omitempty" bson:"allowedFileTypes,omitempty"`
	MaxFileSize      *int64          `json:"maxFileSize,omitempty" bson:"maxFileSize,omitempty"`
	ColumnSpan       int             `json:"columnSpan" bson:"columnSpan"`
	Conditions       *ConditionGroup `json:"conditionalLogic,omitempty" bson:"conditionalLogic,omitempty"`
}

// Clone returns a deep copy of the field
func (f FormField) Clone() FormField {
	out := f
	out.Options = append([]string(nil), f.Options...)
	out.AllowedFileTypes = append([]string(nil), f.AllowedFileTypes...)
	out.MaxLength = cloneIntPtr(f.MaxLength)
	out.MinValue = cloneFloatPtr(f.MinValue)
	out.MaxValue = cloneFloatPtr(f.MaxValue)
	out.MaxFileSize = cloneInt64Ptr(f.MaxFileSize)
	out.Conditions = f.Conditions.Clone()
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
