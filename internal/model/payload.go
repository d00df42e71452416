package model

// Wire format for persisted/fetched form schemas. Fields are flattened into
// one ordered list; order encodes the owning step as stepIndex*100 +
// fieldIndexWithinStep + 1, so a consumer without step metadata can regroup
// fields into steps by integer-dividing order by 100.

// LayoutConfig carries the column count for a form or step
type LayoutConfig struct {
	Columns int `json:"columns" bson:"columns"`
}

// StepFieldRef links a step to one of its fields in the wire format
type StepFieldRef struct {
	FieldName  string `json:"field_name" bson:"field_name"`
	ColumnSpan int    `json:"column_span" bson:"column_span"`
}

// StepPayload is the wire shape of one form step
type StepPayload struct {
	Key            string          `json:"key" bson:"key"`
	Title          string          `json:"title" bson:"title"`
	Description    string          `json:"description,omitempty" bson:"description,omitempty"`
	Order          int             `json:"order" bson:"order"`
	PerParticipant bool            `json:"per_participant" bson:"per_participant"`
	Layout         LayoutConfig    `json:"layout" bson:"layout"`
	Conditions     *ConditionGroup `json:"conditional_logic" bson:"conditional_logic,omitempty"`
	Fields         []StepFieldRef  `json:"fields" bson:"fields"`
}

// FieldPayload is the wire shape of one form field
type FieldPayload struct {
	FieldName        string          `json:"field_name" bson:"field_name"`
	Label            string          `json:"label" bson:"label"`
	FieldType        string          `json:"field_type" bson:"field_type"`
	IsRequired       bool            `json:"is_required" bson:"is_required"`
	HelpText         string          `json:"help_text,omitempty" bson:"help_text,omitempty"`
	Order            int             `json:"order" bson:"order"`
	Options          []string        `json:"options,omitempty" bson:"options,omitempty"`
	MaxLength        *int            `json:"max_length,omitempty" bson:"max_length,omitempty"`
	MinValue         *float64        `json:"min_value,omitempty" bson:"min_value,omitempty"`
	MaxValue         *float64        `json:"max_value,omitempty" bson:"max_value,omitempty"`
	AllowedFileTypes []string        `json:"allowed_file_types,omitempty" bson:"allowed_file_types,omitempty"`
	MaxFileSize      *int64          `json:"max_file_size,omitempty" bson:"max_file_size,omitempty"`
	Conditions       *ConditionGroup `json:"conditional_logic" bson:"conditional_logic,omitempty"`
	ColumnSpan       int             `json:"column_span" bson:"column_span"`
	StepKey          string          `json:"step_key" bson:"step_key"`
}

// FormPayload is the full persisted wire shape of a form schema
type FormPayload struct {
	Program      string         `json:"program" bson:"program"`
	Title        string         `json:"title" bson:"title"`
	Description  string         `json:"description,omitempty" bson:"description,omitempty"`
	LayoutConfig LayoutConfig   `json:"layout_config" bson:"layout_config"`
	Steps        []StepPayload  `json:"steps" bson:"steps"`
	Fields       []FieldPayload `json:"fields" bson:"fields"`
}
