package schema

import (
	"sort"

	"github.com/google/uuid"

	"formflow/internal/model"
)

// stepOrderStride buckets field order values by step: order = stepIndex*100
// + fieldIndex + 1. A consumer holding only the flat field list can regroup
// fields into steps by integer-dividing (order-1) by 100, which caps a step
// at 100 fields.
const stepOrderStride = 100

// The wire vocabulary renames two field types; everything else passes
// through unchanged in both directions.
var fieldTypeToWire = map[model.FieldType]string{
	model.FieldTypeSelect: "dropdown",
	model.FieldTypeTel:    "phone",
}

var wireToFieldType = map[string]model.FieldType{
	"dropdown": model.FieldTypeSelect,
	"phone":    model.FieldTypeTel,
}

// WireFieldType maps an authoring field type to its wire name
func WireFieldType(t model.FieldType) string {
	if w, ok := fieldTypeToWire[t]; ok {
		return w
	}
	return string(t)
}

// FieldTypeFromWire maps a wire type name back to the authoring type
func FieldTypeFromWire(w string) model.FieldType {
	if t, ok := wireToFieldType[w]; ok {
		return t
	}
	return model.FieldType(w)
}

// BuildPayload serializes a schema into the persisted wire shape. The caller
// is expected to Normalize first; BuildPayload itself does not clean.
func BuildPayload(s *model.FormSchema) *model.FormPayload {
	payload := &model.FormPayload{
		Program:      s.Program,
		Title:        s.Title,
		Description:  s.Description,
		LayoutConfig: model.LayoutConfig{Columns: s.LayoutColumns},
		Steps:        make([]model.StepPayload, 0, len(s.Steps)),
		Fields:       []model.FieldPayload{},
	}

	for si, step := range s.Steps {
		sp := model.StepPayload{
			Key:            step.Key,
			Title:          step.Title,
			Description:    step.Description,
			Order:          si + 1,
			PerParticipant: step.PerParticipant,
			Layout:         model.LayoutConfig{Columns: step.LayoutColumns},
			Conditions:     step.Conditions.Clone(),
			Fields:         make([]model.StepFieldRef, 0, len(step.Fields)),
		}

		for fi, field := range step.Fields {
			sp.Fields = append(sp.Fields, model.StepFieldRef{
				FieldName:  field.Name,
				ColumnSpan: field.ColumnSpan,
			})
			payload.Fields = append(payload.Fields, model.FieldPayload{
				FieldName:        field.Name,
				Label:            field.Label,
				FieldType:        WireFieldType(field.Type),
				IsRequired:       field.Required,
				HelpText:         field.HelpText,
				Order:            si*stepOrderStride + fi + 1,
				Options:          append([]string(nil), field.Options...),
				MaxLength:        field.MaxLength,
				MinValue:         field.MinValue,
				MaxValue:         field.MaxValue,
				AllowedFileTypes: append([]string(nil), field.AllowedFileTypes...),
				MaxFileSize:      field.MaxFileSize,
				Conditions:       field.Conditions.Clone(),
				ColumnSpan:       field.ColumnSpan,
				StepKey:          step.Key,
			})
		}
		payload.Steps = append(payload.Steps, sp)
	}
	return payload
}

// FromPayload rebuilds the authoring schema from the wire shape. When the
// payload carries step metadata, fields are grouped by step_key in step
// order; a payload holding only the flat field list is regrouped purely from
// the order bucketing. The result is normalized, so the round trip
// schema -> BuildPayload -> FromPayload reproduces the same field set, the
// same cleaned rules and the same column spans (ids are freshly minted).
func FromPayload(p *model.FormPayload) *model.FormSchema {
	s := &model.FormSchema{
		Program:       p.Program,
		Title:         p.Title,
		Description:   p.Description,
		LayoutColumns: p.LayoutConfig.Columns,
	}

	fields := append([]model.FieldPayload(nil), p.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })

	if len(p.Steps) > 0 {
		steps := append([]model.StepPayload(nil), p.Steps...)
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })

		byStep := make(map[string][]model.FieldPayload)
		for _, f := range fields {
			byStep[f.StepKey] = append(byStep[f.StepKey], f)
		}

		for _, sp := range steps {
			step := model.FormStep{
				Key:            sp.Key,
				Title:          sp.Title,
				Description:    sp.Description,
				PerParticipant: sp.PerParticipant,
				LayoutColumns:  sp.Layout.Columns,
				Conditions:     sp.Conditions.Clone(),
			}
			for _, fp := range byStep[sp.Key] {
				step.Fields = append(step.Fields, fieldFromPayload(fp))
			}
			s.Steps = append(s.Steps, step)
		}
	} else {
		// No step metadata: regroup by order bucket
		buckets := make(map[int][]model.FieldPayload)
		var order []int
		for _, f := range fields {
			b := (f.Order - 1) / stepOrderStride
			if _, ok := buckets[b]; !ok {
				order = append(order, b)
			}
			buckets[b] = append(buckets[b], f)
		}
		sort.Ints(order)

		for _, b := range order {
			step := model.FormStep{
				Key:           uuid.New().String(),
				Title:         "Step",
				LayoutColumns: p.LayoutConfig.Columns,
			}
			for _, fp := range buckets[b] {
				step.Fields = append(step.Fields, fieldFromPayload(fp))
			}
			s.Steps = append(s.Steps, step)
		}
	}

	normalized := Normalize(*s)
	return &normalized
}

func fieldFromPayload(fp model.FieldPayload) model.FormField {
	return model.FormField{
		ID:               uuid.New().String(),
		Name:             fp.FieldName,
		Label:            fp.Label,
		Type:             FieldTypeFromWire(fp.FieldType),
		Required:         fp.IsRequired,
		HelpText:         fp.HelpText,
		Options:          append([]string(nil), fp.Options...),
		MaxLength:        fp.MaxLength,
		MinValue:         fp.MinValue,
		MaxValue:         fp.MaxValue,
		AllowedFileTypes: append([]string(nil), fp.AllowedFileTypes...),
		MaxFileSize:      fp.MaxFileSize,
		ColumnSpan:       fp.ColumnSpan,
		Conditions:       fp.Conditions.Clone(),
	}
}
