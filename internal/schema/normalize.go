package schema

import (
	"fmt"
	"strings"

	"formflow/internal/model"
)

// CleanConditionalLogic strips rules that cannot evaluate to anything
// meaningful: blank field paths, operators outside the allowed set for the
// level, and value-requiring operators with an empty value. When nothing
// survives it returns nil, so "no restriction" and "all rules stripped" are
// the same absent group and both default to visible. Mode normalizes to
// "all" unless it was explicitly "any".
func CleanConditionalLogic(group *model.ConditionGroup, level model.RuleLevel) *model.ConditionGroup {
	if group == nil {
		return nil
	}

	var rules []model.ConditionRule
	for _, rule := range group.Rules {
		if strings.TrimSpace(rule.Field) == "" {
			continue
		}
		if !rule.Op.AllowedAt(level) {
			continue
		}
		if rule.Op.RequiresValue() && rule.Value == "" {
			continue
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil
	}

	mode := model.GroupModeAll
	if group.Mode == model.GroupModeAny {
		mode = model.GroupModeAny
	}
	return &model.ConditionGroup{Mode: mode, Rules: rules}
}

// Normalize returns a cleaned deep copy of the schema ready for
// serialization: layout counts clamped, every field span re-clamped against
// its step, condition groups cleaned per level, and constraint knobs that do
// not apply to a field's type dropped. The input is never mutated.
func Normalize(s model.FormSchema) model.FormSchema {
	out := s.Clone()
	out.LayoutColumns = ClampColumnCount(out.LayoutColumns)

	for i := range out.Steps {
		step := &out.Steps[i]
		step.LayoutColumns = ClampColumnCount(step.LayoutColumns)
		step.Conditions = CleanConditionalLogic(step.Conditions, model.StepLevel)

		for j := range step.Fields {
			field := &step.Fields[j]
			field.ColumnSpan = ClampColumnSpan(field.ColumnSpan, step.LayoutColumns)
			field.Conditions = CleanConditionalLogic(field.Conditions, model.FieldLevel)

			if !field.Type.HasOptions() {
				field.Options = nil
			}
			if !field.Type.HasMinMax() {
				field.MinValue = nil
				field.MaxValue = nil
			}
			if !field.Type.HasMaxLength() {
				field.MaxLength = nil
			}
			if !field.Type.HasFileOptions() {
				field.AllowedFileTypes = nil
				field.MaxFileSize = nil
			}
		}
	}
	return out
}

// Issue is one validation finding. Blocking issues stop a save; warnings are
// surfaced to the author but do not.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult groups save-time findings
type ValidationResult struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// OK reports whether the schema may be persisted
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs save-time structural checks. Engine-level breakage (bad
// rules, bad spans) is repaired silently by Normalize; only problems the
// author has to resolve come back as blocking errors.
func Validate(s *model.FormSchema) ValidationResult {
	var res ValidationResult

	if strings.TrimSpace(s.Program) == "" {
		res.Errors = append(res.Errors, Issue{Code: "missing_program", Message: "form must reference a program"})
	}
	if strings.TrimSpace(s.Title) == "" {
		res.Errors = append(res.Errors, Issue{Code: "missing_title", Message: "form must have a title"})
	}

	fieldCount := 0
	seen := make(map[string]bool)
	for _, step := range s.Steps {
		for _, field := range step.Fields {
			fieldCount++
			if seen[field.Name] {
				res.Errors = append(res.Errors, Issue{
					Code:    "duplicate_field_name",
					Message: fmt.Sprintf("field name %q is used more than once", field.Name),
				})
			}
			seen[field.Name] = true
			if !field.Type.IsValid() {
				res.Errors = append(res.Errors, Issue{
					Code:    "unknown_field_type",
					Message: fmt.Sprintf("field %q has unknown type %q", field.Name, field.Type),
				})
			}
		}
	}
	if fieldCount == 0 {
		res.Errors = append(res.Errors, Issue{Code: "no_fields", Message: "form must contain at least one field"})
	}

	for _, ref := range DanglingRuleRefs(s) {
		res.Warnings = append(res.Warnings, Issue{
			Code:    "dangling_rule_reference",
			Message: fmt.Sprintf("a condition references %q, which is not a field; the rule will always resolve to empty", ref),
		})
	}
	return res
}

// DanglingRuleRefs lists rule field paths that point at answer keys no field
// produces. Removing a field does not prune rules that referenced it; those
// rules keep evaluating against an absent value, and this surfaces them to
// the author at save time. Paths rooted at guardian or participant come from
// outside the schema and are not checked.
func DanglingRuleRefs(s *model.FormSchema) []string {
	names := make(map[string]bool)
	for _, n := range s.FieldNames() {
		names[n] = true
	}

	seen := make(map[string]bool)
	var dangling []string
	check := func(group *model.ConditionGroup) {
		if group == nil {
			return
		}
		for _, rule := range group.Rules {
			key, ok := answerKey(rule.Field)
			if !ok || names[key] || seen[rule.Field] {
				continue
			}
			seen[rule.Field] = true
			dangling = append(dangling, rule.Field)
		}
	}

	for _, step := range s.Steps {
		check(step.Conditions)
		for _, field := range step.Fields {
			check(field.Conditions)
		}
	}
	return dangling
}

// answerKey extracts the answer-store key a rule path refers to, if any
func answerKey(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	segments := strings.Split(path, ".")
	switch segments[0] {
	case "guardian", "participant":
		return "", false
	case "answers":
		if len(segments) < 2 {
			return "", false
		}
		return segments[1], true
	default:
		return segments[0], true
	}
}
