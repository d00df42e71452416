package model

// Operator compares a resolved context value against a rule operand
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpIsEmpty     Operator = "is_empty"
	OpNotEmpty    Operator = "not_empty"
	OpGreater     Operator = ">"
	OpGreaterOrEq Operator = ">="
	OpLess        Operator = "<"
	OpLessOrEq    Operator = "<="
)

// RequiresValue reports whether the operator is meaningless without an operand
func (op Operator) RequiresValue() bool {
	switch op {
	case OpIsEmpty, OpNotEmpty:
		return false
	default:
		return true
	}
}

// RuleLevel selects which operator set a condition group may use
type RuleLevel string

const (
	// StepLevel rules gate whole steps and are limited to non-numeric operators
	StepLevel RuleLevel = "step"
	// FieldLevel rules gate single fields and allow the full operator set
	FieldLevel RuleLevel = "field"
)

var fieldOperators = map[Operator]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpIsEmpty:     true,
	OpNotEmpty:    true,
	OpGreater:     true,
	OpGreaterOrEq: true,
	OpLess:        true,
	OpLessOrEq:    true,
}

var stepOperators = map[Operator]bool{
	OpEquals:    true,
	OpNotEquals: true,
	OpContains:  true,
	OpIsEmpty:   true,
	OpNotEmpty:  true,
}

// AllowedAt reports whether the operator is valid for the given rule level
func (op Operator) AllowedAt(level RuleLevel) bool {
	if level == StepLevel {
		return stepOperators[op]
	}
	return fieldOperators[op]
}

// GroupMode aggregates rule results within a condition group
type GroupMode string

const (
	GroupModeAll GroupMode = "all" // every rule must pass
	GroupModeAny GroupMode = "any" // at least one rule must pass
)

// ConditionRule is a single visibility comparison. Field is a dotted path
// into the evaluation context (guardian.*, participant.*, answers.* or a
// bare answer key).
type ConditionRule struct {
	Field string   `json:"field" bson:"field"`
	Op    Operator `json:"op" bson:"op"`
	Value string   `json:"value,omitempty" bson:"value,omitempty"`
}

// ConditionGroup is one flat all/any group of rules attached to a step or
// field. A nil group, or a group with zero rules, means always visible.
type ConditionGroup struct {
	Mode  GroupMode       `json:"mode" bson:"mode"`
	Rules []ConditionRule `json:"rules" bson:"rules"`
}

// Clone returns a deep copy of the group. Returns nil for a nil receiver so
// callers can clone optional logic without nil checks.
func (g *ConditionGroup) Clone() *ConditionGroup {
	if g == nil {
		return nil
	}
	out := &ConditionGroup{Mode: g.Mode}
	if g.Rules != nil {
		out.Rules = make([]ConditionRule, len(g.Rules))
		copy(out.Rules, g.Rules)
	}
	return out
}
