package engine

import "formflow/internal/model"

// EvaluateRule resolves the rule's field path and compares it. A rule whose
// path resolves to nothing compares against nil, it does not fail.
func EvaluateRule(rule model.ConditionRule, ctx model.EvalContext) bool {
	return Compare(Resolve(rule.Field, ctx), rule.Op, rule.Value)
}

// EvaluateGroup reduces a condition group over the context. A nil group or a
// group with zero rules is vacuously satisfied: no restriction means visible.
func EvaluateGroup(group *model.ConditionGroup, ctx model.EvalContext) bool {
	if group == nil || len(group.Rules) == 0 {
		return true
	}

	if group.Mode == model.GroupModeAny {
		for _, rule := range group.Rules {
			if EvaluateRule(rule, ctx) {
				return true
			}
		}
		return false
	}

	// Anything other than an explicit "any" aggregates as "all"
	for _, rule := range group.Rules {
		if !EvaluateRule(rule, ctx) {
			return false
		}
	}
	return true
}
