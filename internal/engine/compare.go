package engine

import (
	"fmt"
	"strconv"
	"strings"

	"formflow/internal/model"
)

// Compare evaluates a single operator against a resolved context value.
// It never errors: unknown operators and unresolvable numeric comparisons
// evaluate to false, so a broken rule can only hide, never reveal.
func Compare(left any, op model.Operator, value string) bool {
	switch op {
	case model.OpIsEmpty:
		return isEmpty(left)
	case model.OpNotEmpty:
		return !isEmpty(left)
	case model.OpEquals:
		return stringify(left) == value
	case model.OpNotEquals:
		return stringify(left) != value
	case model.OpContains:
		if items, ok := left.([]any); ok {
			for _, item := range items {
				if stringify(item) == value {
					return true
				}
			}
			return false
		}
		if items, ok := left.([]string); ok {
			for _, item := range items {
				if item == value {
					return true
				}
			}
			return false
		}
		return strings.Contains(stringify(left), value)
	case model.OpGreater, model.OpGreaterOrEq, model.OpLess, model.OpLessOrEq:
		l, lok := toNumber(left)
		r, rok := toNumber(value)
		if !lok || !rok {
			return false
		}
		switch op {
		case model.OpGreater:
			return l > r
		case model.OpGreaterOrEq:
			return l >= r
		case model.OpLess:
			return l < r
		default:
			return l <= r
		}
	default:
		return false
	}
}

// isEmpty treats nil and whitespace-only strings as empty. Everything else,
// including 0, false and empty slices, counts as a present value.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprint(v)
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
