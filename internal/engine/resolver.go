package engine

import (
	"strings"

	"formflow/internal/model"
)

// Resolve walks a dotted path through the evaluation context and returns the
// value it lands on, or nil if any segment is missing or the current node is
// not an object. The first segment picks the root: guardian, participant or
// answers. Any other first segment is treated as a bare key into answers,
// which keeps rules written before the path prefixes existed working.
func Resolve(path string, ctx model.EvalContext) any {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	segments := strings.Split(path, ".")

	var node any
	switch segments[0] {
	case "guardian":
		node = mapOrNil(ctx.Guardian)
		segments = segments[1:]
	case "participant":
		node = mapOrNil(ctx.Participant)
		segments = segments[1:]
	case "answers":
		node = mapOrNil(ctx.Answers)
		segments = segments[1:]
	default:
		// Bare key fallback into answers
		node = mapOrNil(ctx.Answers)
	}

	for _, seg := range segments {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = obj[seg]
	}
	return node
}

// mapOrNil keeps a typed-nil map from surviving as a non-nil any
func mapOrNil(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}
