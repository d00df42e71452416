package schema

import (
	"regexp"
	"strconv"
	"strings"

	"formflow/internal/model"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugHyphens  = regexp.MustCompile(`[\s-]+`)
	slugTrimEdge = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns a human label into a stable machine name: lowercase, strip
// everything outside [a-z0-9 -], collapse whitespace and repeated hyphens
// into single hyphens.
func Slugify(label string) string {
	s := strings.ToLower(label)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return slugTrimEdge.ReplaceAllString(s, "")
}

// UniqueFieldName returns base, or base-2, base-3... until the name is free
// in the schema. The field named exclude (the one being renamed) does not
// count as a collision.
func UniqueFieldName(s *model.FormSchema, base, exclude string) string {
	if base == "" {
		base = "field"
	}
	taken := make(map[string]bool)
	for _, name := range s.FieldNames() {
		if name != exclude {
			taken[name] = true
		}
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
