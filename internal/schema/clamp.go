package schema

// MaxLayoutColumns is the widest grid a form or step may use
const MaxLayoutColumns = 4

// ClampColumnCount forces a layout column count into [1,4]. Zero and
// negative input, the usual result of a missing JSON field, defaults to 1.
func ClampColumnCount(v int) int {
	if v <= 0 {
		return 1
	}
	if v > MaxLayoutColumns {
		return MaxLayoutColumns
	}
	return v
}

// ClampColumnSpan forces a field span into [1,columns]. Zero and negative
// input defaults to the full step width so a malformed field still renders.
func ClampColumnSpan(span, columns int) int {
	columns = ClampColumnCount(columns)
	if span <= 0 {
		return columns
	}
	if span > columns {
		return columns
	}
	return span
}
