package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type CompareSuite struct {
	suite.Suite
}

func TestCompareSuite(t *testing.T) {
	suite.Run(t, new(CompareSuite))
}

func (s *CompareSuite) TestEquality() {
	s.Run("string values", func() {
		s.True(Compare("yes", model.OpEquals, "yes"))
		s.False(Compare("no", model.OpEquals, "yes"))
		s.True(Compare("no", model.OpNotEquals, "yes"))
	})

	s.Run("numbers compare against their string form", func() {
		s.True(Compare(float64(3), model.OpEquals, "3"))
		s.True(Compare(3.5, model.OpEquals, "3.5"))
		s.True(Compare(7, model.OpEquals, "7"))
	})

	s.Run("booleans compare against their string form", func() {
		s.True(Compare(true, model.OpEquals, "true"))
		s.True(Compare(false, model.OpNotEquals, "true"))
	})

	s.Run("nil stringifies to empty", func() {
		s.True(Compare(nil, model.OpEquals, ""))
		s.True(Compare(nil, model.OpNotEquals, "yes"))
	})
}

func (s *CompareSuite) TestContains() {
	s.Run("array membership", func() {
		s.True(Compare([]any{"swim", "climb"}, model.OpContains, "swim"))
		s.False(Compare([]any{"swim", "climb"}, model.OpContains, "ride"))
		s.True(Compare([]string{"swim", "climb"}, model.OpContains, "climb"))
	})

	s.Run("array membership is exact, not substring", func() {
		s.False(Compare([]any{"swimming"}, model.OpContains, "swim"))
	})

	s.Run("string falls back to substring", func() {
		s.True(Compare("weekday mornings", model.OpContains, "morning"))
		s.False(Compare("weekday mornings", model.OpContains, "evening"))
	})

	s.Run("empty array contains nothing", func() {
		s.False(Compare([]any{}, model.OpContains, ""))
	})
}

func (s *CompareSuite) TestEmptiness() {
	cases := []struct {
		name  string
		value any
		empty bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace string", "   ", true},
		{"non-empty string", "a", false},
		{"zero", float64(0), false},
		{"false", false, false},
		{"empty array", []any{}, false},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.empty, Compare(tc.value, model.OpIsEmpty, ""))
			// not_empty is always the exact complement
			s.Equal(!tc.empty, Compare(tc.value, model.OpNotEmpty, ""))
		})
	}
}

func (s *CompareSuite) TestNumericComparisons() {
	s.Run("ordering operators", func() {
		s.True(Compare(float64(10), model.OpGreater, "5"))
		s.False(Compare(float64(5), model.OpGreater, "5"))
		s.True(Compare(float64(5), model.OpGreaterOrEq, "5"))
		s.True(Compare(float64(3), model.OpLess, "5"))
		s.True(Compare(float64(5), model.OpLessOrEq, "5"))
		s.False(Compare(float64(6), model.OpLessOrEq, "5"))
	})

	s.Run("numeric strings coerce", func() {
		s.True(Compare("10", model.OpGreater, "5"))
		s.True(Compare(" 10 ", model.OpGreater, "5"))
	})

	s.Run("unparseable operands fail closed", func() {
		s.False(Compare("n/a", model.OpGreater, "5"))
		s.False(Compare("n/a", model.OpLess, "5"))
		s.False(Compare(nil, model.OpGreaterOrEq, "0"))
		s.False(Compare(float64(10), model.OpGreater, "lots"))
	})
}

func (s *CompareSuite) TestUnknownOperator() {
	s.False(Compare("anything", model.Operator("matches_regex"), ".*"))
}
