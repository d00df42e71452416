package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type SlugSuite struct {
	suite.Suite
}

func TestSlugSuite(t *testing.T) {
	suite.Run(t, new(SlugSuite))
}

func (s *SlugSuite) TestSlugify() {
	cases := []struct {
		label string
		want  string
	}{
		{"First Name!", "first-name"},
		{"Email Address", "email-address"},
		{"  What's   your  T-shirt size?  ", "whats-your-t-shirt-size"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"日本語", ""},
		{"", ""},
	}
	for _, tc := range cases {
		s.Equal(tc.want, Slugify(tc.label), "label %q", tc.label)
	}
}

func (s *SlugSuite) TestUniqueFieldName() {
	sch := &model.FormSchema{Steps: []model.FormStep{{
		Key: "main",
		Fields: []model.FormField{
			{Name: "age"},
			{Name: "age-2"},
		},
	}}}

	s.Run("free name passes through", func() {
		s.Equal("name", UniqueFieldName(sch, "name", ""))
	})

	s.Run("collisions get the next numeric suffix", func() {
		s.Equal("age-3", UniqueFieldName(sch, "age", ""))
	})

	s.Run("renaming a field does not collide with itself", func() {
		s.Equal("age", UniqueFieldName(sch, "age", "age"))
	})

	s.Run("empty base falls back to field", func() {
		s.Equal("field", UniqueFieldName(sch, "", ""))
	})
}

type ClampSuite struct {
	suite.Suite
}

func TestClampSuite(t *testing.T) {
	suite.Run(t, new(ClampSuite))
}

func (s *ClampSuite) TestClampColumnCount() {
	s.Equal(1, ClampColumnCount(0))
	s.Equal(1, ClampColumnCount(-4))
	s.Equal(3, ClampColumnCount(3))
	s.Equal(MaxLayoutColumns, ClampColumnCount(9))
}

func (s *ClampSuite) TestClampColumnSpan() {
	s.Run("zero and negative spans take the full row", func() {
		s.Equal(4, ClampColumnSpan(0, 4))
		s.Equal(3, ClampColumnSpan(-1, 3))
	})

	s.Run("oversized spans shrink to the column count", func() {
		s.Equal(4, ClampColumnSpan(7, 4))
		s.Equal(2, ClampColumnSpan(3, 2))
	})

	s.Run("valid spans pass through", func() {
		s.Equal(2, ClampColumnSpan(2, 4))
	})
}
