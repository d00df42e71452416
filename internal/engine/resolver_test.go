package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"formflow/internal/model"
)

type ResolverSuite struct {
	suite.Suite
	ctx model.EvalContext
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = model.EvalContext{
		Guardian: map[string]any{
			"name": "Dana",
			"address": map[string]any{
				"city": "Lisbon",
			},
		},
		Participant: map[string]any{
			"age": float64(14),
		},
		Answers: map[string]any{
			"shirt-size": "M",
			"emergency": map[string]any{
				"phone": "555-0100",
			},
		},
	}
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestRootSelection() {
	s.Run("guardian prefix", func() {
		s.Equal("Dana", Resolve("guardian.name", s.ctx))
	})

	s.Run("participant prefix", func() {
		s.Equal(float64(14), Resolve("participant.age", s.ctx))
	})

	s.Run("answers prefix", func() {
		s.Equal("M", Resolve("answers.shirt-size", s.ctx))
	})

	s.Run("bare key falls back to answers", func() {
		s.Equal("M", Resolve("shirt-size", s.ctx))
	})

	s.Run("bare root name returns the whole map", func() {
		s.Equal(map[string]any{"age": float64(14)}, Resolve("participant", s.ctx))
	})
}

func (s *ResolverSuite) TestNestedPaths() {
	s.Run("walks nested objects", func() {
		s.Equal("Lisbon", Resolve("guardian.address.city", s.ctx))
		s.Equal("555-0100", Resolve("emergency.phone", s.ctx))
	})

	s.Run("missing segment resolves to nil", func() {
		s.Nil(Resolve("guardian.address.zip", s.ctx))
		s.Nil(Resolve("guardian.missing", s.ctx))
	})

	s.Run("traversing through a scalar resolves to nil", func() {
		s.Nil(Resolve("guardian.name.first", s.ctx))
	})
}

func (s *ResolverSuite) TestDegenerateInputs() {
	s.Run("empty and whitespace paths", func() {
		s.Nil(Resolve("", s.ctx))
		s.Nil(Resolve("   ", s.ctx))
	})

	s.Run("surrounding whitespace is trimmed", func() {
		s.Equal("Dana", Resolve("  guardian.name  ", s.ctx))
	})

	s.Run("nil maps resolve to nil, not typed nils", func() {
		empty := model.EvalContext{}
		s.Nil(Resolve("guardian", empty))
		s.Nil(Resolve("participant.age", empty))
		s.Nil(Resolve("anything", empty))
	})
}
