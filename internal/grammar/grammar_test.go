package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupGrammar(nonterms, terms []Symbol, rules map[Symbol][]Production, start Symbol) Grammar {
	g := New()
	for _, nt := range nonterms {
		g.AddNonTerminal(nt)
	}
	for _, t := range terms {
		g.AddTerminal(t)
	}
	for left, prods := range rules {
		for _, r := range prods {
			g.AddRule(left, r)
		}
	}
	g.SetStart(start)
	return g
}

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		nonterms  []Symbol
		terms     []Symbol
		rules     map[Symbol][]Production
		start     Symbol
		expectErr bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name:      "no rules in grammar",
			nonterms:  []Symbol{"S"},
			terms:     []Symbol{"a"},
			expectErr: true,
		},
		{
			name:     "single rule grammar",
			nonterms: []Symbol{"S"},
			terms:    []Symbol{"a"},
			rules:    map[Symbol][]Production{"S": {{"a"}}},
			start:    "S",
		},
		{
			name:     "epsilon production is fine",
			nonterms: []Symbol{"S"},
			terms:    []Symbol{"a"},
			rules:    map[Symbol][]Production{"S": {{}}},
			start:    "S",
		},
		{
			name:     "rule references symbol not in N or Σ",
			nonterms: []Symbol{"S"},
			terms:    []Symbol{"a"},
			rules:    map[Symbol][]Production{"S": {{"b"}}},
			start:    "S",
			expectErr: true,
		},
		{
			name:     "reserved symbol in N",
			nonterms: []Symbol{"S", AugmentedStart},
			terms:    []Symbol{"a"},
			rules:    map[Symbol][]Production{"S": {{"a"}}},
			start:    "S",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := setupGrammar(tc.nonterms, tc.terms, tc.rules, tc.start)
			actual := g.Validate()
			if tc.expectErr {
				assert.Error(actual)
			} else {
				assert.NoError(actual)
			}
		})
	}
}

func Test_Grammar_AddRule_Idempotent(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar([]Symbol{"S"}, []Symbol{"a"}, nil, "S")
	g.AddRule("S", Production{"a"})
	g.AddRule("S", Production{"a"})

	assert.Len(g.Rules(), 1)
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar([]Symbol{"S"}, []Symbol{"a"}, map[Symbol][]Production{"S": {{"a"}}}, "S")
	gPrime := g.Augmented()

	assert.Equal(AugmentedStart, gPrime.StartSymbol())
	assert.True(gPrime.IsNonTerminal(AugmentedStart))
	assert.Contains(gPrime.RulesFor(AugmentedStart), Rule{Left: AugmentedStart, Right: Production{"S"}})

	// original grammar must be untouched
	assert.Equal(Symbol("S"), g.StartSymbol())
	assert.False(g.IsNonTerminal(AugmentedStart))
}

func Test_Grammar_RulesFor_PreservesAddOrder(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar([]Symbol{"S", "A"}, []Symbol{"a", "b"}, nil, "S")
	g.AddRule("S", Production{"A"})
	g.AddRule("S", Production{"a"})
	g.AddRule("S", Production{"b"})

	rs := g.RulesFor("S")
	assert.Equal(Production{"A"}, rs[0].Right)
	assert.Equal(Production{"a"}, rs[1].Right)
	assert.Equal(Production{"b"}, rs[2].Right)
}
