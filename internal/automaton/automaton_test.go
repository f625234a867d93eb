package automaton

import (
	"testing"

	"github.com/dekarrin/cflrec/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Build_SingleSymbolGrammar(t *testing.T) {
	assert := assert.New(t)

	// S -> a
	g := grammar.New()
	g.AddNonTerminal("S")
	g.AddTerminal("a")
	g.AddRule("S", grammar.Production{"a"})
	g.SetStart("S")

	dfa, gPrime := Build(g)

	assert.Equal(grammar.Symbol("#"), gPrime.StartSymbol())
	assert.NotEmpty(dfa.States)

	// state 0 must contain the seed item [# -> .S, $] and its closure
	// item [S -> .a, $].
	start := dfa.States[dfa.Start]
	found := false
	for _, key := range start.SortedKeys() {
		it := start.Get(key)
		if it.NonTerminal == "S" && !it.AtEnd() {
			sym, _ := it.NextSymbol()
			assert.Equal(grammar.Symbol("a"), sym)
			assert.Equal(grammar.Symbol("$"), it.Lookahead)
			found = true
		}
	}
	assert.True(found, "expected closure item for S -> .a in start state")

	// shifting 'a' from state 0 must lead somewhere, and that state must
	// have an item with the dot at the end.
	next, ok := dfa.Trans[dfa.Start]["a"]
	assert.True(ok)
	nextState := dfa.States[next]
	allAtEnd := true
	for _, key := range nextState.SortedKeys() {
		if !nextState.Get(key).AtEnd() {
			allAtEnd = false
		}
	}
	assert.True(allAtEnd)
}

func Test_Build_DeterministicStateCount(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.AddNonTerminal("S")
	g.AddTerminal("(")
	g.AddTerminal(")")
	g.AddRule("S", grammar.Production{"(", "S", ")", "S"})
	g.AddRule("S", grammar.Production{})
	g.SetStart("S")

	dfa1, _ := Build(g)
	dfa2, _ := Build(g)

	assert.Equal(len(dfa1.States), len(dfa2.States))
}

func Test_FirstOfSymbol_Terminal(t *testing.T) {
	g := grammar.New()
	g.AddTerminal("a")
	g.AddNonTerminal("S")
	g.SetStart("S")

	assert.Equal(t, []grammar.Symbol{"a"}, firstOfSymbol(g, "a"))
}

func Test_FirstOfSymbol_ExpandsThroughNonterminals(t *testing.T) {
	assert := assert.New(t)

	// S -> A, A -> a | ε
	g := grammar.New()
	g.AddNonTerminal("S")
	g.AddNonTerminal("A")
	g.AddTerminal("a")
	g.AddRule("S", grammar.Production{"A"})
	g.AddRule("A", grammar.Production{"a"})
	g.AddRule("A", grammar.Production{})
	g.SetStart("S")

	result := firstOfSymbol(g, "S")
	assert.Contains(result, grammar.Symbol("a"))
	assert.Contains(result, grammar.Epsilon)
}
