package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LR0Item_Advance(t *testing.T) {
	assert := assert.New(t)

	it := LR0Item{NonTerminal: "S", Right: Production{"a", "S", "b"}}
	assert.False(it.AtEnd())

	sym, ok := it.NextSymbol()
	assert.True(ok)
	assert.Equal(Symbol("a"), sym)

	it = it.Advance()
	assert.Equal(Production{"a"}, it.Left)
	assert.Equal(Production{"S", "b"}, it.Right)

	it = it.Advance()
	it = it.Advance()
	assert.True(it.AtEnd())
	assert.Equal(Production{"a", "S", "b"}, it.Production())
}

func Test_LR0Item_Advance_PanicsAtEnd(t *testing.T) {
	it := LR0Item{NonTerminal: "S", Left: Production{"a"}}
	assert.Panics(t, func() { it.Advance() })
}

func Test_LR1Item_Equal(t *testing.T) {
	assert := assert.New(t)

	a := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: Production{"a"}}, Lookahead: "$"}
	b := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: Production{"a"}}, Lookahead: "$"}
	c := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: Production{"a"}}, Lookahead: "b"}

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func Test_LR1Item_Advance_PreservesLookahead(t *testing.T) {
	assert := assert.New(t)

	it := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: Production{"a"}}, Lookahead: "$"}
	advanced := it.Advance()

	assert.Equal(Symbol("$"), advanced.Lookahead)
	assert.True(advanced.AtEnd())
}
