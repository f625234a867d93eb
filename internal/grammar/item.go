package grammar

import (
	"fmt"
	"strings"
)

// LR0Item is a rule with a dot position marking the matched prefix: Left is
// the matched α, Right is the unmatched β, of a production NonTerminal → αβ.
// Grounded on ictiobus/grammar/item.go's LR0Item, trimmed to single-character
// Symbol values (no rune-vs-string distinction needed).
type LR0Item struct {
	NonTerminal Symbol
	Left        Production
	Right       Production
}

func (lr0 LR0Item) String() string {
	left := strings.Join(lr0.Left, " ")
	right := strings.Join(lr0.Right, " ")
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s.%s", lr0.NonTerminal, left, right)
}

func (lr0 LR0Item) Equal(o LR0Item) bool {
	return lr0.NonTerminal == o.NonTerminal && lr0.Left.Equal(o.Left) && lr0.Right.Equal(o.Right)
}

// AtEnd reports whether the dot has reached the end of the production, i.e.
// this item is of the form A → γ·.
func (lr0 LR0Item) AtEnd() bool {
	return len(lr0.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the dot is at the end.
func (lr0 LR0Item) NextSymbol() (Symbol, bool) {
	if lr0.AtEnd() {
		return "", false
	}
	return lr0.Right[0], true
}

// Advance returns a copy of lr0 with the dot moved one symbol to the right.
// Panics if the dot is already at the end; callers must check AtEnd/NextSymbol
// first, mirroring the teacher's assumption that callers only advance items
// known to have a next symbol.
func (lr0 LR0Item) Advance() LR0Item {
	if lr0.AtEnd() {
		panic("cannot advance an item whose dot is already at the end")
	}
	next := LR0Item{
		NonTerminal: lr0.NonTerminal,
		Left:        append(lr0.Left.Copy(), lr0.Right[0]),
		Right:       lr0.Right[1:].Copy(),
	}
	return next
}

// Production reconstructs the full right-hand side Left+Right, i.e. the rule
// this item's dot is walking across.
func (lr0 LR0Item) Production() Production {
	full := make(Production, 0, len(lr0.Left)+len(lr0.Right))
	full = append(full, lr0.Left...)
	full = append(full, lr0.Right...)
	return full
}

// LR1Item adds a single-terminal lookahead to an LR0Item, per the design's
// 3-tuple (rule, lookahead, dot).
type LR1Item struct {
	LR0Item
	Lookahead Symbol
}

func (lr1 LR1Item) String() string {
	return fmt.Sprintf("[%s, %s]", lr1.LR0Item.String(), lr1.Lookahead)
}

func (lr1 LR1Item) Equal(o LR1Item) bool {
	return lr1.LR0Item.Equal(o.LR0Item) && lr1.Lookahead == o.Lookahead
}

func (lr1 LR1Item) Copy() LR1Item {
	return LR1Item{
		LR0Item: LR0Item{
			NonTerminal: lr1.NonTerminal,
			Left:        lr1.Left.Copy(),
			Right:       lr1.Right.Copy(),
		},
		Lookahead: lr1.Lookahead,
	}
}

func (lr1 LR1Item) Advance() LR1Item {
	return LR1Item{LR0Item: lr1.LR0Item.Advance(), Lookahead: lr1.Lookahead}
}
