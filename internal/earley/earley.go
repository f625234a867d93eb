// Package earley implements the general Earley chart recognizer: a
// predict/scan/complete worklist over item sets D[0..n], one per input
// position. It is grounded on original_source/earley.py, adapted to this
// module's Grammar/LR0Item types and written in the teacher's idiom
// (String() on items and on the chart) rather than translated line-for-line
// from the Python source.
package earley

import (
	"fmt"
	"strings"

	"github.com/dekarrin/cflrec/internal/grammar"
)

// item is one Earley configuration: the rule being matched, the position in
// the input where its match began, and the dot position within the rule.
// Unlike grammar.LR0Item (used by the LR engine, where Left/Right split the
// production around the dot), an Earley item also carries its origin index,
// so it embeds LR0Item rather than duplicating its fields.
type item struct {
	grammar.LR0Item
	origin int
}

func (it item) String() string {
	return fmt.Sprintf("(%s, %d)", it.LR0Item.String(), it.origin)
}

func (it item) equal(o item) bool {
	return it.origin == o.origin && it.LR0Item.Equal(o.LR0Item)
}

// chart is D[0..n]: one ordered item list per input position. A plain slice
// (not a set type) is used because the worklist must preserve the order
// items were added in within a position — later items can still be scanned
// for completions against earlier ones added in the same pass, which is the
// nullable-completion subtlety the reference implementation's `current_D`
// list exists to handle.
type chart struct {
	sets [][]item
}

func newChart(n int) *chart {
	c := &chart{sets: make([][]item, n+1)}
	return c
}

func (c *chart) add(pos int, it item) bool {
	for _, existing := range c.sets[pos] {
		if existing.equal(it) {
			return false
		}
	}
	c.sets[pos] = append(c.sets[pos], it)
	return true
}

func (c *chart) String() string {
	var sb strings.Builder
	for i, set := range c.sets {
		sb.WriteString(fmt.Sprintf("D[%d]:\n", i))
		for _, it := range set {
			sb.WriteString("  ")
			sb.WriteString(it.String())
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Engine holds a grammar fitted for Earley recognition. There is no table to
// construct — Fit only validates and augments — so Engine is a thin wrapper that exists to
// give the Earley and LR engines a matching Fit/Predict shape.
type Engine struct {
	gPrime grammar.Grammar
	gStart grammar.Symbol
}

// Fit validates g and prepares an Engine holding the augmented grammar. The
// Earley algorithm itself needs no precomputed table: each Predict call
// builds a fresh chart over that augmented grammar.
func Fit(g grammar.Grammar) (*Engine, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Engine{gPrime: g.Augmented(), gStart: g.StartSymbol()}, nil
}

// Predict decides whether word is in L(G) by building the Earley chart over
// it and checking for a completed augmented item spanning the whole input.
func (e *Engine) Predict(word string) bool {
	syms := make([]grammar.Symbol, 0, len(word))
	for _, r := range word {
		syms = append(syms, string(r))
	}

	n := len(syms)
	c := newChart(n)

	start := item{
		LR0Item: grammar.LR0Item{
			NonTerminal: e.gPrime.StartSymbol(),
			Right:       grammar.Production{e.gStart},
		},
		origin: 0,
	}
	c.add(0, start)

	for i := 0; i <= n; i++ {
		// worklist holds items still to be processed at this position; it
		// grows as predict/complete add new items, mirroring the reference
		// implementation's current_D. Index into c.sets[i] directly so
		// items appended mid-loop are still visited.
		for k := 0; k < len(c.sets[i]); k++ {
			it := c.sets[i][k]

			sym, atEnd := it.NextSymbol()
			switch {
			case atEnd:
				e.complete(c, i, it)
			case e.gPrime.IsNonTerminal(sym):
				e.predict(c, i, sym)
			default:
				if i < n && syms[i] == sym {
					e.scan(c, i, it)
				}
			}
		}
	}

	accept := item{
		LR0Item: grammar.LR0Item{
			NonTerminal: e.gPrime.StartSymbol(),
			Left:        grammar.Production{e.gStart},
		},
		origin: 0,
	}
	for _, it := range c.sets[n] {
		if it.equal(accept) {
			return true
		}
	}
	return false
}

// predict adds, for every production of sym, a fresh item starting (and
// originating) at the current position i, with the dot at the front.
func (e *Engine) predict(c *chart, i int, sym grammar.Symbol) {
	for _, rule := range e.gPrime.RulesFor(sym) {
		c.add(i, item{
			LR0Item: grammar.LR0Item{NonTerminal: sym, Right: rule.Right.Copy()},
			origin:  i,
		})
	}
}

// scan advances it past its next terminal symbol, placing the advanced item
// in D[i+1] since the terminal was matched against syms[i].
func (e *Engine) scan(c *chart, i int, it item) {
	c.add(i+1, item{LR0Item: it.Advance(), origin: it.origin})
}

// complete looks for every item in D[it.origin] expecting it.NonTerminal
// next, and advances each into D[i]. Items originating at the current
// position i (i.e. it.origin == i, a completion of a nullable-derived
// nonterminal) must scan the current, still-growing worklist D[i] rather
// than a finished earlier set, since some of those items may not exist yet
// at the time this completion is processed — this is the branch the
// reference implementation's `if j != conf.i` distinguishes.
func (e *Engine) complete(c *chart, i int, it item) {
	for k := 0; k < len(c.sets[it.origin]); k++ {
		candidate := c.sets[it.origin][k]
		sym, ok := candidate.NextSymbol()
		if ok && sym == it.NonTerminal {
			c.add(i, item{LR0Item: candidate.Advance(), origin: candidate.origin})
		}
	}
}
