// Package automaton builds the canonical collection of LR(1) item sets for a
// grammar: the CLOSURE and GOTO operations from §4.3.1 of the design, and the
// breadth-first state/transition construction that drives them. It is
// grounded on ictiobus/automaton/automaton.go's NewLR1ViablePrefixDFA, trimmed
// to LR(1) only — no LR(0)/NFA/DFA-merging machinery is needed since LALR(1)
// and SLR(1) are out of scope for this recognizer.
package automaton

import (
	"fmt"

	"github.com/dekarrin/cflrec/internal/grammar"
	"github.com/dekarrin/cflrec/internal/util"
)

// ItemSet is a set of LR(1) items keyed by their canonical String() encoding.
type ItemSet = util.SVSet[grammar.LR1Item]

// DFA is the canonical LR(1) viable-prefix automaton: States[i] is the LR(1)
// item set at state i, and Trans[i][sym] is the state reached from state i on
// symbol sym (terminal or nonterminal alike — the design stores shift and
// goto targets in the same transition map, splitting them only when the LR
// table is filled).
type DFA struct {
	States []ItemSet
	Trans  []map[grammar.Symbol]int
	Start  int
}

// Build constructs the canonical LR(1) automaton for g. g must not already be
// augmented; Build augments it internally and returns the augmented grammar
// G' alongside the automaton, since callers (the LR table builder) need both.
func Build(g grammar.Grammar) (*DFA, grammar.Grammar) {
	gPrime := g.Augmented()

	initial := grammar.LR1Item{
		LR0Item: grammar.LR0Item{
			NonTerminal: gPrime.StartSymbol(),
			Right:       grammar.Production{g.StartSymbol()},
		},
		Lookahead: grammar.EndMarker,
	}

	seed := util.NewSVSet[grammar.LR1Item]()
	seed.Set(initial.String(), initial)
	startSet := closure(gPrime, seed)

	dfa := &DFA{
		States: []ItemSet{startSet},
		Trans:  []map[grammar.Symbol]int{{}},
		Start:  0,
	}

	index := map[string]int{startSet.StringOrdered(): 0}
	queue := []int{0}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		I := dfa.States[i]
		seenSymbols := util.NewStringSet()

		for _, key := range I.SortedKeys() {
			item := I.Get(key)
			sym, ok := item.NextSymbol()
			if !ok || seenSymbols.Has(sym) {
				continue
			}
			seenSymbols.Add(sym)

			next := gotoSet(gPrime, I, sym)
			if next.Empty() {
				continue
			}

			canon := next.StringOrdered()
			j, exists := index[canon]
			if !exists {
				j = len(dfa.States)
				index[canon] = j
				dfa.States = append(dfa.States, next)
				dfa.Trans = append(dfa.Trans, map[grammar.Symbol]int{})
				queue = append(queue, j)
			}

			if existingJ, has := dfa.Trans[i][sym]; has && existingJ != j {
				// GOTO is a function of (state, symbol); computing two
				// different targets here would mean the closure/goto
				// construction itself is broken, not that the grammar is
				// ambiguous — real LR(1) conflicts surface later, while
				// filling the action table.
				panic(fmt.Sprintf("internal error: state %d has inconsistent GOTO on %q", i, sym))
			}
			dfa.Trans[i][sym] = j
		}
	}

	return dfa, gPrime
}

// closure computes CLOSURE(I): repeatedly add, for every item
// [A → α·Bβ, ℓ] with B a nonterminal, every item [B → ·γ, t] for each
// production B→γ and each t in FIRST(βℓ), until no new items appear.
func closure(g grammar.Grammar, seed ItemSet) ItemSet {
	out := util.NewSVSet[grammar.LR1Item]()
	out.AddAll(seed)

	changed := true
	for changed {
		changed = false
		for _, key := range out.SortedKeys() {
			item := out.Get(key)
			sym, ok := item.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}

			beta := item.Right[1:]
			lookaheads := first(g, beta, item.Lookahead)

			for _, rule := range g.RulesFor(sym) {
				for _, t := range lookaheads {
					newItem := grammar.LR1Item{
						LR0Item:   grammar.LR0Item{NonTerminal: sym, Right: rule.Right.Copy()},
						Lookahead: t,
					}
					newKey := newItem.String()
					if !out.Has(newKey) {
						out.Set(newKey, newItem)
						changed = true
					}
				}
			}
		}
	}

	return out
}

// gotoSet computes GOTO(I, X): advance the dot past X in every item of I that
// has X next, then close the result. Returns an empty set if no item in I has
// X next.
func gotoSet(g grammar.Grammar, I ItemSet, X grammar.Symbol) ItemSet {
	kernel := util.NewSVSet[grammar.LR1Item]()
	for _, key := range I.SortedKeys() {
		item := I.Get(key)
		sym, ok := item.NextSymbol()
		if ok && sym == X {
			advanced := item.Advance()
			kernel.Set(advanced.String(), advanced)
		}
	}
	if kernel.Empty() {
		return kernel
	}
	return closure(g, kernel)
}

// first implements the design's simplified FIRST(ω) used by CLOSURE: if ω
// (beta) is empty, the carried lookahead is the only candidate; otherwise it
// is FIRST of beta's leading symbol, truncated to single characters per
// §4.3.1 and §9 (this build's Open Question resolution — see DESIGN.md).
func first(g grammar.Grammar, beta grammar.Production, carried grammar.Symbol) []grammar.Symbol {
	if len(beta) == 0 {
		return []grammar.Symbol{carried}
	}
	return firstOfSymbol(g, beta[0])
}

// firstOfSymbol computes the truncated single-character FIRST set of one
// grammar symbol: start with {sym}, and while any member is a nonterminal,
// replace it with the first symbol of each of its productions (ε for an
// ε-production), until the set contains only terminals (and possibly ε).
// Each nonterminal is expanded at most once, so recursive rules terminate.
// This mirrors the reference implementation's first(), fixed to iterate in a
// stable order instead of Python set-iteration order (the source's order
// dependence was an accident of implementation, not meaningful semantics).
func firstOfSymbol(g grammar.Grammar, sym grammar.Symbol) []grammar.Symbol {
	if g.IsTerminal(sym) {
		return []grammar.Symbol{sym}
	}

	result := util.NewStringSet()
	result.Add(sym)
	expanded := util.NewStringSet()

	changed := true
	for changed {
		changed = false
		for _, u := range result.Sorted() {
			if g.IsTerminal(u) || u == grammar.Epsilon {
				continue
			}
			result.Remove(u)
			changed = true
			if expanded.Has(u) {
				continue
			}
			expanded.Add(u)
			for _, rule := range g.RulesFor(u) {
				var head grammar.Symbol
				if len(rule.Right) == 0 {
					head = grammar.Epsilon
				} else {
					head = rule.Right[0]
				}
				result.Add(head)
			}
		}
	}

	return result.Sorted()
}
