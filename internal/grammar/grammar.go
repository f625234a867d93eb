// Package grammar holds the data model shared by the Earley and LR(1)
// recognizer engines: symbols, rules, and the Grammar record itself. It is
// modeled on ictiobus/grammar in the teacher repo, trimmed to single-character
// symbols and recognition-only use (no FIRST/FOLLOW/LL(1) table machinery,
// no grammar transforms — those are explicitly out of scope per the design's
// Non-goals).
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/cflrec/internal/util"
)

// Symbol is a single grammar symbol. The design restricts symbols to single
// characters; Symbol is kept as a string rather than a rune so it composes
// cleanly with Production and map keys without repeated conversion.
type Symbol = string

// Production is the right-hand side of a rule, a sequence of symbols. A nil
// or empty Production is an ε-production.
type Production []Symbol

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p Production) Copy() Production {
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

const (
	// AugmentedStart is the synthetic nonterminal '#' introduced by
	// Augmented to give the grammar's real start symbol a unique,
	// unambiguous reduction target. Reserved: it must not appear in a
	// user-supplied grammar's N or Σ.
	AugmentedStart Symbol = "#"

	// EndMarker is the end-of-input terminal '$' appended to words before
	// the LR(1) engine drives its stack machine. Reserved like
	// AugmentedStart.
	EndMarker Symbol = "$"

	// Epsilon is the empty-production pseudo-symbol used inside FIRST sets
	// to mean "this symbol string can derive the empty string."
	Epsilon Symbol = ""
)

// Rule is an ordered pair (Left, Right) with Left a single nonterminal and
// Right a (possibly empty) string over N ∪ Σ.
type Rule struct {
	Left  Symbol
	Right Production
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Left, r.Right.String())
}

func (r Rule) Equal(o Rule) bool {
	return r.Left == o.Left && r.Right.Equal(o.Right)
}

// Grammar is (N, Σ, P, S). It is built incrementally via AddNonTerminal /
// AddTerminal / AddRule / SetStart by a driver, then frozen by convention —
// nothing stops further mutation, but both engines only ever read from a
// Grammar handed to them, matching the teacher's "fitted grammar is read-only
// for the engine's lifetime" contract.
type Grammar struct {
	nonterminals util.StringSet
	terminals    util.StringSet
	rules        []Rule
	start        Symbol
}

// New returns an empty Grammar ready for incremental construction. Unlike the
// Python source this is modeled on, rules are stored per-instance: the design
// note on module-level mutable rule sets (distinct Grammar values must never
// share a backing rule slice) is honored by always allocating fresh storage
// here instead of on a package-level var.
func New() Grammar {
	return Grammar{
		nonterminals: util.NewStringSet(),
		terminals:    util.NewStringSet(),
	}
}

// AddNonTerminal inserts sym into N. No-op if already present.
func (g *Grammar) AddNonTerminal(sym Symbol) {
	if g.nonterminals == nil {
		g.nonterminals = util.NewStringSet()
	}
	g.nonterminals.Add(sym)
}

// AddTerminal inserts sym into Σ. No-op if already present.
func (g *Grammar) AddTerminal(sym Symbol) {
	if g.terminals == nil {
		g.terminals = util.NewStringSet()
	}
	g.terminals.Add(sym)
}

// AddRule inserts (left, right) into P. Idempotent: adding the same rule
// twice leaves P, and therefore L(G), unchanged.
func (g *Grammar) AddRule(left Symbol, right Production) {
	newRule := Rule{Left: left, Right: right.Copy()}
	for _, existing := range g.rules {
		if existing.Equal(newRule) {
			return
		}
	}
	g.rules = append(g.rules, newRule)
}

// SetStart designates S. It does not validate membership in N; that is the
// driver's job per §7 ("Invalid start symbol" is a driver-reported error,
// distinct from Grammar.Validate's grammar-shape check).
func (g *Grammar) SetStart(sym Symbol) {
	g.start = sym
}

// StartSymbol returns S.
func (g Grammar) StartSymbol() Symbol {
	return g.start
}

// IsTerminal reports membership in Σ.
func (g Grammar) IsTerminal(sym Symbol) bool {
	return g.terminals.Has(sym)
}

// IsNonTerminal reports membership in N.
func (g Grammar) IsNonTerminal(sym Symbol) bool {
	return g.nonterminals.Has(sym)
}

// Rules returns P in a stable order: the order rules were added in. This
// satisfies the design's "iterate P in some stable order... determinism
// across a single fit is sufficient" requirement.
func (g Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RulesFor returns every rule whose left side is nt, in addition order.
func (g Grammar) RulesFor(nt Symbol) []Rule {
	var out []Rule
	for _, r := range g.rules {
		if r.Left == nt {
			out = append(out, r)
		}
	}
	return out
}

// NonTerminals returns N, alphabetized for reproducible iteration.
func (g Grammar) NonTerminals() []Symbol {
	return g.nonterminals.Sorted()
}

// Terminals returns Σ, alphabetized for reproducible iteration.
func (g Grammar) Terminals() []Symbol {
	return g.terminals.Sorted()
}

// Validate implements is_well_formed: every rule's left side must be a
// single symbol belonging to N, and every symbol on a rule's right side must
// belong to N ∪ Σ. It also enforces the two reserved symbols never leak into
// a user-supplied grammar, since that would silently corrupt augmentation.
func (g Grammar) Validate() error {
	if len(g.nonterminals) == 0 {
		return fmt.Errorf("grammar has no nonterminals")
	}
	if g.nonterminals.Has(AugmentedStart) || g.terminals.Has(AugmentedStart) {
		return fmt.Errorf("reserved symbol %q must not appear in N or Σ", AugmentedStart)
	}
	if g.nonterminals.Has(EndMarker) || g.terminals.Has(EndMarker) {
		return fmt.Errorf("reserved symbol %q must not appear in N or Σ", EndMarker)
	}
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar has no rules")
	}

	for _, r := range g.rules {
		if len(r.Left) != 1 {
			return fmt.Errorf("rule %q has a left side that is not a single symbol", r.String())
		}
		if !g.nonterminals.Has(r.Left) {
			return fmt.Errorf("rule %q has a left side %q not in N", r.String(), r.Left)
		}
		for _, sym := range r.Right {
			if !g.nonterminals.Has(sym) && !g.terminals.Has(sym) {
				return fmt.Errorf("rule %q contains symbol %q that is in neither N nor Σ", r.String(), sym)
			}
		}
	}

	return nil
}

// Augmented returns a new Grammar G' equal to g plus the synthetic rule
// #→S, with # added to N and set as the new start symbol. g itself is
// unmodified. Per the design's Augmented Rule Isolation invariant, this never
// changes L(G) as observed through g's own original start symbol.
func (g Grammar) Augmented() Grammar {
	gPrime := New()
	gPrime.nonterminals = g.nonterminals.Copy()
	gPrime.terminals = g.terminals.Copy()
	gPrime.rules = make([]Rule, len(g.rules))
	copy(gPrime.rules, g.rules)

	gPrime.nonterminals.Add(AugmentedStart)
	gPrime.rules = append(gPrime.rules, Rule{Left: AugmentedStart, Right: Production{g.start}})
	gPrime.start = AugmentedStart

	return gPrime
}

func (g Grammar) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("N=%s, Σ=%s, S=%s, P={\n", g.NonTerminals(), g.Terminals(), g.start))
	for _, r := range g.rules {
		sb.WriteString("  ")
		sb.WriteString(r.String())
		sb.WriteRune('\n')
	}
	sb.WriteString("}")
	return sb.String()
}
