// Package lr implements the canonical LR(1) recognizer engine: building the
// ACTION/GOTO table from the automaton package's viable-prefix DFA (per
// Algorithm 4.56 in the purple dragon book, as ictiobus/parse/clr1.go names
// it), and driving the shift-reduce stack machine to decide membership
// without building a parse tree — recognition only, per the design's
// Non-goals.
package lr

import (
	"fmt"

	"github.com/dekarrin/cflrec/internal/automaton"
	"github.com/dekarrin/cflrec/internal/grammar"
	"github.com/dekarrin/cflrec/internal/util"
	"github.com/dekarrin/rosed"
)

// ActionType distinguishes the four kinds of table entry, mirroring
// ictiobus/parse/lraction.go's LRActionType.
type ActionType int

const (
	actionError ActionType = iota
	Shift
	Reduce
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell.
type Action struct {
	Type  ActionType
	State int          // target state, for Shift
	Rule  grammar.Rule // rule to reduce by, for Reduce
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", a.Rule.String())
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// conflictKind is used only to build a precise internal error message; the
// design's §7 keeps a single exported "Not LR(1) grammar" string regardless
// of which kind of conflict was found, matching the reference implementation.
type conflictKind int

const (
	conflictShiftReduce conflictKind = iota
	conflictReduceReduce
	conflictAcceptShift
	conflictAcceptReduce
)

func (k conflictKind) String() string {
	switch k {
	case conflictShiftReduce:
		return "shift/reduce"
	case conflictReduceReduce:
		return "reduce/reduce"
	case conflictAcceptShift:
		return "accept/shift"
	case conflictAcceptReduce:
		return "accept/reduce"
	default:
		return "unknown"
	}
}

// ErrNotLR1 is returned (wrapped with detail) by Fit when the grammar's
// canonical collection does not yield a conflict-free ACTION table. The text
// is the exact failure message the driver's external contract specifies, not
// the usual lowercase Go error convention — callers up through the driver
// surface this string verbatim.
var ErrNotLR1 = fmt.Errorf("Not LR(1) grammar")

// Table is a fitted LR(1) recognizer: the ACTION/GOTO table over the states
// of the canonical automaton, plus the augmented grammar it was built from.
type Table struct {
	dfa     *automaton.DFA
	gPrime  grammar.Grammar
	action  []map[grammar.Symbol]Action
	gotoTab []map[grammar.Symbol]int
}

// Fit builds the canonical LR(1) ACTION/GOTO table for g. It returns
// ErrNotLR1 (wrapped with the conflicting cell's detail) if any table cell
// would need two different entries — g is then not an LR(1) grammar.
func Fit(g grammar.Grammar) (*Table, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	dfa, gPrime := automaton.Build(g)

	t := &Table{
		dfa:     dfa,
		gPrime:  gPrime,
		action:  make([]map[grammar.Symbol]Action, len(dfa.States)),
		gotoTab: make([]map[grammar.Symbol]int, len(dfa.States)),
	}
	for i := range dfa.States {
		t.action[i] = map[grammar.Symbol]Action{}
		t.gotoTab[i] = map[grammar.Symbol]int{}
	}

	for i, trans := range dfa.Trans {
		for sym, j := range trans {
			if gPrime.IsNonTerminal(sym) {
				t.gotoTab[i][sym] = j
				continue
			}
			if err := t.setAction(i, sym, Action{Type: Shift, State: j}); err != nil {
				return nil, err
			}
		}
	}

	for i, I := range dfa.States {
		for _, key := range I.SortedKeys() {
			item := I.Get(key)
			if !item.AtEnd() {
				continue
			}

			if item.NonTerminal == gPrime.StartSymbol() {
				if item.Lookahead == grammar.EndMarker {
					if err := t.setAction(i, grammar.EndMarker, Action{Type: Accept}); err != nil {
						return nil, err
					}
				}
				continue
			}

			rule := grammar.Rule{Left: item.NonTerminal, Right: item.Production()}
			if err := t.setAction(i, item.Lookahead, Action{Type: Reduce, Rule: rule}); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func (t *Table) setAction(state int, sym grammar.Symbol, act Action) error {
	existing, has := t.action[state][sym]
	if !has {
		t.action[state][sym] = act
		return nil
	}
	if existing.Type == act.Type && existing.Equal(act) {
		return nil
	}

	kind := conflictReduceReduce
	switch {
	case existing.Type == Accept || act.Type == Accept:
		if existing.Type == Shift || act.Type == Shift {
			kind = conflictAcceptShift
		} else {
			kind = conflictAcceptReduce
		}
	case existing.Type == Shift || act.Type == Shift:
		kind = conflictShiftReduce
	}

	return fmt.Errorf("%w: %s conflict in state %d on %s: have %s, found %s",
		ErrNotLR1, kind, state, util.Quote(sym), existing.String(), act.String())
}

// Equal compares two Actions by type and payload.
func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.Rule.Equal(o.Rule)
	default:
		return true
	}
}

// Action looks up the ACTION table cell for (state, sym).
func (t *Table) Action(state int, sym grammar.Symbol) (Action, bool) {
	act, ok := t.action[state][sym]
	return act, ok
}

// Goto looks up the GOTO table cell for (state, nonterminal).
func (t *Table) Goto(state int, nt grammar.Symbol) (int, bool) {
	j, ok := t.gotoTab[state][nt]
	return j, ok
}

// String renders the ACTION/GOTO table as a grid, one row per state, for
// -t/--trace diagnostics. Grounded on ictiobus/parse/clr1.go's
// canonicalLR1Table.String(), which builds the same kind of grid via
// rosed.InsertTableOpts.
func (t *Table) String() string {
	allTerms := append(append([]grammar.Symbol{}, t.gPrime.Terminals()...), grammar.EndMarker)
	allNonterms := t.gPrime.NonTerminals()

	headers := []string{"state", "|"}
	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, "|")
	for _, nt := range allNonterms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	for i := range t.dfa.States {
		row := []string{fmt.Sprintf("%d", i), "|"}
		for _, term := range allTerms {
			cell := ""
			if act, ok := t.Action(i, term); ok {
				cell = act.String()
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range allNonterms {
			cell := ""
			if j, ok := t.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Predict decides whether word (a string of terminal symbols, ε allowed as
// the empty string) is in L(G) by driving the shift-reduce stack machine to
// either Accept or a stuck (no table entry) configuration. It does not
// construct a parse tree, per the design's recognition-only scope.
func (t *Table) Predict(word string) bool {
	input := make([]grammar.Symbol, 0, len(word)+1)
	for _, r := range word {
		input = append(input, string(r))
	}
	input = append(input, grammar.EndMarker)

	states := util.Stack[int]{}
	states.Push(t.dfa.Start)

	i := 0
	for {
		s := states.Peek()
		a := input[i]

		act, ok := t.Action(s, a)
		if !ok {
			return false
		}

		switch act.Type {
		case Shift:
			states.Push(act.State)
			i++

		case Reduce:
			n := len(act.Rule.Right)
			if states.Len() <= n {
				return false
			}
			for k := 0; k < n; k++ {
				states.Pop()
			}
			sPrime := states.Peek()
			j, ok := t.Goto(sPrime, act.Rule.Left)
			if !ok {
				return false
			}
			states.Push(j)

		case Accept:
			return true

		default:
			return false
		}
	}
}
