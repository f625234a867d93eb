// Package driver implements the line-oriented batch reader described as the
// system's external collaborator: it parses a grammar and a batch of query
// words from a text stream, fits the selected recognizer engine(s), and
// writes Yes/No per query. It is grounded on ictiobus/fishi.go's
// bufio.Scanner-based line reading, trimmed to this format's fixed grammar
// instead of a markdown-embedded DSL.
package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/cflrec/internal/earley"
	"github.com/dekarrin/cflrec/internal/grammar"
	"github.com/dekarrin/cflrec/internal/lr"
)

// Exact failure messages from the external interface contract. These are
// returned as-is (sometimes wrapped with %w by a more specific error) rather
// than lowercased per normal Go error-string convention, since they are a
// fixed wire contract a caller may match on verbatim.
var (
	ErrWrongInputFormat = errors.New("Wrong input format")
	ErrInvalidStart     = errors.New("Start symbol is not a nonterminal")
	ErrWrongGrammar     = errors.New("Wrong grammar")
	ErrWrongWord        = errors.New("Wrong word")
)

// Engine selects which recognizer engine(s) the driver fits and queries.
type Engine int

const (
	Earley Engine = iota
	LR1
	Both
)

// Run reads one batch (grammar + queries) from r per the §6 format, and
// writes "Yes"/"No" per query to w. It returns the first structural error
// encountered; per the design there is no partial success, so Run writes
// nothing further once an error is returned.
func Run(r io.Reader, w io.Writer, which Engine) error {
	return RunTrace(r, w, which, nil)
}

// RunTrace behaves like Run, but if trace is non-nil and an LR(1) table was
// fitted (which is LR1 or Both), its ACTION/GOTO table is written to trace
// once, before any query is answered.
func RunTrace(r io.Reader, w io.Writer, which Engine, trace io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	nextLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	countsLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%w: missing counts line", ErrWrongInputFormat)
	}
	nN, nSigma, nP, err := parseCounts(countsLine)
	if err != nil {
		return err
	}

	ntLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%w: missing nonterminal line", ErrWrongInputFormat)
	}
	nonterms, err := parseSymbolLine(ntLine, nN)
	if err != nil {
		return err
	}

	termLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%w: missing terminal line", ErrWrongInputFormat)
	}
	terms, err := parseSymbolLine(termLine, nSigma)
	if err != nil {
		return err
	}

	for sym := range nonterms {
		if terms.Has(sym) {
			return fmt.Errorf("%w: %s is both a nonterminal and a terminal", ErrWrongInputFormat, sym)
		}
	}
	if nonterms.Has(grammar.AugmentedStart) || terms.Has(grammar.AugmentedStart) ||
		nonterms.Has(grammar.EndMarker) || terms.Has(grammar.EndMarker) {
		return fmt.Errorf("%w: reserved symbol present in N or Σ", ErrWrongInputFormat)
	}

	g := grammar.New()
	for sym := range nonterms {
		g.AddNonTerminal(sym)
	}
	for sym := range terms {
		g.AddTerminal(sym)
	}

	for i := 0; i < nP; i++ {
		ruleLine, ok := nextLine()
		if !ok {
			return fmt.Errorf("%w: missing rule line %d", ErrWrongInputFormat, i+1)
		}
		left, right, err := parseRuleLine(ruleLine, nonterms, terms)
		if err != nil {
			return err
		}
		g.AddRule(left, right)
	}

	startLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%w: missing start symbol line", ErrWrongInputFormat)
	}
	start := strings.TrimRight(startLine, "\r")
	if len([]rune(start)) != 1 {
		return fmt.Errorf("%w: start symbol line must hold exactly one character", ErrWrongInputFormat)
	}
	if !nonterms.Has(start) {
		return ErrInvalidStart
	}
	g.SetStart(start)

	qLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%w: missing query count line", ErrWrongInputFormat)
	}
	q, err := strconv.Atoi(strings.TrimRight(qLine, "\r"))
	if err != nil || q < 0 {
		return fmt.Errorf("%w: bad query count", ErrWrongInputFormat)
	}

	queries := make([]string, q)
	for i := 0; i < q; i++ {
		line, ok := nextLine()
		if !ok {
			return fmt.Errorf("%w: missing query line %d", ErrWrongInputFormat, i+1)
		}
		word := strings.TrimRight(line, "\r")
		for _, r := range word {
			if !terms.Has(string(r)) {
				return fmt.Errorf("%w: query %q contains %q not in Σ", ErrWrongWord, word, string(r))
			}
		}
		queries[i] = word
	}

	var earleyEngine *earley.Engine
	var lrTable *lr.Table

	if which == Earley || which == Both {
		earleyEngine, err = earley.Fit(g)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrongGrammar, err)
		}
	}
	if which == LR1 || which == Both {
		lrTable, err = lr.Fit(g)
		if err != nil {
			if errors.Is(err, lr.ErrNotLR1) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrWrongGrammar, err)
		}
	}

	if trace != nil && lrTable != nil {
		fmt.Fprintln(trace, lrTable.String())
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for _, word := range queries {
		var accept bool
		switch which {
		case Earley:
			accept = earleyEngine.Predict(word)
		case LR1:
			accept = lrTable.Predict(word)
		case Both:
			accept = earleyEngine.Predict(word)
			if lrTable.Predict(word) != accept {
				// lr.Fit only succeeds for a conflict-free grammar, and the
				// engine agreement invariant guarantees both engines decide
				// membership identically for such a grammar.
				panic(fmt.Sprintf("engine disagreement on query %q: earley=%v lr=%v", word, accept, !accept))
			}
		}
		if accept {
			fmt.Fprintln(bw, "Yes")
		} else {
			fmt.Fprintln(bw, "No")
		}
	}

	return nil
}

func parseCounts(line string) (n, sigma, p int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: counts line must hold exactly three integers", ErrWrongInputFormat)
	}
	vals := make([]int, 3)
	for i, f := range fields {
		v, convErr := strconv.Atoi(f)
		if convErr != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("%w: counts must be non-negative integers", ErrWrongInputFormat)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func parseSymbolLine(line string, want int) (symbolSet, error) {
	line = strings.TrimRight(line, "\r")
	runes := []rune(line)
	if len(runes) != want {
		return nil, fmt.Errorf("%w: expected %d symbols, got %d", ErrWrongInputFormat, want, len(runes))
	}
	set := newSymbolSet()
	for _, r := range runes {
		sym := string(r)
		if set.Has(sym) {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrWrongInputFormat, sym)
		}
		set.Add(sym)
	}
	return set, nil
}

// parseRuleLine parses one "L->R" line. Syntax errors (wrong delimiter
// count, symbols outside N ∪ Σ ∪ {-,>}) are ErrWrongInputFormat; a
// syntactically fine line whose left side isn't a single nonterminal is
// ErrWrongGrammar, per the distinction drawn in §6/§7.
func parseRuleLine(line string, nonterms, terms symbolSet) (grammar.Symbol, grammar.Production, error) {
	line = strings.TrimRight(line, "\r")

	idx := strings.Index(line, "->")
	if idx < 0 || strings.Count(line, "->") != 1 {
		return "", nil, fmt.Errorf("%w: rule %q missing a single %q delimiter", ErrWrongInputFormat, line, "->")
	}

	left := line[:idx]
	right := line[idx+2:]

	for _, r := range left + right {
		sym := string(r)
		if r == '-' || r == '>' {
			return "", nil, fmt.Errorf("%w: rule %q has a stray delimiter character", ErrWrongInputFormat, line)
		}
		if !nonterms.Has(sym) && !terms.Has(sym) {
			return "", nil, fmt.Errorf("%w: rule %q contains symbol %q not in N ∪ Σ", ErrWrongInputFormat, line, sym)
		}
	}

	if len([]rune(left)) != 1 || !nonterms.Has(left) {
		return "", nil, fmt.Errorf("%w: rule %q has a left side not a single nonterminal", ErrWrongGrammar, line)
	}

	rhs := make(grammar.Production, 0, len(right))
	for _, r := range right {
		rhs = append(rhs, string(r))
	}

	return left, rhs, nil
}

// symbolSet is a tiny local set, kept separate from util.StringSet so this
// package doesn't need to import util just for membership checks during
// parsing.
type symbolSet map[string]bool

func newSymbolSet() symbolSet { return symbolSet{} }

func (s symbolSet) Add(v string) { s[v] = true }

func (s symbolSet) Has(v string) bool { return s[v] }
