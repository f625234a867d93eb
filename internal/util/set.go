// Package util holds small generic container helpers shared by the grammar,
// automaton, and lr packages. It is a trimmed-down sibling of the
// set/stack helpers used throughout ictiobus: only the operations the
// recognizer engines actually call are kept.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a set of strings backed by a map. The zero value is not usable;
// construct with NewStringSet.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet.
func NewStringSet() StringSet {
	return StringSet{}
}

func (s StringSet) Add(v string)      { s[v] = true }
func (s StringSet) Remove(v string)   { delete(s, v) }
func (s StringSet) Has(v string) bool { return s[v] }

// Sorted returns the set's members sorted alphabetically.
func (s StringSet) Sorted() []string {
	elems := make([]string, 0, len(s))
	for v := range s {
		elems = append(elems, v)
	}
	sort.Strings(elems)
	return elems
}

// Copy returns a new StringSet with the same members.
func (s StringSet) Copy() StringSet {
	cp := NewStringSet()
	for v := range s {
		cp.Add(v)
	}
	return cp
}

// SVSet is a set of strings that also carries a value for each member, used
// to store the actual LR1Item/Rule a string-encoded key was derived from so
// callers don't need to re-parse the key.
type SVSet[V any] map[string]V

func NewSVSet[V any]() SVSet[V] {
	return SVSet[V]{}
}

func (s SVSet[V]) Set(key string, val V) { s[key] = val }
func (s SVSet[V]) Get(key string) V      { return s[key] }
func (s SVSet[V]) Has(key string) bool {
	_, ok := s[key]
	return ok
}
func (s SVSet[V]) Empty() bool { return len(s) == 0 }

func (s SVSet[V]) AddAll(o SVSet[V]) {
	for k, v := range o {
		s.Set(k, v)
	}
}

// SortedKeys returns the set's keys sorted alphabetically, for deterministic
// iteration when building string identities of whole sets (state/item-set
// equality is done by comparing these encodings).
func (s SVSet[V]) SortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringOrdered builds a canonical, order-independent encoding of the set's
// keys. Two SVSets with the same keys produce the same encoding regardless of
// insertion order; this is how LR(1) item sets are compared for state
// identity in automaton.Build.
func (s SVSet[V]) StringOrdered() string {
	var sb strings.Builder
	sb.WriteRune('{')
	keys := s.SortedKeys()
	for i, k := range keys {
		sb.WriteString(k)
		if i+1 < len(keys) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// Stack is a small LIFO used by the LR predict loop to track the recognizer's
// state stack. Of is exported so callers can inspect or initialize it
// directly, mirroring util.Stack[E]{Of: []E{...}} in ictiobus/parse.
type Stack[E any] struct {
	Of []E
}

func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

func (s *Stack[E]) Pop() E {
	if len(s.Of) == 0 {
		panic("pop of empty stack")
	}
	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

func (s *Stack[E]) Peek() E {
	if len(s.Of) == 0 {
		panic("peek of empty stack")
	}
	return s.Of[len(s.Of)-1]
}

func (s Stack[E]) Len() int { return len(s.Of) }

// Quote is a small helper for building error messages that name a symbol.
func Quote(s string) string {
	if s == "" {
		return "ε"
	}
	return fmt.Sprintf("%q", s)
}
