package orbital

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ExceptionRule moves electrons from S into D for a neutral atom until D
// holds DTarget or S is down to SFinal.
type ExceptionRule struct {
	S       Subshell `json:"s" yaml:"s"`
	D       Subshell `json:"d" yaml:"d"`
	SFinal  int      `json:"s_final" yaml:"s_final"`
	DTarget int      `json:"d_target" yaml:"d_target"`
}

// Table is the host-supplied fill order and exception data. It is immutable
// once built and safe for concurrent use.
type Table struct {
	order      []Subshell
	index      map[Subshell]int
	exceptions map[int]ExceptionRule
}

// NewTable validates the fill order and exception rules. Every rule must name
// subshells from the order and its bounds must hold against the plain fill of
// its atomic number.
func NewTable(order []string, exceptions map[int]ExceptionRule) (*Table, error) {
	if len(order) == 0 {
		return nil, errors.WithHint(errors.New("empty fill order"), "list subshells like 1s, 2s, 2p")
	}
	t := &Table{
		order:      make([]Subshell, 0, len(order)),
		index:      make(map[Subshell]int, len(order)),
		exceptions: make(map[int]ExceptionRule, len(exceptions)),
	}
	for i, raw := range order {
		s, err := ParseSubshell(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "fill order position %d", i)
		}
		if _, dup := t.index[s]; dup {
			return nil, errors.Newf("fill order lists %s twice", s)
		}
		t.index[s] = i
		t.order = append(t.order, s)
	}

	for _, z := range sortedKeys(exceptions) {
		rule := exceptions[z]
		if err := t.validateRule(z, rule); err != nil {
			return nil, err
		}
		t.exceptions[z] = rule
	}
	return t, nil
}

func (t *Table) validateRule(z int, rule ExceptionRule) error {
	if z < 1 {
		return errors.Wrapf(ErrInvalidZ, "exception for Z=%d", z)
	}
	for _, s := range []Subshell{rule.S, rule.D} {
		if _, ok := t.index[s]; !ok {
			return errors.Wrapf(ErrUnknownExceptionTarget, "Z=%d: %s", z, s)
		}
	}
	if rule.S == rule.D {
		return errors.Wrapf(ErrInconsistentException, "Z=%d: source and destination are both %s", z, rule.S)
	}
	plain := t.NeutralFill(z, false, z)
	switch {
	case rule.SFinal < 0:
		return errors.Wrapf(ErrInconsistentException, "Z=%d: s_final %d is negative", z, rule.SFinal)
	case rule.DTarget > rule.D.Capacity():
		return errors.Wrapf(ErrInconsistentException, "Z=%d: d_target %d exceeds %s capacity %d", z, rule.DTarget, rule.D, rule.D.Capacity())
	case rule.SFinal > plain[rule.S]:
		return errors.Wrapf(ErrInconsistentException, "Z=%d: s_final %d above plain %s count %d", z, rule.SFinal, rule.S, plain[rule.S])
	case rule.DTarget < plain[rule.D]:
		return errors.Wrapf(ErrInconsistentException, "Z=%d: d_target %d below plain %s count %d", z, rule.DTarget, rule.D, plain[rule.D])
	}
	return nil
}

// Order returns a copy of the fill order.
func (t *Table) Order() []Subshell {
	return append([]Subshell(nil), t.order...)
}

// Contains reports whether s is part of the fill order.
func (t *Table) Contains(s Subshell) bool {
	_, ok := t.index[s]
	return ok
}

// Position is the index of s in the fill order, or -1.
func (t *Table) Position(s Subshell) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	return -1
}

// Exception returns the rule registered for z.
func (t *Table) Exception(z int) (ExceptionRule, bool) {
	rule, ok := t.exceptions[z]
	return rule, ok
}

// Exceptions returns the atomic numbers that carry a rule, ascending.
func (t *Table) Exceptions() []int {
	return sortedKeys(t.exceptions)
}

// Capacity is the total number of electrons the fill order can hold.
func (t *Table) Capacity() int {
	total := 0
	for _, s := range t.order {
		total += s.Capacity()
	}
	return total
}

func sortedKeys(m map[int]ExceptionRule) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
