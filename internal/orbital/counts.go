package orbital

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Counts maps each subshell to its electron count.
type Counts map[Subshell]int

// Total sums all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for s, n := range c {
		out[s] = n
	}
	return out
}

// Occupancy is one entry of a configuration in fill order.
type Occupancy struct {
	Subshell  Subshell `json:"subshell" yaml:"subshell"`
	Electrons int      `json:"electrons" yaml:"electrons"`
	Capacity  int      `json:"capacity" yaml:"capacity"`
}

// Occupancies lists c in the table's fill order, including empty subshells.
func (t *Table) Occupancies(c Counts) []Occupancy {
	out := make([]Occupancy, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, Occupancy{Subshell: s, Electrons: c[s], Capacity: s.Capacity()})
	}
	return out
}

// Notation renders c as "1s2 2s2 2p6" in fill order, skipping empty subshells.
func (t *Table) Notation(c Counts) string {
	parts := make([]string, 0, len(t.order))
	for _, s := range t.order {
		if n := c[s]; n > 0 {
			parts = append(parts, s.String()+strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " ")
}

// ParseNotation reads "1s2 2s2 2p6" (optionally "1s^2") into counts keyed by
// the table's fill order. Subshells outside the order and counts above
// capacity are rejected.
func (t *Table) ParseNotation(raw string) (Counts, error) {
	out := t.empty()
	for _, term := range strings.Fields(raw) {
		term = strings.ReplaceAll(strings.ToLower(term), "^", "")
		cut := strings.IndexFunc(term, func(r rune) bool { return r >= 'a' && r <= 'z' })
		if cut < 0 || cut == len(term)-1 {
			return nil, errors.Wrapf(ErrInvalidSubshell, "term %q has no electron count", term)
		}
		s, err := ParseSubshell(term[:cut+1])
		if err != nil {
			return nil, err
		}
		if !t.Contains(s) {
			return nil, errors.Newf("%s is not in the fill order", s)
		}
		n, err := strconv.Atoi(term[cut+1:])
		if err != nil || n < 0 {
			return nil, errors.Newf("term %q: electron count must be a non-negative integer", term)
		}
		if n > s.Capacity() {
			return nil, errors.Newf("term %q: %s holds at most %d", term, s, s.Capacity())
		}
		out[s] += n
		if out[s] > s.Capacity() {
			return nil, errors.Newf("%s listed with more than %d electrons", s, s.Capacity())
		}
	}
	return out, nil
}

func (t *Table) empty() Counts {
	out := make(Counts, len(t.order))
	for _, s := range t.order {
		out[s] = 0
	}
	return out
}
