package tower

import (
	"github.com/cockroachdb/errors"

	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

// Ghost suggests the next legal placement toward the target: the first
// subshell in fill order with a vacancy, one electron per orbital with spin
// up before pairing. It returns false once the tower is complete or the next
// step would break a rule.
func (t *Tower) Ghost() (Placement, bool) {
	p, v, found := t.Plan()
	if !found || !v.OK {
		return Placement{}, false
	}
	return p, true
}

// Plan returns the placement Ghost would suggest along with its verdict.
// found is false when no subshell has a vacancy.
func (t *Tower) Plan() (Placement, Verdict, bool) {
	for _, s := range t.table.Order() {
		if !t.HasVacancy(s) {
			continue
		}
		p, ok := nextInSubshell(t.slots[s])
		if !ok {
			continue
		}
		p.Subshell = s
		return p, t.Legal(p), true
	}
	return Placement{}, Verdict{}, false
}

func nextInSubshell(orbs [][]Spin) (Placement, bool) {
	for i, o := range orbs {
		if len(o) == 0 {
			spin := Up
			for _, other := range orbs {
				if len(other) == 1 {
					spin = other[0]
					break
				}
			}
			return Placement{Orbital: i, Spin: spin}, true
		}
	}
	for i, o := range orbs {
		if len(o) == 1 {
			return Placement{Orbital: i, Spin: o[0].Opposite()}, true
		}
	}
	return Placement{}, false
}

// Load replaces the tower contents with counts, filling each subshell the way
// Hund's rule would. Counts are not checked against the target. The tower is
// left untouched when counts cannot be loaded.
func (t *Tower) Load(counts orbital.Counts) error {
	for s, n := range counts {
		if n <= 0 {
			continue
		}
		if !t.table.Contains(s) {
			return errors.Newf("%s is not part of this tower", s)
		}
		if n > s.Capacity() {
			return errors.Newf("%s cannot hold %d electrons", s, n)
		}
	}

	t.Reset()
	for _, s := range t.table.Order() {
		for range counts[s] {
			p, _ := nextInSubshell(t.slots[s])
			t.slots[s][p.Orbital] = append(t.slots[s][p.Orbital], p.Spin)
		}
	}
	return nil
}
