// Package tower tracks the electrons a player has placed and checks each new
// placement against Pauli, Hund, Aufbau and the current target configuration.
package tower

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

type Spin int8

const (
	Up   Spin = 1
	Down Spin = -1
)

func (s Spin) String() string {
	switch s {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "?"
	}
}

func (s Spin) Opposite() Spin {
	return -s
}

func (s Spin) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSpin accepts up/down, u/d and the arrow glyphs.
func ParseSpin(raw string) (Spin, error) {
	switch raw {
	case "up", "u", "+", "↑":
		return Up, nil
	case "down", "d", "-", "↓":
		return Down, nil
	default:
		return 0, errors.Newf("unknown spin %q", raw)
	}
}

// Placement is one electron dropped into an orbital of a subshell.
type Placement struct {
	Subshell orbital.Subshell `json:"subshell" yaml:"subshell"`
	Orbital  int              `json:"orbital" yaml:"orbital"`
	Spin     Spin             `json:"spin" yaml:"spin"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%s[%d] %s", p.Subshell, p.Orbital, p.Spin)
}

type Rule string

const (
	RuleRange      Rule = "Range"
	RulePauli      Rule = "Pauli"
	RuleHund       Rule = "Hund"
	RuleAufbau     Rule = "Aufbau"
	RuleIonization Rule = "Ionization"
)

// Verdict is the outcome of a legality check.
type Verdict struct {
	OK   bool   `json:"ok" yaml:"ok"`
	Rule Rule   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Msg  string `json:"msg,omitempty" yaml:"msg,omitempty"`
}

func allow() Verdict { return Verdict{OK: true} }

func deny(rule Rule, format string, args ...any) Verdict {
	return Verdict{OK: false, Rule: rule, Msg: fmt.Sprintf(format, args...)}
}

// Tower is a player's building: per subshell, per orbital, the spins placed
// so far. It is not safe for concurrent use.
type Tower struct {
	table   *orbital.Table
	target  orbital.Counts
	slots   map[orbital.Subshell][][]Spin
	sandbox bool
	moves   int
}

// New returns an empty tower aimed at target. In sandbox mode the Aufbau and
// Ionization rules are not enforced.
func New(table *orbital.Table, target orbital.Counts, sandbox bool) *Tower {
	t := &Tower{table: table, sandbox: sandbox}
	t.Reset()
	t.Retarget(target)
	return t
}

// Reset removes every placed electron.
func (t *Tower) Reset() {
	t.slots = make(map[orbital.Subshell][][]Spin)
	for _, s := range t.table.Order() {
		t.slots[s] = make([][]Spin, s.Orbitals())
	}
	t.moves = 0
}

// Retarget swaps the target configuration, keeping what is already placed.
func (t *Tower) Retarget(target orbital.Counts) {
	t.target = target.Clone()
}

func (t *Tower) SetSandbox(on bool) { t.sandbox = on }

func (t *Tower) Sandbox() bool { return t.sandbox }

func (t *Tower) Moves() int { return t.moves }

// Target is the electron count the current target wants in s. Subshells
// missing from the target fall back to full capacity.
func (t *Tower) Target(s orbital.Subshell) int {
	if n, ok := t.target[s]; ok {
		return n
	}
	return s.Capacity()
}

// Placed counts the electrons in s.
func (t *Tower) Placed(s orbital.Subshell) int {
	total := 0
	for _, o := range t.slots[s] {
		total += len(o)
	}
	return total
}

// Vacancy is how many more electrons s may take before reaching its target.
func (t *Tower) Vacancy(s orbital.Subshell) int {
	return max(0, t.Target(s)-t.Placed(s))
}

func (t *Tower) HasVacancy(s orbital.Subshell) bool {
	return t.Vacancy(s) > 0
}

// Counts returns the placed electrons per subshell.
func (t *Tower) Counts() orbital.Counts {
	out := make(orbital.Counts, len(t.slots))
	for s := range t.slots {
		out[s] = t.Placed(s)
	}
	return out
}

// Orbital returns the spins in one orbital.
func (t *Tower) Orbital(s orbital.Subshell, i int) []Spin {
	orbs := t.slots[s]
	if i < 0 || i >= len(orbs) {
		return nil
	}
	return append([]Spin(nil), orbs[i]...)
}

// Legal checks p without placing it.
func (t *Tower) Legal(p Placement) Verdict {
	orbs, ok := t.slots[p.Subshell]
	if !ok {
		return deny(RuleRange, "%s is not part of this tower", p.Subshell)
	}
	if p.Orbital < 0 || p.Orbital >= len(orbs) {
		return deny(RuleRange, "%s has orbitals 0 to %d", p.Subshell, len(orbs)-1)
	}
	if p.Spin != Up && p.Spin != Down {
		return deny(RuleRange, "spin must be up or down")
	}

	here := orbs[p.Orbital]
	switch len(here) {
	case 2:
		return deny(RulePauli, "This orbital already holds two electrons.")
	case 1:
		if here[0] == p.Spin {
			return deny(RulePauli, "Electrons sharing an orbital must have opposite spins.")
		}
		for i, o := range orbs {
			if i != p.Orbital && len(o) == 0 {
				return deny(RuleHund, "Put one electron in each %s orbital before pairing.", p.Subshell)
			}
		}
	case 0:
		for _, o := range orbs {
			if len(o) == 1 && o[0] != p.Spin {
				return deny(RuleHund, "Unpaired electrons in %s should share the same spin.", p.Subshell)
			}
		}
	}

	if t.sandbox {
		return allow()
	}
	for _, s := range t.table.Order() {
		if s == p.Subshell {
			break
		}
		if t.Placed(s) < t.Target(s) {
			return deny(RuleAufbau, "Fill %s before moving on to %s.", s, p.Subshell)
		}
	}
	if t.Placed(p.Subshell) >= t.Target(p.Subshell) {
		return deny(RuleIonization, "Target occupancy reached here for current ion; choose the next subshell.")
	}
	return allow()
}

// Place applies p when it is legal and returns the verdict either way.
func (t *Tower) Place(p Placement) Verdict {
	v := t.Legal(p)
	if !v.OK {
		return v
	}
	t.slots[p.Subshell][p.Orbital] = append(t.slots[p.Subshell][p.Orbital], p.Spin)
	t.moves++
	return v
}

// Remove takes the most recently placed electron out of one orbital.
func (t *Tower) Remove(s orbital.Subshell, i int) error {
	orbs, ok := t.slots[s]
	if !ok || i < 0 || i >= len(orbs) {
		return errors.Newf("no orbital %s[%d]", s, i)
	}
	if len(orbs[i]) == 0 {
		return errors.Newf("orbital %s[%d] is empty", s, i)
	}
	orbs[i] = orbs[i][:len(orbs[i])-1]
	t.moves++
	return nil
}

// Complete reports whether every subshell holds exactly its target.
func (t *Tower) Complete() bool {
	return len(t.Mismatches()) == 0
}

// Mismatch is a subshell whose placed count differs from the target.
type Mismatch struct {
	Subshell orbital.Subshell `json:"subshell" yaml:"subshell"`
	Placed   int              `json:"placed" yaml:"placed"`
	Target   int              `json:"target" yaml:"target"`
}

// Mismatches lists subshells off target, in fill order.
func (t *Tower) Mismatches() []Mismatch {
	var out []Mismatch
	for _, s := range t.table.Order() {
		placed, want := t.Placed(s), t.Target(s)
		if placed != want {
			out = append(out, Mismatch{Subshell: s, Placed: placed, Target: want})
		}
	}
	return out
}
