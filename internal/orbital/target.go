package orbital

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Target selects the configuration to compute.
type Target struct {
	Z          int  `json:"z" yaml:"z"`
	Ion        int  `json:"ion" yaml:"ion"`
	Exceptions bool `json:"exceptions" yaml:"exceptions"`
}

// Diagnostic is a non-fatal condition met while computing a target.
type Diagnostic struct {
	Err    error
	Detail string
}

func (d Diagnostic) Error() string {
	if d.Detail == "" {
		return d.Err.Error()
	}
	return d.Err.Error() + ": " + d.Detail
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Result is the computed target configuration. Requested and Removed are only
// non-zero for cations.
type Result struct {
	Target      Target
	Counts      Counts
	Requested   int
	Removed     int
	Exception   *ExceptionRule
	Diagnostics []Diagnostic
}

// Unremoved is how many requested cation electrons could not be taken out.
func (r Result) Unremoved() int {
	return r.Requested - r.Removed
}

// Has reports whether a diagnostic matching target was raised.
func (r Result) Has(target error) bool {
	for _, d := range r.Diagnostics {
		if errors.Is(d, target) {
			return true
		}
	}
	return false
}

// Err combines all diagnostics into one error, or nil.
func (r Result) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = errors.CombineErrors(err, d)
	}
	return err
}

// ComputeTarget returns the electron counts for target. Neutral atoms and
// anions are filled to Z - Ion; exceptions apply only to neutral atoms.
// Cations start from the neutral (exception-adjusted when enabled) fill and
// lose Ion electrons in ionization order.
func (t *Table) ComputeTarget(target Target) Result {
	res := Result{Target: target}
	if target.Z < 1 {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Err:    ErrInvalidZ,
			Detail: fmt.Sprintf("got %d", target.Z),
		})
	}

	total, over := t.electronTotal(target)
	if target.Ion <= 0 {
		useExceptions := target.Ion == 0 && target.Exceptions
		res.Counts = t.NeutralFill(total, useExceptions, target.Z)
		if useExceptions {
			res.Exception = t.rulePtr(target.Z)
		}
	} else {
		res.Counts = t.NeutralFill(total, target.Exceptions, target.Z)
		if target.Exceptions {
			res.Exception = t.rulePtr(target.Z)
		}
		res.Requested = target.Ion
		res.Removed = RemoveForCation(res.Counts, target.Ion)
		if res.Removed < res.Requested {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Err:    ErrUnderRemoval,
				Detail: fmt.Sprintf("requested %d, removed %d, %d unremoved", res.Requested, res.Removed, res.Unremoved()),
			})
		}
	}

	if over {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Err:    ErrCapacityExceeded,
			Detail: fmt.Sprintf("Z %d with ion %d, capacity %d", target.Z, target.Ion, t.Capacity()),
		})
	}
	return res
}

// electronTotal is the count to fill before any cation removal, capped at the
// table capacity. Z - Ion is only evaluated once both operands are known to
// be within capacity so it cannot overflow.
func (t *Table) electronTotal(target Target) (int, bool) {
	capacity := t.Capacity()
	if target.Ion > 0 {
		return min(target.Z, capacity), target.Z > capacity
	}
	if target.Ion < -capacity || target.Z > capacity {
		return capacity, true
	}
	total := target.Z - target.Ion
	return min(total, capacity), total > capacity
}

func (t *Table) rulePtr(z int) *ExceptionRule {
	rule, ok := t.exceptions[z]
	if !ok {
		return nil
	}
	return &rule
}
