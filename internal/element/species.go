package element

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Species is an element with an ion charge: positive for cations, negative
// for anions.
type Species struct {
	Element Element `json:"element" yaml:"element"`
	Charge  int     `json:"charge" yaml:"charge"`
}

// Electrons is the electron count of the species before any clamping.
func (s Species) Electrons() int {
	return s.Element.Z - s.Charge
}

func (s Species) String() string {
	switch {
	case s.Charge == 0:
		return s.Element.Symbol
	case s.Charge == 1:
		return s.Element.Symbol + "+"
	case s.Charge == -1:
		return s.Element.Symbol + "-"
	case s.Charge > 0:
		return s.Element.Symbol + strconv.Itoa(s.Charge) + "+"
	default:
		return s.Element.Symbol + strconv.Itoa(-s.Charge) + "-"
	}
}

var (
	// 26+, 26+2, 8-
	numericChargeRE = regexp.MustCompile(`^(\d+)\s*\^?\s*([+-])(\d*)$`)
	// Fe2+, Fe^2+, O2-, Cl-, Na+
	suffixChargeRE = regexp.MustCompile(`^(.*?[a-z])\s*\^?\s*(\d*)([+-])$`)
	// Fe+2, O-2
	signFirstRE = regexp.MustCompile(`^(.*?[a-z])\s*\^?\s*([+-])(\d+)$`)
	// iron(ii), Fe(III)
	romanRE = regexp.MustCompile(`^(.*?)\s*\(\s*([ivx]+)\s*\)$`)
)

var romanValues = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6, "vii": 7, "viii": 8,
}

// ParseSpecies reads forms such as "Fe2+", "Fe+2", "Cl-", "O2-", "iron(III)",
// "sodium", "26" or "26+".
func ParseSpecies(raw string) (Species, error) {
	return defaultRegistry.ParseSpecies(raw)
}

func (r *Registry) ParseSpecies(raw string) (Species, error) {
	in := strings.TrimSpace(strings.ToLower(raw))
	if in == "" {
		return Species{}, errors.WithHint(ErrNotFound, "enter a species like Fe2+ or Cl-")
	}

	query, charge := in, 0
	var err error
	switch {
	case numericChargeRE.MatchString(in):
		m := numericChargeRE.FindStringSubmatch(in)
		query = m[1]
		charge, err = signed(m[3], m[2])
	case romanRE.MatchString(in):
		m := romanRE.FindStringSubmatch(in)
		v, ok := romanValues[m[2]]
		if !ok {
			return Species{}, errors.Newf("unsupported oxidation state %q", m[2])
		}
		query, charge = m[1], v
	case suffixChargeRE.MatchString(in):
		m := suffixChargeRE.FindStringSubmatch(in)
		query = m[1]
		charge, err = signed(m[2], m[3])
	case signFirstRE.MatchString(in):
		m := signFirstRE.FindStringSubmatch(in)
		query = m[1]
		charge, err = signed(m[3], m[2])
	}
	if err != nil {
		return Species{}, errors.WithHint(err, "charges are small integers, e.g. Fe2+ or O2-")
	}
	if strings.ContainsAny(query, "+-") {
		return Species{}, errors.WithHint(errors.Newf("cannot read a charge from %q", raw), "write the charge last, e.g. Fe2+ or 26+")
	}

	e, err := r.Lookup(query)
	if err != nil {
		return Species{}, err
	}
	if charge > e.Z {
		return Species{}, errors.WithHintf(errors.Newf("%s has only %d electrons to lose", e.Symbol, e.Z), "use a charge of at most +%d", e.Z)
	}
	return Species{Element: e, Charge: charge}, nil
}

func signed(digits, sign string) (int, error) {
	n := 1
	if digits != "" {
		var err error
		n, err = strconv.Atoi(digits)
		if err != nil {
			return 0, errors.Wrapf(err, "charge %s%s", digits, sign)
		}
	}
	if sign == "-" {
		return -n, nil
	}
	return n, nil
}
