package element

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound  = errors.New("no element matches")
	ErrAmbiguous = errors.New("element query is ambiguous")
)

// Match is one scored candidate for a lookup query.
type Match struct {
	Element Element
	Alias   string
	Score   float64
	Source  string
}

type phrase struct {
	z     int
	alias string
	name  bool
}

// Registry resolves free-form element queries: atomic numbers, symbols,
// names, common spelling variants and near-miss typos.
type Registry struct {
	phrases []phrase
}

var spellingVariants = map[int][]string{
	13: {"aluminum"},
	16: {"sulphur"},
	55: {"cesium"},
}

// NewRegistry indexes the full catalog.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, e := range catalog {
		r.phrases = append(r.phrases,
			phrase{z: e.Z, alias: normalise(e.Symbol)},
			phrase{z: e.Z, alias: normalise(e.Name), name: true},
		)
		for _, v := range spellingVariants[e.Z] {
			r.phrases = append(r.phrases, phrase{z: e.Z, alias: normalise(v), name: true})
		}
	}
	return r
}

var defaultRegistry = NewRegistry()

// Lookup resolves query against the default registry.
func Lookup(query string) (Element, error) {
	return defaultRegistry.Lookup(query)
}

// Lookup returns the best match for query. Near ties between different
// elements are reported as ErrAmbiguous with the candidates as a hint.
func (r *Registry) Lookup(query string) (Element, error) {
	q := normalise(query)
	if q == "" {
		return Element{}, errors.WithHint(ErrNotFound, "enter a symbol, name or atomic number")
	}
	if z, err := strconv.Atoi(q); err == nil {
		if e, ok := ByNumber(z); ok {
			return e, nil
		}
		return Element{}, errors.WithHintf(errors.Wrapf(ErrNotFound, "atomic number %d", z), "atomic numbers run from 1 to %d", len(catalog))
	}

	cands := r.Match(q)
	if len(cands) == 0 || cands[0].Score < 0.5 {
		return Element{}, errors.WithHint(errors.Wrapf(ErrNotFound, "%q", query), "try a symbol like Fe or a name like iron")
	}
	best := cands[0]
	if len(cands) > 1 && cands[1].Score > 0.65 && best.Score-cands[1].Score < 0.05 {
		names := make([]string, 0, 2)
		for _, c := range cands[:2] {
			names = append(names, c.Element.Name)
		}
		return Element{}, errors.WithHintf(errors.Wrapf(ErrAmbiguous, "%q", query), "did you mean %s?", strings.Join(names, " or "))
	}
	return best.Element, nil
}

// Match scores every indexed phrase against the normalised query and returns
// the best candidate per element, highest score first.
func (r *Registry) Match(q string) []Match {
	q = normalise(q)
	if q == "" {
		return nil
	}
	var cands []Match
	for _, p := range r.phrases {
		e := catalog[p.z-1]
		switch {
		case q == p.alias:
			score := 1.0
			source := "exact"
			if p.name && p.alias != normalise(e.Name) {
				score = 0.97
				source = "alias"
			}
			cands = append(cands, Match{Element: e, Alias: p.alias, Score: score, Source: source})
		case p.name && len(q) >= 3 && strings.HasPrefix(p.alias, q):
			cands = append(cands, Match{Element: e, Alias: p.alias, Score: 0.9 - 0.01*float64(len(p.alias)-len(q)), Source: "prefix"})
		case p.name && len(q) >= 3:
			dist := levenshtein.ComputeDistance(q, p.alias)
			if dist > levenshteinLimit(len(p.alias)) {
				continue
			}
			cands = append(cands, Match{Element: e, Alias: p.alias, Score: 0.72 - 0.08*float64(dist), Source: "lev"})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Element.Z < cands[j].Element.Z
		}
		return cands[i].Score > cands[j].Score
	})

	out := make([]Match, 0, 4)
	seen := map[int]bool{}
	for _, c := range cands {
		if seen[c.Element.Z] {
			continue
		}
		seen[c.Element.Z] = true
		out = append(out, c)
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
