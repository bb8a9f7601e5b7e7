package orbital

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Subshell identifies an (n, l) orbital group such as 3d.
type Subshell struct {
	N      int
	Letter byte
}

var azimuthal = map[byte]int{'s': 0, 'p': 1, 'd': 2, 'f': 3}

var orbitalCount = map[byte]int{'s': 1, 'p': 3, 'd': 5, 'f': 7}

// ParseSubshell parses identifiers like "1s" or "4f". An unknown letter is
// accepted and treated as a single-orbital subshell.
func ParseSubshell(raw string) (Subshell, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if len(raw) < 2 {
		return Subshell{}, errors.Wrapf(ErrInvalidSubshell, "%q", raw)
	}
	digits := raw[:len(raw)-1]
	letter := raw[len(raw)-1]
	if letter < 'a' || letter > 'z' {
		return Subshell{}, errors.Wrapf(ErrInvalidSubshell, "%q: missing azimuthal letter", raw)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || digits[0] == '+' {
		return Subshell{}, errors.Wrapf(ErrInvalidSubshell, "%q: principal number must be a positive integer", raw)
	}
	return Subshell{N: n, Letter: letter}, nil
}

// MustParseSubshell is ParseSubshell for literals known to be valid.
func MustParseSubshell(raw string) Subshell {
	s, err := ParseSubshell(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Subshell) String() string {
	return strconv.Itoa(s.N) + string(s.Letter)
}

// L is the azimuthal quantum number (s=0, p=1, d=2, f=3). Unknown letters map to 0.
func (s Subshell) L() int {
	return azimuthal[s.Letter]
}

// Orbitals is the number of orbitals in the subshell. Unknown letters count as one.
func (s Subshell) Orbitals() int {
	if n, ok := orbitalCount[s.Letter]; ok {
		return n
	}
	return 1
}

// Capacity is the maximum electron count, two per orbital.
func (s Subshell) Capacity() int {
	return s.Orbitals() * 2
}

// Rank orders subshells for cation removal: higher n first, then higher l.
func (s Subshell) Rank() int {
	return s.N*10 + s.L()
}

func (s Subshell) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Subshell) UnmarshalText(text []byte) error {
	parsed, err := ParseSubshell(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
