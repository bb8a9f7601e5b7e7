package orbital

// DefaultFillOrder is the Madelung filling sequence used by the game. It holds
// 118 electrons.
var DefaultFillOrder = []string{
	"1s", "2s", "2p", "3s", "3p", "4s", "3d", "4p", "5s", "4d",
	"5p", "6s", "4f", "5d", "6p", "7s", "5f", "6d", "7p",
}

// DefaultExceptions covers the well-known ground-state anomalies that can be
// written as a single transfer between two subshells.
func DefaultExceptions() map[int]ExceptionRule {
	rule := func(s, d string, sFinal, dTarget int) ExceptionRule {
		return ExceptionRule{S: MustParseSubshell(s), D: MustParseSubshell(d), SFinal: sFinal, DTarget: dTarget}
	}
	return map[int]ExceptionRule{
		24: rule("4s", "3d", 1, 5),  // Cr
		29: rule("4s", "3d", 1, 10), // Cu
		41: rule("5s", "4d", 1, 4),  // Nb
		42: rule("5s", "4d", 1, 5),  // Mo
		44: rule("5s", "4d", 1, 7),  // Ru
		45: rule("5s", "4d", 1, 8),  // Rh
		46: rule("5s", "4d", 0, 10), // Pd
		47: rule("5s", "4d", 1, 10), // Ag
		57: rule("4f", "5d", 0, 1),  // La
		58: rule("4f", "5d", 1, 1),  // Ce
		64: rule("4f", "5d", 7, 1),  // Gd
		78: rule("6s", "5d", 1, 9),  // Pt
		79: rule("6s", "5d", 1, 10), // Au
		89: rule("5f", "6d", 0, 1),  // Ac
		90: rule("5f", "6d", 0, 2),  // Th
		91: rule("5f", "6d", 2, 1),  // Pa
		92: rule("5f", "6d", 3, 1),  // U
		93: rule("5f", "6d", 4, 1),  // Np
		96: rule("5f", "6d", 7, 1),  // Cm
	}
}

// Default builds the table from DefaultFillOrder and DefaultExceptions.
func Default() *Table {
	t, err := NewTable(DefaultFillOrder, DefaultExceptions())
	if err != nil {
		panic(err)
	}
	return t
}
