// Package ui renders configurations and towers for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/orbital"
	"github.com/appengine-ltd/electron-towers/internal/tower"
)

// Configuration renders a computed target as a header, its notation and one
// orbital-box row per occupied subshell.
func Configuration(tbl *orbital.Table, sp element.Species, res orbital.Result) string {
	var b strings.Builder
	b.WriteString(header(sp, res.Counts.Total()))
	b.WriteString("\n")

	notation := tbl.Notation(res.Counts)
	if notation == "" {
		notation = "(no electrons)"
	}
	b.WriteString(labelStyle.Render("config ") + valueStyle.Render(notation) + "\n")

	if res.Exception != nil {
		b.WriteString(labelStyle.Render("exception ") + warnStyle.Render(fmt.Sprintf("%s → %s (s_final %d, d_target %d)",
			res.Exception.S, res.Exception.D, res.Exception.SFinal, res.Exception.DTarget)) + "\n")
	}
	if res.Requested > 0 {
		b.WriteString(labelStyle.Render("removed ") + valueStyle.Render(fmt.Sprintf("%d of %d", res.Removed, res.Requested)) + "\n")
	}

	tw := tower.New(tbl, res.Counts, true)
	if err := tw.Load(res.Counts); err == nil {
		b.WriteString(panelStyle.Render(strings.TrimRight(Boxes(tbl, tw), "\n")))
		b.WriteString("\n")
	}

	for _, d := range res.Diagnostics {
		b.WriteString(dangerStyle.Render("! "+d.Error()) + "\n")
	}
	return b.String()
}

// Boxes draws one row per subshell that has electrons or still expects some,
// top row highest in the fill order.
func Boxes(tbl *orbital.Table, tw *tower.Tower) string {
	order := tbl.Order()
	rows := make([]string, 0, len(order))
	for _, s := range order {
		placed, want := tw.Placed(s), tw.Target(s)
		if placed == 0 && want == 0 {
			continue
		}
		var cells strings.Builder
		for i := 0; i < s.Orbitals(); i++ {
			cells.WriteString(cell(tw.Orbital(s, i)))
		}
		count := mutedStyle.Render(fmt.Sprintf(" %d/%d", placed, want))
		if placed != want {
			count = warnStyle.Render(fmt.Sprintf(" %d/%d", placed, want))
		}
		rows = append(rows, subshellName.Render(s.String())+cells.String()+count)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return strings.Join(rows, "\n") + "\n"
}

func cell(spins []tower.Spin) string {
	glyph := func(s tower.Spin) string {
		if s == tower.Up {
			return "↑"
		}
		return "↓"
	}
	switch len(spins) {
	case 0:
		return mutedStyle.Render("[  ]")
	case 1:
		return filledStyle.Render("[" + glyph(spins[0]) + " ]")
	default:
		return filledStyle.Render("[" + glyph(spins[0]) + glyph(spins[1]) + "]")
	}
}

// Hint renders the next suggested placement.
func Hint(sp element.Species, p tower.Placement, ok bool) string {
	if !ok {
		return okStyle.Render(sp.String()+" is complete") + "\n"
	}
	return labelStyle.Render("next ") + valueStyle.Render(fmt.Sprintf("%s orbital %d spin %s", p.Subshell, p.Orbital+1, p.Spin)) + "\n"
}

// Check renders a grading summary.
func Check(sp element.Species, mismatches []tower.Mismatch) string {
	if len(mismatches) == 0 {
		return okStyle.Render("✓ "+sp.String()+" matches the target configuration") + "\n"
	}
	var b strings.Builder
	b.WriteString(dangerStyle.Render(fmt.Sprintf("✗ %s: %d subshell(s) off target", sp, len(mismatches))) + "\n")
	for _, m := range mismatches {
		b.WriteString(fmt.Sprintf("  %s %s\n", subshellName.Render(m.Subshell.String()),
			warnStyle.Render(fmt.Sprintf("placed %d, want %d", m.Placed, m.Target))))
	}
	return b.String()
}

// Elements renders catalog rows.
func Elements(items []element.Element) string {
	var b strings.Builder
	for _, e := range items {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			mutedStyle.Render(fmt.Sprintf("%3d", e.Z)),
			titleStyle.Render(fmt.Sprintf("%-2s", e.Symbol)),
			valueStyle.Render(e.Name)))
	}
	return b.String()
}

func header(sp element.Species, electrons int) string {
	return titleStyle.Render(sp.String()) + "  " +
		valueStyle.Render(sp.Element.Name) + "  " +
		mutedStyle.Render(fmt.Sprintf("Z=%d  electrons=%d", sp.Element.Z, electrons))
}
