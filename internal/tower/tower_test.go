package tower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

var (
	s1 = orbital.MustParseSubshell("1s")
	s2 = orbital.MustParseSubshell("2s")
	p2 = orbital.MustParseSubshell("2p")
	s3 = orbital.MustParseSubshell("3s")
	s4 = orbital.MustParseSubshell("4s")
	d3 = orbital.MustParseSubshell("3d")
)

func newTower(t *testing.T, target orbital.Target, sandbox bool) (*Tower, *orbital.Table) {
	t.Helper()
	tbl := orbital.Default()
	res := tbl.ComputeTarget(target)
	require.NoError(t, res.Err())
	return New(tbl, res.Counts, sandbox), tbl
}

func TestPauliRejectsThirdElectronAndSameSpin(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 2}, false)
	require.True(t, tw.Place(Placement{Subshell: s1, Orbital: 0, Spin: Up}).OK)

	v := tw.Legal(Placement{Subshell: s1, Orbital: 0, Spin: Up})
	assert.False(t, v.OK)
	assert.Equal(t, RulePauli, v.Rule)

	require.True(t, tw.Place(Placement{Subshell: s1, Orbital: 0, Spin: Down}).OK)
	v = tw.Legal(Placement{Subshell: s1, Orbital: 0, Spin: Up})
	assert.Equal(t, RulePauli, v.Rule)
}

func TestHundRejectsEarlyPairing(t *testing.T) {
	tw, tbl := newTower(t, orbital.Target{Z: 8}, false)
	counts, err := tbl.ParseNotation("1s2 2s2")
	require.NoError(t, err)
	require.NoError(t, tw.Load(counts))
	tw.Retarget(tbl.ComputeTarget(orbital.Target{Z: 8}).Counts)

	require.True(t, tw.Place(Placement{Subshell: p2, Orbital: 0, Spin: Up}).OK)
	v := tw.Legal(Placement{Subshell: p2, Orbital: 0, Spin: Down})
	assert.Equal(t, RuleHund, v.Rule)

	v = tw.Legal(Placement{Subshell: p2, Orbital: 1, Spin: Down})
	assert.Equal(t, RuleHund, v.Rule, "unpaired spins should be parallel")
	assert.True(t, tw.Legal(Placement{Subshell: p2, Orbital: 1, Spin: Up}).OK)
}

func TestAufbauRequiresEarlierSubshellsAtTarget(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 3}, false)
	v := tw.Legal(Placement{Subshell: s2, Orbital: 0, Spin: Up})
	assert.False(t, v.OK)
	assert.Equal(t, RuleAufbau, v.Rule)
	assert.Contains(t, v.Msg, "1s")
}

func TestIonizationCapsSubshellAtTarget(t *testing.T) {
	// Na+ wants 3s empty.
	tw, tbl := newTower(t, orbital.Target{Z: 11, Ion: 1}, false)
	counts, err := tbl.ParseNotation("1s2 2s2 2p6")
	require.NoError(t, err)
	require.NoError(t, tw.Load(counts))
	tw.Retarget(tbl.ComputeTarget(orbital.Target{Z: 11, Ion: 1}).Counts)

	assert.Equal(t, 0, tw.Vacancy(s3))
	assert.False(t, tw.HasVacancy(s3))
	v := tw.Legal(Placement{Subshell: s3, Orbital: 0, Spin: Up})
	assert.Equal(t, RuleIonization, v.Rule)
	assert.True(t, tw.Complete())
}

func TestSandboxSkipsAufbauAndIonization(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 1}, true)
	assert.True(t, tw.Place(Placement{Subshell: d3, Orbital: 2, Spin: Up}).OK)
	assert.Equal(t, RulePauli, tw.Legal(Placement{Subshell: d3, Orbital: 2, Spin: Up}).Rule)
	tw.SetSandbox(false)
	assert.Equal(t, RuleAufbau, tw.Legal(Placement{Subshell: d3, Orbital: 3, Spin: Up}).Rule)
}

func TestRangeChecks(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 1}, false)
	assert.Equal(t, RuleRange, tw.Legal(Placement{Subshell: s1, Orbital: 1, Spin: Up}).Rule)
	assert.Equal(t, RuleRange, tw.Legal(Placement{Subshell: orbital.MustParseSubshell("8s"), Spin: Up}).Rule)
	assert.Equal(t, RuleRange, tw.Legal(Placement{Subshell: s1, Spin: 0}).Rule)
}

func TestTargetFallsBackToCapacity(t *testing.T) {
	tbl := orbital.Default()
	tw := New(tbl, orbital.Counts{s1: 1}, false)
	assert.Equal(t, 1, tw.Target(s1))
	assert.Equal(t, 6, tw.Target(p2))
	assert.Equal(t, 6, tw.Vacancy(p2))
}

func TestGhostBuildsIronTwoPlus(t *testing.T) {
	tw, tbl := newTower(t, orbital.Target{Z: 26, Ion: 2}, false)
	for i := 0; i < 100; i++ {
		p, ok := tw.Ghost()
		if !ok {
			break
		}
		v := tw.Place(p)
		require.True(t, v.OK, "ghost suggested illegal %s: %s", p, v.Msg)
	}
	assert.True(t, tw.Complete())
	assert.Equal(t, 24, tw.Moves())
	assert.Equal(t, 0, tw.Placed(s4))
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 3d6", tbl.Notation(tw.Counts()))

	// Hund: five up spins before the sixth pairs in the first orbital.
	assert.Equal(t, []Spin{Up, Down}, tw.Orbital(d3, 0))
	for i := 1; i < 5; i++ {
		assert.Equal(t, []Spin{Up}, tw.Orbital(d3, i))
	}
}

func TestGhostFollowsChromiumException(t *testing.T) {
	tw, tbl := newTower(t, orbital.Target{Z: 24, Exceptions: true}, false)
	for {
		p, ok := tw.Ghost()
		if !ok {
			break
		}
		require.True(t, tw.Place(p).OK)
	}
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 4s1 3d5", tbl.Notation(tw.Counts()))
}

func TestRetargetKeepsPlacements(t *testing.T) {
	tw, tbl := newTower(t, orbital.Target{Z: 11}, false)
	counts, err := tbl.ParseNotation("1s2 2s2 2p6 3s1")
	require.NoError(t, err)
	require.NoError(t, tw.Load(counts))
	require.True(t, tw.Complete())

	tw.Retarget(tbl.ComputeTarget(orbital.Target{Z: 11, Ion: 1}).Counts)
	assert.Equal(t, 1, tw.Placed(s3))
	mm := tw.Mismatches()
	require.Len(t, mm, 1)
	assert.Equal(t, Mismatch{Subshell: s3, Placed: 1, Target: 0}, mm[0])

	require.NoError(t, tw.Remove(s3, 0))
	assert.True(t, tw.Complete())
	assert.Error(t, tw.Remove(s3, 0))
}

func TestLoadRejectsOverfill(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 1}, false)
	assert.Error(t, tw.Load(orbital.Counts{s1: 3}))
	assert.Error(t, tw.Load(orbital.Counts{orbital.MustParseSubshell("9s"): 1}))
}

func TestLoadFailureKeepsTower(t *testing.T) {
	tw, tbl := newTower(t, orbital.Target{Z: 11}, false)
	require.NoError(t, tw.Load(orbital.Counts{s1: 2, s2: 1}))

	err := tw.Load(orbital.Counts{s1: 2, s2: 2, p2: 6, orbital.MustParseSubshell("9s"): 1})
	require.Error(t, err)
	assert.Equal(t, "1s2 2s1", tbl.Notation(tw.Counts()))

	err = tw.Load(orbital.Counts{s1: 2, s2: 2, p2: 7})
	require.Error(t, err)
	assert.Equal(t, "1s2 2s1", tbl.Notation(tw.Counts()))
}

func TestParseSpin(t *testing.T) {
	for in, want := range map[string]Spin{"up": Up, "u": Up, "↑": Up, "down": Down, "↓": Down} {
		got, err := ParseSpin(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSpin("sideways")
	assert.Error(t, err)
}

func TestPlanPairsThenStopsWhenComplete(t *testing.T) {
	tw, _ := newTower(t, orbital.Target{Z: 3}, true)
	require.True(t, tw.Place(Placement{Subshell: s1, Orbital: 0, Spin: Up}).OK)
	p, v, found := tw.Plan()
	require.True(t, found)
	assert.True(t, v.OK)
	assert.Equal(t, Placement{Subshell: s1, Orbital: 0, Spin: Down}, p)

	require.NoError(t, tw.Load(orbital.Counts{s1: 2, s2: 1}))
	_, _, found = tw.Plan()
	assert.False(t, found)
	_, ok := tw.Ghost()
	assert.False(t, ok)
}
