package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsBuildDefaultTable(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, orbital.DefaultFillOrder, cfg.Table.FillOrder)
	assert.Len(t, cfg.Table.Exceptions, len(orbital.DefaultExceptions()))
	assert.False(t, cfg.Game.Exceptions)

	tbl, err := cfg.BuildTable()
	require.NoError(t, err)
	assert.Equal(t, orbital.Default().Exceptions(), tbl.Exceptions())
	res := tbl.ComputeTarget(orbital.Target{Z: 29, Exceptions: true})
	assert.Equal(t, 10, res.Counts[orbital.MustParseSubshell("3d")])
}

func TestLoadTOMLOverridesTable(t *testing.T) {
	path := writeFile(t, "etowers.toml", `
[game]
exceptions = true
sandbox = true

[table]
fill_order = ["1s", "2s", "2p", "3s", "3p", "4s", "3d"]

[[table.exceptions]]
z = 24
s = "4s"
d = "3d"
s_final = 1
d_target = 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Game.Exceptions)
	assert.True(t, cfg.Game.Sandbox)
	require.Len(t, cfg.Table.Exceptions, 1)

	tbl, err := cfg.BuildTable()
	require.NoError(t, err)
	assert.Equal(t, 30, tbl.Capacity())
	assert.Equal(t, []int{24}, tbl.Exceptions())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "etowers.yaml", `
log:
  json: true
table:
  fill_order: [1s, 2s, 2p]
  exceptions: []
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, []string{"1s", "2s", "2p"}, cfg.Table.FillOrder)
	assert.Empty(t, cfg.Table.Exceptions)
}

func TestProjectFileIsFoundWalkingUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, projectFile), []byte("[game]\nsandbox = true\n"), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Game.Sandbox)
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ETOWERS_GAME_EXCEPTIONS", "true")
	t.Setenv("ETOWERS_TABLE_FILL_ORDER", "1s 2s 2p")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Game.Exceptions)
	assert.Equal(t, []string{"1s", "2s", "2p"}, cfg.Table.FillOrder)
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestBuildTableReportsBadRows(t *testing.T) {
	cfg := &Config{Table: TableConfig{
		FillOrder:  []string{"1s", "2s"},
		Exceptions: []ExceptionData{{Z: 24, S: "4s", D: "3d", SFinal: 1, DTarget: 5}},
	}}
	_, err := cfg.BuildTable()
	assert.ErrorIs(t, err, orbital.ErrUnknownExceptionTarget)

	cfg.Table.Exceptions = []ExceptionData{{Z: 3, S: "zz", D: "2s"}}
	_, err = cfg.BuildTable()
	assert.ErrorIs(t, err, orbital.ErrInvalidSubshell)

	cfg.Table.FillOrder = []string{"1s", "q2"}
	cfg.Table.Exceptions = nil
	_, err = cfg.BuildTable()
	assert.ErrorIs(t, err, orbital.ErrInvalidSubshell)
}
