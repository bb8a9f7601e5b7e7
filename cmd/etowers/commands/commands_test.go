package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/electron-towers/internal/update"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	root := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc", BuildDate: "today"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTargetText(t *testing.T) {
	out, err := run(t, "target", "Fe2+")
	require.NoError(t, err)
	assert.Contains(t, out, "1s2 2s2 2p6 3s2 3p6 3d6")
}

func TestTargetIonFlagOverridesSpecies(t *testing.T) {
	out, err := run(t, "target", "Na", "--ion", "1", "-o", "json")
	require.NoError(t, err)

	var got targetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Na+", got.Species)
	assert.Equal(t, 10, got.Electrons)
	assert.Equal(t, 1, got.Removed)
	assert.Equal(t, "1s2 2s2 2p6", got.Notation)
	require.NotEmpty(t, got.Subshells)
	assert.Equal(t, "1s", got.Subshells[0].Subshell.String())
}

func TestTargetExceptionsFlag(t *testing.T) {
	out, err := run(t, "target", "Cu", "--exceptions", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 4s1 3d10", got["notation"])
	exception, ok := got["exception"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "4s", exception["s"])
}

func TestTargetUnderRemovalDiagnostics(t *testing.T) {
	out, err := run(t, "target", "He", "--ion", "5", "-o", "json")
	require.NoError(t, err)
	var got targetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Electrons)
	require.Len(t, got.Diagnostics, 1)
	assert.Contains(t, got.Diagnostics[0], "3 unremoved")
}

func TestTargetSpeciesCharges(t *testing.T) {
	out, err := run(t, "target", "26+", "-o", "json")
	require.NoError(t, err)
	var got targetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Fe+", got.Species)
	assert.Equal(t, 25, got.Electrons)

	_, err = run(t, "target", "Cl99999999999999999999-")
	require.Error(t, err)
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestTargetHugeIonFlagReportsCapacity(t *testing.T) {
	out, err := run(t, "target", "Cl", "--ion=-9223372036854775807", "-o", "json")
	require.NoError(t, err)
	var got targetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 118, got.Electrons)
	require.Len(t, got.Diagnostics, 1)
	assert.Contains(t, got.Diagnostics[0], "capacity")
}

func TestTargetRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "target", "Fe", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "json")
}

func TestTargetUsesConfigDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etowers.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\nexceptions = true\n"), 0o600))
	out, err := run(t, "--config", path, "target", "Cr", "-o", "json")
	require.NoError(t, err)
	var got targetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 4s1 3d5", got.Notation)

	out, err = run(t, "--config", path, "target", "Cr", "--exceptions=false", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 4s2 3d4", got.Notation)
}

func TestBadConfigTableFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[table]\nfill_order = [\"1s\", \"x\"]\n"), 0o600))
	_, err := run(t, "--config", path, "target", "H")
	assert.Error(t, err)
}

func TestElements(t *testing.T) {
	out, err := run(t, "elements", "sodum")
	require.NoError(t, err)
	assert.Contains(t, out, "Sodium")

	out, err = run(t, "elements")
	require.NoError(t, err)
	assert.Contains(t, out, "Oganesson")

	_, err = run(t, "elements", "zz")
	assert.Error(t, err)
}

func TestHint(t *testing.T) {
	out, err := run(t, "hint", "N", "--placed", "1s2 2s2 2p1")
	require.NoError(t, err)
	assert.Contains(t, out, "2p orbital 2 spin up")

	out, err = run(t, "hint", "Na+", "--placed", "1s2 2s2 2p6")
	require.NoError(t, err)
	assert.Contains(t, out, "complete")
}

func TestHintRejectsBadNotation(t *testing.T) {
	_, err := run(t, "hint", "N", "--placed", "1s9")
	require.Error(t, err)
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "Cl-", "--placed", "1s2 2s2 2p6 3s2 3p6")
	require.NoError(t, err)
	assert.Contains(t, out, "matches")

	out, err = run(t, "check", "Fe2+", "--placed", "1s2 2s2 2p6 3s2 3p6 4s2 3d4")
	assert.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "placed 2, want 0")
	assert.Contains(t, out, "placed 4, want 6")
}

func TestCheckRequiresPlaced(t *testing.T) {
	_, err := run(t, "check", "Fe")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Electron Towers 1.2.3 (abc) today")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
}

func TestVersionCheck(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v1.4.0","html_url":"https://github.com/appengine-ltd/electron-towers/releases/v1.4.0"}`)
	}))
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	prev := releaseChecker
	t.Cleanup(func() { releaseChecker = prev })
	releaseChecker = func() *update.Checker {
		c := update.NewChecker()
		c.APIBase = srv.URL
		c.Client = srv.Client()
		c.AllowedHosts = map[string]struct{}{u.Hostname(): {}}
		return c
	}

	out, err := run(t, "version", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.2.3 → v1.4.0")

	out, err = run(t, "version", "--check", "--json")
	require.NoError(t, err)
	var st update.Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.Available)
	assert.Equal(t, "1.4.0", st.Latest)
}
