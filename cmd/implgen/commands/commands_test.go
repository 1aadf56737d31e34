package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/implgen/config"
)

const snapshotYAML = `
version: "1.0.0"
types:
  - name: Demo.IRun
    kind: interface
    members:
      - {kind: method, name: Run, params: [{name: times, type: Integer}]}
      - {kind: property, name: Name, type: String, read_only: true}
  - name: Demo.Widget
    kind: class
    abstract: true
  - name: Demo.Gadget
    kind: class
    members:
      - {kind: field, name: runner, type: Demo.IRun, access: private}
requests:
  - target: Demo.Widget
    interfaces: [Demo.IRun]
`

func init() {
	pterm.DisableStyling()
}

// setup writes a snapshot and a default config into a temp dir.
func setup(t *testing.T) (snapshotPath, configPath string) {
	t.Helper()
	dir := t.TempDir()

	snapshotPath = filepath.Join(dir, "symbols.yaml")
	require.NoError(t, os.WriteFile(snapshotPath, []byte(snapshotYAML), 0644))

	configPath, err := config.Init(dir)
	require.NoError(t, err)
	return snapshotPath, configPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	planFlags = requestFlags{}

	root := &cobra.Command{Use: "implgen", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool("json", false, "")
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(PlanCmd, VersionCmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlan_StoredRequestsAsJSON(t *testing.T) {
	snap, cfg := setup(t)

	out, err := execute(t, "plan", "--config", cfg, "-s", snap, "--json")
	require.NoError(t, err)

	var results []struct {
		Target string `json:"target"`
		Plans  []struct {
			Contract   string `json:"contract"`
			Strategies []struct {
				Kind  string `json:"kind"`
				Title string `json:"title"`
			} `json:"strategies"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Demo.Widget", results[0].Target)
	require.Len(t, results[0].Plans, 1)
	assert.Equal(t, "Demo.IRun", results[0].Plans[0].Contract)

	kinds := []string{}
	for _, s := range results[0].Plans[0].Strategies {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"stub", "abstract"}, kinds)
}

func TestPlan_TargetFlagsWithPreview(t *testing.T) {
	snap, cfg := setup(t)

	out, err := execute(t, "plan", "--config", cfg, "-s", snap,
		"-t", "Demo.Gadget", "-i", "Demo.IRun", "--strategy", "delegate", "--json=false")
	require.NoError(t, err)

	assert.Contains(t, out, "Implement interface through 'runner'")
	assert.Contains(t, out, "Public Sub Run(times As Integer) Implements Demo.IRun.Run")
	assert.Contains(t, out, "CType(runner, Demo.IRun).Run(times)")
	assert.Contains(t, out, "Public ReadOnly Property Name As String Implements Demo.IRun.Name")
}

func TestPlan_Errors(t *testing.T) {
	snap, cfg := setup(t)

	_, err := execute(t, "plan", "--config", cfg)
	assert.ErrorContains(t, err, "no snapshot file")

	_, err = execute(t, "plan", "--config", cfg, "-s", snap, "-i", "Demo.IRun")
	assert.ErrorContains(t, err, "--interface requires --target")

	_, err = execute(t, "plan", "--config", cfg, "-s", snap, "-t", "Demo.Widget", "-i", "Demo.IMissing")
	assert.Error(t, err)

	_, err = execute(t, "plan", "--config", cfg, "-s", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersion_JSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)
	assert.Contains(t, out, `"snapshot_schema": "1.0.0"`)
}
