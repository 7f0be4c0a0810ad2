package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/satgraph/errors"
)

const fixture = "../../../sat/testdata/block.sat"

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// testEnv points the database at a temp dir through an explicit config file
type testEnv struct {
	dir    string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "satgraph.toml")
	body := "[database]\npath = \"" + filepath.ToSlash(filepath.Join(dir, "test.db")) + "\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0644))
	return &testEnv{dir: dir, config: cfg}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	activeConfig = nil

	root := NewRootCmd()
	resetFlags(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.config}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "parse", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Entities:      18 (1 skipped, 0 dangling references)")
	assert.Contains(t, out, "ACIS 33.0.1")
	assert.Contains(t, out, "wibble-thing")
	assert.Contains(t, out, "Skipped records:")
	assert.Contains(t, out, "entity 17")
}

func TestParseCommandJSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "parse", fixture, "--json", "--workers", "3")
	require.NoError(t, err)

	var summary struct {
		Entities int            `json:"entities"`
		Counts   map[string]int `json:"counts"`
		Skipped  []struct {
			Index int    `json:"index"`
			Kind  string `json:"kind"`
		} `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 18, summary.Entities)
	assert.Equal(t, 1, summary.Counts["face"])
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, 17, summary.Skipped[0].Index)
}

func TestParseCommandRequireACIS(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "parse", fixture, "--require-acis", ">= 21")
	require.NoError(t, err)

	_, err = env.run(t, "parse", fixture, "--require-acis", ">= 40")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}

func TestParseCommandMissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "parse", filepath.Join(env.dir, "absent.sat"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "show", fixture, "5")
	require.NoError(t, err)
	assert.Contains(t, out, "-5 face")
	assert.Contains(t, out, "plane-surface")
	assert.Contains(t, out, `"sense": "reversed"`)

	out, err = env.run(t, "show", fixture, "5", "--json")
	require.NoError(t, err)
	var view struct {
		Entity     map[string]interface{} `json:"entity"`
		References []referenceView        `json:"references"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "face", view.Entity["entity_type"])
	for _, r := range view.References {
		assert.False(t, r.Dangling, r.Name)
		if r.Name == "surface" {
			assert.Equal(t, "plane-surface", r.TargetType)
		}
	}
}

func TestShowCommandErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "show", fixture, "99")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = env.run(t, "show", fixture, "-5")
	require.Error(t, err)

	_, err = env.run(t, "show", fixture, "five")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestBodiesAndFacesCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "bodies", fixture, "--json")
	require.NoError(t, err)
	var bodies []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &bodies))
	require.Len(t, bodies, 1)
	assert.Equal(t, 2.0, bodies[0]["lump_ref"])

	out, err = env.run(t, "faces", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "plane-surface")
	assert.Contains(t, out, "reversed")
	assert.Contains(t, out, "double")
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t)
	target := filepath.Join(env.dir, "block.yaml")

	_, err := env.run(t, "export", fixture, "--format", "yaml", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "entity_type: body")
	assert.Contains(t, string(data), "dangling_references")

	out, err := env.run(t, "export", fixture)
	require.NoError(t, err)
	var doc struct {
		Entities []json.RawMessage `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Entities, 18)

	_, err = env.run(t, "export", fixture, "--format", "xml")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestDbCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "db", "import", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "18 entities (1 skipped)")

	out, err = env.run(t, "db", "stats", "--json")
	require.NoError(t, err)
	var stats struct {
		Files    int `json:"files"`
		Entities int `json:"entities"`
		FileList []struct {
			ID string `json:"id"`
		} `json:"file_list"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 18, stats.Entities)
	require.Len(t, stats.FileList, 1)

	out, err = env.run(t, "db", "entity", stats.FileList[0].ID, "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"entity_type": "lump"`)
	assert.Contains(t, out, "-0 lump")

	_, err = env.run(t, "db", "entity", stats.FileList[0].ID, "77")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = env.run(t, "db", "entity", "not-a-uuid", "1")
	assert.True(t, errors.IsInvalidRequestError(err))

	out, err = env.run(t, "db", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 1")
	assert.Contains(t, out, fixture)
}

func TestAmCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "am", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[parser]")
	assert.Contains(t, out, "test.db")

	out, err = env.run(t, "am", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "parser:")
	assert.Contains(t, out, "preview_length: 100")

	target := filepath.Join(env.dir, "fresh", "satgraph.toml")
	_, err = env.run(t, "am", "init", target)
	require.NoError(t, err)
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, err = env.run(t, "am", "init", target)
	require.Error(t, err)

	_, err = env.run(t, "am", "init", target, "--force")
	require.NoError(t, err)
	_, err = os.Stat(target + ".back1")
	assert.NoError(t, err)

	out, err = env.run(t, "am", "where")
	require.NoError(t, err)
	assert.Contains(t, out, "/etc/satgraph/satgraph.toml")
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "satgraph "))

	out, err = env.run(t, "version", "--json")
	require.NoError(t, err)
	var info struct {
		GoVersion   string   `json:"go_version"`
		EntityTypes []string `json:"entity_types"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.EntityTypes, "face")
}

func TestInvalidConfigFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("[parser]\nworkers = -1\n"), 0644))

	_, err := env.run(t, "parse", fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser.workers")
}
