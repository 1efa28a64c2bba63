package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/scholar/pkg/scholar"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

const cliDataset = `{"type":"affiliation","id":"A2","name":"Beta","x":3,"y":4}
{"type":"affiliation","id":"A1","name":"Alpha","x":0,"y":0}
{"type":"publication","id":1,"name":"Root","year":2000,"affiliations":["A1"]}
{"type":"publication","id":2,"name":"Child","year":2010,"affiliations":["A1","A2"]}
{"type":"publication","id":3,"name":"Sibling","year":2005,"affiliations":[]}
{"type":"publication","id":4,"name":"Leaf","year":2012,"affiliations":[]}
{"type":"publication","id":5,"name":"Loner","year":1999,"affiliations":[]}
{"type":"reference","id":2,"parent":1}
{"type":"reference","id":3,"parent":1}
{"type":"reference","id":4,"parent":2}
{"type":"affiliation","id":"A1","name":"Duplicate","x":9,"y":9}
`

func writeDatasetFile(t *testing.T, env *testEnv, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(env.dataset), 0o755))
	require.NoError(t, os.WriteFile(env.dataset, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("version")
	assert.Equal(t, "scholar v"+scholar.Version+"\nmodule: "+scholar.ModulePath+"\n", res.Stdout)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, "Scholar initialized")
	assert.DirExists(t, filepath.Dir(env.dataset))

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	var cfg types.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendMemory, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Dataset)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("backend: memory\nlog_level: debug\n"), 0o644))
		env.mustRun("init")
		data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
		require.NoError(t, err)
		assert.Contains(t, string(data), "log_level: debug")
	})
}

func TestInitRecordsDatasetFlag(t *testing.T) {
	env := newTestEnv(t)
	custom := filepath.Join(t.TempDir(), "custom", "set.jsonl")

	env.mustRun("init", "--dataset", custom)

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dataset: "+custom)
	assert.DirExists(t, filepath.Dir(custom))
}

func TestConfigDatasetOverridesEnv(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(t.TempDir(), "other.jsonl")
	require.NoError(t, os.WriteFile(other, []byte(`{"type":"affiliation","id":"Z","name":"Zed","x":1,"y":1}`+"\n"), 0o644))
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("backend: memory\ndataset: "+other+"\n"), 0o644))

	res := env.mustRun("affiliations")
	assert.Equal(t, []string{"Z\t(1, 1)\tZed"}, lines(res.Stdout))
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("backend: sqlite\n"), 0o644))

	res := env.run("affiliations")
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, types.ErrBackendUnknown)
	assert.Equal(t, exitUserError, exitCode(res.Err))
}

func TestMissingDataset(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("affiliations")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "scholar generate")
	assert.Equal(t, exitUserError, exitCode(res.Err))
}

func TestAffiliations(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	tests := []struct {
		order string
		want  []string
	}{
		{order: "insertion", want: []string{"A2\t(3, 4)\tBeta", "A1\t(0, 0)\tAlpha"}},
		{order: "alpha", want: []string{"A1\t(0, 0)\tAlpha", "A2\t(3, 4)\tBeta"}},
		{order: "distance", want: []string{"A1\t(0, 0)\tAlpha", "A2\t(3, 4)\tBeta"}},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			res := env.mustRun("affiliations", "--order", tt.order)
			assert.Equal(t, tt.want, lines(res.Stdout))
		})
	}

	t.Run("unknown order", func(t *testing.T) {
		res := env.run("affiliations", "--order", "random")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "unknown order")
	})

	t.Run("json", func(t *testing.T) {
		res := env.mustRun("affiliations", "--order", "distance", "--json")
		var got []affiliationView
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		assert.Equal(t, []affiliationView{
			{ID: "A1", Name: "Alpha", X: 0, Y: 0},
			{ID: "A2", Name: "Beta", X: 3, Y: 4},
		}, got)
	})
}

func TestRejectedRecordsAreLogged(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset+"garbage\n")

	res := env.mustRun("affiliations")
	assert.Contains(t, res.Stderr, "dataset record rejected")
	assert.Contains(t, res.Stderr, "line=11")
	assert.Contains(t, res.Stderr, "skipped malformed dataset lines")
}

func TestLogLevelFlag(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("affiliations", "--order", "alpha", "--log-level", "debug")
	assert.Contains(t, res.Stderr, "sort cache recomputed")
	assert.Contains(t, res.Stderr, "dataset loaded")

	res = env.run("affiliations", "--log-level", "loud")
	assert.ErrorIs(t, res.Err, types.ErrLogLevelUnknown)
}

func TestFind(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("find", "3", "4")
	assert.Equal(t, []string{"A2\t(3, 4)\tBeta"}, lines(res.Stdout))

	res = env.run("find", "9", "9")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "no affiliation at (9, 9)")

	res = env.run("find", "x", "1")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid x coordinate")
}

func TestPublications(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("publications", "A1", "--after", "2005")
	assert.Equal(t, []string{"2\t2010\tChild"}, lines(res.Stdout))

	res = env.mustRun("publications", "A1")
	assert.Equal(t, []string{"1\t2000\tRoot", "2\t2010\tChild"}, lines(res.Stdout))

	res = env.run("publications", "ghost")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `unknown affiliation "ghost"`)
}

func TestChain(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("chain", "4", "--json")
	var got []publicationView
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, []publicationView{
		{ID: 2, Name: "Child", Year: 2010},
		{ID: 1, Name: "Root", Year: 2000},
	}, got)

	res = env.mustRun("chain", "1", "--json")
	assert.Equal(t, "[]\n", res.Stdout)

	res = env.run("chain", "abc")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `invalid publication id "abc"`)

	res = env.run("chain", "42")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "unknown publication 42")
}

func TestCommon(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("common", "4", "3")
	assert.Equal(t, []string{"1\t2000\tRoot"}, lines(res.Stdout))

	res = env.run("common", "4", "5")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "no common ancestor")
}

func TestReferences(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("references", "1")
	assert.Equal(t, []string{"4\t2012\tLeaf", "2\t2010\tChild", "3\t2005\tSibling"}, lines(res.Stdout))

	res = env.mustRun("references", "1", "--direct")
	assert.Equal(t, []string{"2\t2010\tChild", "3\t2005\tSibling"}, lines(res.Stdout))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)

	res := env.mustRun("stats", "--json")
	var got statsView
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))

	assert.Equal(t, env.dataset, got.Dataset)
	assert.Equal(t, 2, got.Affiliations)
	assert.Equal(t, 5, got.Publications)
	assert.Equal(t, 2, got.Roots)
	assert.Equal(t, 1, got.Rejected)
	assert.Zero(t, got.Skipped)
	assert.Equal(t, map[string]int{
		types.KindAffiliation: 2,
		types.KindPublication: 5,
		types.KindReference:   3,
	}, got.Applied)
	assert.Equal(t, 2.0, got.Metrics[`scholar_records_added_total{kind="affiliation"}`])
	assert.Equal(t, 5.0, got.Metrics[`scholar_records_added_total{kind="publication"}`])

	res = env.mustRun("stats")
	assert.Contains(t, res.Stdout, "publications: 5 (2 roots)")
	assert.Contains(t, res.Stdout, "applied reference:   3")
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("generate", "--seed", "3", "--affiliations", "5", "--publications", "12")
	assert.Contains(t, res.Stdout, "wrote 5 affiliations, 12 publications")
	require.FileExists(t, env.dataset)

	first, err := os.ReadFile(env.dataset)
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		res := env.mustRun("generate", "--seed", "3", "--affiliations", "5", "--publications", "12", "--out", "-")
		assert.Equal(t, string(first), res.Stdout)
	})

	t.Run("loads back", func(t *testing.T) {
		res := env.mustRun("stats", "--json")
		var got statsView
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		assert.Equal(t, 5, got.Affiliations)
		assert.Equal(t, 12, got.Publications)
		assert.Zero(t, got.Rejected)
	})

	t.Run("explicit out", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "nested", "gen.jsonl")
		env.mustRun("generate", "--out", out)
		assert.FileExists(t, out)
	})

	t.Run("invalid config", func(t *testing.T) {
		res := env.run("generate", "--reference-rate", "2")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "reference rate")
	})
}

func TestSnapshotDataset(t *testing.T) {
	env := newTestEnv(t)
	writeDatasetFile(t, env, cliDataset)
	snapshot := filepath.Join(t.TempDir(), "set.db")

	res := env.mustRun("export", snapshot)
	assert.Contains(t, res.Stdout, "wrote 2 affiliations, 5 publications")
	require.FileExists(t, snapshot)

	res = env.mustRun("references", "1", "--dataset", snapshot)
	assert.Equal(t, []string{"4\t2012\tLeaf", "2\t2010\tChild", "3\t2005\tSibling"}, lines(res.Stdout))

	res = env.mustRun("affiliations", "--order", "distance", "--dataset", snapshot)
	assert.Equal(t, []string{"A1\t(0, 0)\tAlpha", "A2\t(3, 4)\tBeta"}, lines(res.Stdout))

	t.Run("round trips to jsonl", func(t *testing.T) {
		jsonl := filepath.Join(t.TempDir(), "back.jsonl")
		env.mustRun("export", jsonl, "--dataset", snapshot)
		back := env.mustRun("export", "-", "--dataset", jsonl)
		direct := env.mustRun("export", "-")
		assert.Equal(t, direct.Stdout, back.Stdout)
	})

	t.Run("generate snapshot", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "gen.sqlite")
		env.mustRun("generate", "--affiliations", "4", "--publications", "9", "--out", out)

		res := env.mustRun("stats", "--json", "--dataset", out)
		var got statsView
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		assert.Equal(t, 4, got.Affiliations)
		assert.Equal(t, 9, got.Publications)
	})
}

func TestIsSnapshot(t *testing.T) {
	assert.True(t, isSnapshot("a/b.db"))
	assert.True(t, isSnapshot("b.SQLITE"))
	assert.True(t, isSnapshot("b.sqlite3"))
	assert.False(t, isSnapshot("b.jsonl"))
	assert.False(t, isSnapshot("db"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("bad input")))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk"))))
}
