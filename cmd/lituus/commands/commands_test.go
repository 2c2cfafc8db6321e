package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemporalInept/lituus/pkg/mtgt"
	"github.com/TemporalInept/lituus/pkg/persist"
)

// execute runs a command with the given args and returns its output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buf.String(), err
}

func TestTagCommand(t *testing.T) {
	out, err := execute(t, NewTagCommand(), "Add {B}{B}{B}.")
	require.NoError(t, err)

	assert.Contains(t, out, "action")
	assert.Contains(t, out, "mana")
	assert.Contains(t, out, "add")
}

func TestLexCommand(t *testing.T) {
	out, err := execute(t, NewLexCommand(), "Flying, first strike")
	require.NoError(t, err)

	assert.Contains(t, out, "keyword")
	assert.Contains(t, out, "first strike")
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, NewParseCommand(), "When this creature dies, draw a card.")
	require.NoError(t, err)

	assert.Contains(t, out, "trigger")
	assert.Contains(t, out, "condition")
	assert.Contains(t, out, "effect")
}

func TestParseCommand_WithCardName(t *testing.T) {
	out, err := execute(t, NewTagCommand(), "--card", "Krenko, Mob Boss", "Krenko, Mob Boss deals 1 damage.")
	require.NoError(t, err)

	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "self")
}

func writeGraphConfig(t *testing.T, outDir string) string {
	t.Helper()

	content := "pipeline:\n  workers: 2\noutput:\n  directory: " + outDir + "\n"
	path := filepath.Join(t.TempDir(), "lituus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func writeCorpus(t *testing.T, corpus string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0o600))

	return path
}

func TestGraphCommand(t *testing.T) {
	outDir := t.TempDir()
	corpus := writeCorpus(t, `[
		{"name": "Dark Ritual", "lines": ["Add {B}{B}{B}."]},
		{"name": "Serra Angel", "lines": ["Flying, vigilance"]},
		{"name": "No Text"}
	]`)

	out, err := execute(t, NewGraphCommand(), "--config", writeGraphConfig(t, outDir), corpus)
	require.NoError(t, err)

	assert.Contains(t, out, "Cards")
	assert.Contains(t, out, "Coverage")
	assert.Contains(t, out, "skipped")

	// Trees and stats land in the output directory.
	p := persist.NewPersister[mtgt.Tree](outDir, persist.NewJSONCodec())

	tree, err := p.Load("Dark Ritual")
	require.NoError(t, err)

	name, ok := tree.Root().Attr("name")
	require.True(t, ok)
	assert.Equal(t, "Dark Ritual", name)

	sp := persist.NewPersister[RunStats](outDir, persist.NewJSONCodec())

	stats, err := sp.Load(statsBasename)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Cards)
	assert.Positive(t, stats.ByKind["keyword"])
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()

	sp := persist.NewPersister[RunStats](dir, persist.NewJSONCodec())
	require.NoError(t, sp.Save(statsBasename, &RunStats{
		CatalogVersion: "mtgl-2020.05",
		RulesVersion:   "mtgl-rules-2020.05",
		Cards:          2,
		Clauses:        5,
		ByKind:         map[string]int{"action": 3, "keyword": 2},
	}))

	output := filepath.Join(dir, "coverage.html")

	out, err := execute(t, NewReportCommand(), "--dir", dir, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "report written")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Grammar coverage")
}

func TestReportCommand_NoStats(t *testing.T) {
	_, err := execute(t, NewReportCommand(), "--dir", t.TempDir())
	require.Error(t, err)
}

func saveTree(t *testing.T, dir, name string, build func(*mtgt.Tree)) string {
	t.Helper()

	tree := mtgt.NewTree("card")
	build(tree)

	p := persist.NewPersister[mtgt.Tree](dir, persist.NewJSONCodec())
	require.NoError(t, p.Save(name, tree))

	return p.Path(name)
}

func TestDiffCommand_Identical(t *testing.T) {
	dir := t.TempDir()

	build := func(tree *mtgt.Tree) {
		tree.Root().SetAttr("catalog_version", "mtgl-2020.05")
		tree.Root().SetAttr("rules_version", "mtgl-rules-2020.05")
	}

	pathA := saveTree(t, dir, "a", build)
	pathB := saveTree(t, dir, "b", build)

	out, err := execute(t, NewDiffCommand(), pathA, pathB)
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestDiffCommand_Different(t *testing.T) {
	dir := t.TempDir()

	pathA := saveTree(t, dir, "a", func(tree *mtgt.Tree) {
		tree.Root().SetAttr("catalog_version", "mtgl-2020.05")
		tree.Root().SetAttr("rules_version", "mtgl-rules-2020.05")

		line := tree.NewNode("line")
		require.NoError(t, tree.Root().Append(line))
	})
	pathB := saveTree(t, dir, "b", func(tree *mtgt.Tree) {
		tree.Root().SetAttr("catalog_version", "mtgl-2020.05")
		tree.Root().SetAttr("rules_version", "mtgl-rules-2020.05")
	})

	out, err := execute(t, NewDiffCommand(), pathA, pathB)
	require.NoError(t, err)
	assert.Contains(t, out, "line")
}

func TestDiffCommand_VersionMismatch(t *testing.T) {
	dir := t.TempDir()

	pathA := saveTree(t, dir, "a", func(tree *mtgt.Tree) {
		tree.Root().SetAttr("catalog_version", "mtgl-2020.05")
		tree.Root().SetAttr("rules_version", "mtgl-rules-2020.05")
	})
	pathB := saveTree(t, dir, "b", func(tree *mtgt.Tree) {
		tree.Root().SetAttr("catalog_version", "mtgl-2020.05+c20")
		tree.Root().SetAttr("rules_version", "mtgl-rules-2020.05")
	})

	_, err := execute(t, NewDiffCommand(), pathA, pathB)
	require.ErrorIs(t, err, ErrVersionMismatch)
}
