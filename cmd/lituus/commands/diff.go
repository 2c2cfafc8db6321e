package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/TemporalInept/lituus/pkg/mtgl/grapher"
	"github.com/TemporalInept/lituus/pkg/mtgt"
	"github.com/TemporalInept/lituus/pkg/persist"
)

// ErrVersionMismatch reports two trees built under different grammar
// versions. Structural equality between them is meaningless, so the diff
// command never declares such trees equal.
var ErrVersionMismatch = errors.New("trees built under different grammar versions")

// NewDiffCommand creates the diff subcommand: compare two serialized trees.
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <tree-a.json> <tree-b.json>",
		Short: "Compare two serialized parse trees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runDiff(cmd *cobra.Command, pathA, pathB string) error {
	treeA, err := loadTree(pathA)
	if err != nil {
		return err
	}

	treeB, err := loadTree(pathB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	verA := versionStamp(treeA)
	verB := versionStamp(treeB)

	// Trees from different grammar versions are never comparable as equal;
	// show the textual differences but report the mismatch as the outcome.
	if verA != verB {
		printDiffs(cmd, diffTrees(treeA, treeB))

		return fmt.Errorf("%w: %s vs %s", ErrVersionMismatch, verA, verB)
	}

	if mtgt.Equal(treeA, treeB) {
		fmt.Fprintln(out, "trees are identical")

		return nil
	}

	printDiffs(cmd, diffTrees(treeA, treeB))

	return nil
}

func diffTrees(a, b *mtgt.Tree) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()

	return dmp.DiffMain(a.Render(true), b.Render(true), false)
}

func loadTree(path string) (*mtgt.Tree, error) {
	var codec persist.Codec = persist.NewJSONCodec()
	if strings.HasSuffix(path, ".lz4") {
		codec = persist.NewLZ4Codec(persist.NewJSONCodec())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree: %w", err)
	}
	defer file.Close()

	var tree mtgt.Tree

	err = codec.Decode(file, &tree)
	if err != nil {
		return nil, fmt.Errorf("decode tree %s: %w", path, err)
	}

	return &tree, nil
}

// versionStamp joins the grammar version attributes a graph run leaves on
// the root.
func versionStamp(tree *mtgt.Tree) string {
	catVer, _ := tree.Root().Attr(grapher.AttrCatalogVersion)
	rulesVer, _ := tree.Root().Attr(grapher.AttrRulesVersion)

	return catVer + "/" + rulesVer
}

func printDiffs(cmd *cobra.Command, diffs []diffmatchpatch.Diff) {
	out := cmd.OutOrStdout()
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added.Fprintf(out, "+%s", diff.Text)
		case diffmatchpatch.DiffDelete:
			removed.Fprintf(out, "-%s", diff.Text)
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(out, diff.Text)
		}
	}

	fmt.Fprintln(out)
}
