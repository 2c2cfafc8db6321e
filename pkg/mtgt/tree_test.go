package mtgt_test

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemporalInept/lituus/pkg/mtgt"
)

func buildSample(t *testing.T) *mtgt.Tree {
	t.Helper()

	// card
	// ├─line
	// │ └─action (verb=add)
	// └─line
	tree := mtgt.NewTree("card")
	tree.Root().SetAttr("name", "Dark Ritual")

	line1 := tree.NewNode("line")
	require.NoError(t, tree.Root().Append(line1))

	action := tree.NewNode("action")
	action.SetAttr("verb", "add")
	require.NoError(t, line1.Append(action))

	line2 := tree.NewNode("line")
	require.NoError(t, tree.Root().Append(line2))

	return tree
}

func TestTree_WalkPreOrder(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)

	var labels []string
	for n := range tree.Walk() {
		labels = append(labels, n.Label())
	}

	assert.Equal(t, []string{"card", "line", "action", "line"}, labels)
	assert.Equal(t, 4, tree.Size())
}

func TestTree_WalkRestartable(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)

	first := 0
	for range tree.Walk() {
		first++
	}

	second := 0
	for range tree.Walk() {
		second++
	}

	assert.Equal(t, first, second)
}

func TestTree_WalkEarlyStop(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)

	seen := 0

	for range tree.Walk() {
		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
}

func TestNode_AppendOwnership(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)
	other := mtgt.NewTree("card")

	t.Run("reattach", func(t *testing.T) {
		t.Parallel()

		// The action node already hangs under line1.
		action := tree.Find("action")[0]
		err := tree.Root().Append(action)
		require.ErrorIs(t, err, mtgt.ErrHasParent)
	})

	t.Run("cross tree", func(t *testing.T) {
		t.Parallel()

		stray := other.NewNode("line")
		err := tree.Root().Append(stray)
		require.ErrorIs(t, err, mtgt.ErrForeignNode)
	})

	t.Run("root as child", func(t *testing.T) {
		t.Parallel()

		line := tree.Find("line")[0]
		err := line.Append(tree.Root())
		require.ErrorIs(t, err, mtgt.ErrRootChild)
	})

	t.Run("nil child", func(t *testing.T) {
		t.Parallel()

		err := tree.Root().Append(nil)
		require.ErrorIs(t, err, mtgt.ErrNilChild)
	})

	t.Run("self", func(t *testing.T) {
		t.Parallel()

		n := tree.NewNode("line")
		err := n.Append(n)
		require.ErrorIs(t, err, mtgt.ErrCycle)
	})

	t.Run("detached ancestor", func(t *testing.T) {
		t.Parallel()

		// a and b are both detached, so b's parent check alone would
		// let the second append close a loop.
		a := tree.NewNode("line")
		b := tree.NewNode("action")
		require.NoError(t, a.Append(b))

		err := b.Append(a)
		require.ErrorIs(t, err, mtgt.ErrCycle)

		// The subtree stayed a tree.
		count := 0
		for range a.WalkFrom() {
			count++
		}

		assert.Equal(t, 2, count)
	})
}

func TestTree_NoRevisits(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)

	seen := make(map[*mtgt.Node]bool)
	for n := range tree.Walk() {
		require.False(t, seen[n], "node %q visited twice", n.Label())

		seen[n] = true
	}

	assert.Len(t, seen, tree.Size())
}

func TestTree_Equal(t *testing.T) {
	t.Parallel()

	a := buildSample(t)
	b := buildSample(t)

	assert.True(t, mtgt.Equal(a, b))

	b.Find("action")[0].SetAttr("verb", "sacrifice")
	assert.False(t, mtgt.Equal(a, b))
}

func TestTree_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := buildSample(t)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored mtgt.Tree

	err = json.Unmarshal(data, &restored)
	require.NoError(t, err)

	assert.True(t, mtgt.Equal(original, &restored))
	assert.Equal(t, original.Size(), restored.Size())
}

func TestTree_GobRoundTrip(t *testing.T) {
	t.Parallel()

	original := buildSample(t)

	var buf bytes.Buffer

	err := gob.NewEncoder(&buf).Encode(original)
	require.NoError(t, err)

	var restored mtgt.Tree

	err = gob.NewDecoder(&buf).Decode(&restored)
	require.NoError(t, err)

	assert.True(t, mtgt.Equal(original, &restored))
	assert.Equal(t, original.Size(), restored.Size())
}

func TestTree_Render(t *testing.T) {
	t.Parallel()

	tree := buildSample(t)
	out := tree.Render(true)

	assert.Contains(t, out, "card (name=Dark Ritual)")
	assert.Contains(t, out, "├─line")
	assert.Contains(t, out, "└─line")
	assert.Contains(t, out, "action (verb=add)")
}
