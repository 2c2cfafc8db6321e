package mtgt

import (
	"fmt"
	"sort"
	"strings"
)

// Branch glyphs for the tree renderer.
const (
	symChild     = "├─"
	symLastChild = "└─"
	symPipe      = "│ "
	symBlank     = "  "
)

// Render returns a human-readable indented rendering of the tree. When
// showAttrs is set, each node's attributes are appended in sorted key order.
func (t *Tree) Render(showAttrs bool) string {
	var b strings.Builder

	b.WriteString(renderLabel(t.root, showAttrs))
	b.WriteByte('\n')

	for i, c := range t.root.children {
		renderNode(&b, c, "", i == len(t.root.children)-1, showAttrs)
	}

	return b.String()
}

func renderNode(b *strings.Builder, n *Node, indent string, last bool, showAttrs bool) {
	b.WriteString(indent)

	if last {
		b.WriteString(symLastChild)
		indent += symBlank
	} else {
		b.WriteString(symChild)
		indent += symPipe
	}

	b.WriteString(renderLabel(n, showAttrs))
	b.WriteByte('\n')

	for i, c := range n.children {
		renderNode(b, c, indent, i == len(n.children)-1, showAttrs)
	}
}

func renderLabel(n *Node, showAttrs bool) string {
	if !showAttrs || len(n.attrs) == 0 {
		return n.label
	}

	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, n.attrs[k]))
	}

	return fmt.Sprintf("%s (%s)", n.label, strings.Join(pairs, " "))
}
