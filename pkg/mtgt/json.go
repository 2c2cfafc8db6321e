package mtgt

import (
	"encoding/json"
	"fmt"
)

// wireNode is the wire form of a node. Children are nested, so one
// marshalled document describes the whole tree.
type wireNode struct {
	Label    string            `json:"label"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []wireNode        `json:"children,omitempty"`
}

// MarshalJSON encodes the tree as a nested label/attrs/children document.
func (t *Tree) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(toWire(t.root))
	if err != nil {
		return nil, fmt.Errorf("marshal tree: %w", err)
	}

	return data, nil
}

// UnmarshalJSON rebuilds a tree from its nested document form.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var root wireNode

	err := json.Unmarshal(data, &root)
	if err != nil {
		return fmt.Errorf("unmarshal tree: %w", err)
	}

	return t.fromWire(root)
}

// fromWire rebuilds the receiver from a decoded wire document. Every node
// is created and attached through the construction API, so ownership
// invariants hold on the result.
func (t *Tree) fromWire(root wireNode) error {
	rebuilt := NewTree(root.Label)
	for k, v := range root.Attrs {
		rebuilt.root.SetAttr(k, v)
	}

	for _, c := range root.Children {
		err := attachWire(rebuilt, rebuilt.root, c)
		if err != nil {
			return err
		}
	}

	*t = *rebuilt
	t.root.owner = t
	reown(t.root, t)

	return nil
}

func toWire(n *Node) wireNode {
	out := wireNode{Label: n.label, Attrs: n.attrs}

	for _, c := range n.children {
		out.Children = append(out.Children, toWire(c))
	}

	return out
}

func attachWire(t *Tree, parent *Node, src wireNode) error {
	n := t.NewNode(src.Label)
	for k, v := range src.Attrs {
		n.SetAttr(k, v)
	}

	err := parent.Append(n)
	if err != nil {
		return err
	}

	for _, c := range src.Children {
		err = attachWire(t, n, c)
		if err != nil {
			return err
		}
	}

	return nil
}

func reown(n *Node, t *Tree) {
	n.owner = t
	for _, c := range n.children {
		reown(c, t)
	}
}
