// Package mtgt provides the ordered, rooted, attributed tree that the
// grapher builds from parsed oracle text and that all downstream analysis
// consumes. The package carries no game-specific logic.
package mtgt

import (
	"errors"
	"fmt"
	"iter"
)

// Sentinel errors for tree construction.
var (
	ErrHasParent   = errors.New("node already has a parent")
	ErrForeignNode = errors.New("node belongs to a different tree")
	ErrRootChild   = errors.New("root node cannot become a child")
	ErrNilChild    = errors.New("child node is nil")
	ErrCycle       = errors.New("append would create a cycle")
)

// Node is a labeled tree node with ordered children and string attributes.
// Nodes are created through Tree.NewNode and attached with Append, which
// enforces single-parent ownership at construction time. A tree built only
// through this API is acyclic by construction.
type Node struct {
	label    string
	attrs    map[string]string
	children []*Node
	parent   *Node
	owner    *Tree
}

// Tree is a rooted ordered tree. The zero value is not usable; create
// trees with NewTree.
type Tree struct {
	root *Node
	size int
}

// NewTree creates a tree whose root node carries the given label.
func NewTree(label string) *Tree {
	t := &Tree{}
	t.root = &Node{label: label, owner: t}
	t.size = 1

	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Size returns the number of nodes in the tree, including the root.
func (t *Tree) Size() int { return t.size }

// NewNode creates a detached node owned by this tree. The node is not part
// of any traversal until attached with Append.
func (t *Tree) NewNode(label string) *Node {
	return &Node{label: label, owner: t}
}

// Label returns the node label.
func (n *Node) Label() string { return n.label }

// Parent returns the node's parent, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in attachment order. The returned
// slice is the node's own backing storage and must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]

	return v, ok
}

// SetAttr sets the named attribute, overwriting any previous value.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}

	n.attrs[key] = value
}

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]string {
	if len(n.attrs) == 0 {
		return nil
	}

	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}

	return out
}

// Append attaches child as the rightmost child of n. It fails if child is
// nil, already attached, created by another tree, or is the tree root.
// These checks are what make every constructed tree a tree rather than a
// graph: a node reachable from the root has exactly one parent, and no
// path leads back to itself.
func (n *Node) Append(child *Node) error {
	if child == nil {
		return ErrNilChild
	}

	if child.owner != n.owner {
		return fmt.Errorf("append %q under %q: %w", child.label, n.label, ErrForeignNode)
	}

	if child == n.owner.root {
		return fmt.Errorf("append %q: %w", child.label, ErrRootChild)
	}

	if child.parent != nil {
		return fmt.Errorf("append %q under %q: %w", child.label, n.label, ErrHasParent)
	}

	// A detached subtree can still reach n: appending one of n's
	// ancestors would close a loop even though child.parent is nil.
	for anc := n; anc != nil; anc = anc.parent {
		if anc == child {
			return fmt.Errorf("append %q under %q: %w", child.label, n.label, ErrCycle)
		}
	}

	child.parent = n
	n.children = append(n.children, child)
	n.owner.size++

	return nil
}

// Walk returns a lazy depth-first pre-order sequence over the whole tree.
// Each call yields a fresh, independent sequence; concurrent walks over an
// immutable tree do not interfere.
func (t *Tree) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walkNode(t.root, yield)
	}
}

// WalkFrom returns a depth-first pre-order sequence rooted at n.
func (n *Node) WalkFrom() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walkNode(n, yield)
	}
}

func walkNode(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}

	for _, c := range n.children {
		if !walkNode(c, yield) {
			return false
		}
	}

	return true
}

// Find returns all nodes with the given label, in depth-first order.
func (t *Tree) Find(label string) []*Node {
	var found []*Node

	for n := range t.Walk() {
		if n.label == label {
			found = append(found, n)
		}
	}

	return found
}

// Equal reports whether two trees have identical structure: same labels,
// same child order, and same attributes at every node.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}

	return nodeEqual(a.root, b.root)
}

func nodeEqual(a, b *Node) bool {
	if a.label != b.label || len(a.children) != len(b.children) || len(a.attrs) != len(b.attrs) {
		return false
	}

	for k, v := range a.attrs {
		if bv, ok := b.attrs[k]; !ok || bv != v {
			return false
		}
	}

	for i := range a.children {
		if !nodeEqual(a.children[i], b.children[i]) {
			return false
		}
	}

	return true
}
