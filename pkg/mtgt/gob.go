package mtgt

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// GobEncode encodes the tree through its exported wire form. Gob cannot
// see the unexported node graph directly.
func (t *Tree) GobEncode() ([]byte, error) {
	var buf bytes.Buffer

	err := gob.NewEncoder(&buf).Encode(toWire(t.root))
	if err != nil {
		return nil, fmt.Errorf("gob encode tree: %w", err)
	}

	return buf.Bytes(), nil
}

// GobDecode rebuilds a tree from its gob wire form.
func (t *Tree) GobDecode(data []byte) error {
	var root wireNode

	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&root)
	if err != nil {
		return fmt.Errorf("gob decode tree: %w", err)
	}

	return t.fromWire(root)
}
