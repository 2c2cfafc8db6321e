// Package grapher assembles per-line clause sequences into one rooted,
// attributed tree per card. The clause-to-node mapping must itself be a
// tree: a clause reachable through two parents is a grammar-authoring
// defect and surfaces as a hard error, never a silently shared node.
package grapher

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/TemporalInept/lituus/pkg/card"
	"github.com/TemporalInept/lituus/pkg/mtgl/parser"
	"github.com/TemporalInept/lituus/pkg/mtgt"
)

// Node labels and attribute keys used in produced trees.
const (
	LabelCard     = "card"
	LabelLine     = "line"
	LabelKeywords = "keywords"

	AttrName           = "name"
	AttrLine           = "line"
	AttrCatalogVersion = "catalog_version"
	AttrRulesVersion   = "rules_version"
)

// Meta carries the grammar versions a tree was built under. Stamped onto
// every root so trees from different grammar versions are never silently
// compared as equivalent downstream.
type Meta struct {
	CatalogVersion string
	RulesVersion   string
}

// StructuralError reports a clause graph that violates the tree invariant:
// one clause referenced by more than one parent. It identifies the card,
// line and token span of the offending clause.
type StructuralError struct {
	Card string
	Line int
	Span parser.Span
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("card %q line %d: clause at tokens [%d,%d) has multiple parents",
		e.Card, e.Line, e.Span.Start, e.Span.End)
}

// IsStructural reports whether err wraps a StructuralError.
func IsStructural(err error) bool {
	var serr *StructuralError

	return errors.As(err, &serr)
}

// Graph builds the card's tree from its per-line clause sequences. lines
// must hold one clause sequence per oracle-text line, in source order.
// Pure function of its inputs; the clause input is never modified.
func Graph(c card.Card, lines [][]*parser.Clause, meta Meta) (*mtgt.Tree, error) {
	tree := mtgt.NewTree(LabelCard)
	root := tree.Root()
	root.SetAttr(AttrName, c.Name)

	if meta.CatalogVersion != "" {
		root.SetAttr(AttrCatalogVersion, meta.CatalogVersion)
	}

	if meta.RulesVersion != "" {
		root.SetAttr(AttrRulesVersion, meta.RulesVersion)
	}

	// Keyword clauses from all lines group under one shared node so
	// downstream keyword queries hit a single place.
	keywords := tree.NewNode(LabelKeywords)
	seen := make(map[*parser.Clause]bool)

	for i, clauses := range lines {
		lineNode := tree.NewNode(LabelLine)
		lineNode.SetAttr(AttrLine, strconv.Itoa(i))

		err := root.Append(lineNode)
		if err != nil {
			return nil, fmt.Errorf("attach line %d: %w", i, err)
		}

		for _, clause := range clauses {
			parent := lineNode
			if clause.Kind == parser.KindKeyword {
				parent = keywords
			}

			err = addClause(tree, parent, clause, seen, c.Name, i)
			if err != nil {
				return nil, err
			}
		}
	}

	// An empty keywords node would be noise; attach it only when used.
	if len(keywords.Children()) > 0 {
		err := root.Append(keywords)
		if err != nil {
			return nil, fmt.Errorf("attach keywords: %w", err)
		}
	}

	return tree, nil
}

// addClause creates the node for clause under parent and recursively
// expands nested clause references. seen detects shared references across
// the whole card, which would make the result a DAG rather than a tree.
func addClause(tree *mtgt.Tree, parent *mtgt.Node, clause *parser.Clause, seen map[*parser.Clause]bool, cardName string, line int) error {
	if seen[clause] {
		return &StructuralError{Card: cardName, Line: line, Span: clause.Span}
	}

	seen[clause] = true

	node := tree.NewNode(string(clause.Kind))
	for k, v := range clause.Attrs {
		node.SetAttr(k, v)
	}

	err := parent.Append(node)
	if err != nil {
		return fmt.Errorf("card %q line %d: %w", cardName, line, err)
	}

	for _, child := range clause.Children {
		err = addClause(tree, node, child, seen, cardName, line)
		if err != nil {
			return err
		}
	}

	return nil
}
