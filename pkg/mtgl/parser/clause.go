// Package parser recognizes syntactic clauses in a token stream using an
// ordered, data-driven rule set. Rules are tried in registration order at
// each scan position; unmatched tokens accumulate into minimal unparsed
// clauses so one unknown construct never takes down the rest of a line.
package parser

import (
	"strings"

	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
)

// ClauseKind labels a recognized syntactic unit. The set is closed and
// versioned with the rule set.
type ClauseKind string

// Clause kinds.
const (
	KindCost        ClauseKind = "cost"
	KindTrigger     ClauseKind = "trigger"
	KindAbilityWord ClauseKind = "ability-word"
	KindAction      ClauseKind = "action"
	KindTarget      ClauseKind = "target"
	KindCondition   ClauseKind = "condition"
	KindEffect      ClauseKind = "effect"
	KindModifier    ClauseKind = "modifier"
	KindMana        ClauseKind = "mana"
	KindKeyword     ClauseKind = "keyword"
	KindUnparsed    ClauseKind = "unparsed"
)

// Span is a half-open token index range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Clause is a typed span over the token sequence. Children are owned by
// identity: the same clause must never hang under two parents, an
// invariant the grapher enforces when building the tree.
type Clause struct {
	Kind     ClauseKind
	Span     Span
	Attrs    map[string]string
	Children []*Clause
}

// SetAttr sets a clause attribute, allocating the map on first use.
func (c *Clause) SetAttr(key, value string) {
	if c.Attrs == nil {
		c.Attrs = make(map[string]string)
	}

	c.Attrs[key] = value
}

// Text reassembles the clause's surface form from its tokens, for
// diagnostics and unparsed-span reporting.
func (c *Clause) Text(tokens []lexer.Token) string {
	parts := make([]string, 0, c.Span.Len())
	for _, t := range tokens[c.Span.Start:c.Span.End] {
		parts = append(parts, t.Value)
	}

	return strings.Join(parts, " ")
}
