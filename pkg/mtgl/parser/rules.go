package parser

import (
	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
)

// Matcher matches one or more consecutive tokens at a pattern position.
// Empty Types or Values means "any". Repeat consumes greedily; Optional
// allows zero matches.
type Matcher struct {
	Types    []symbol.Category
	Values   []string
	Optional bool
	Repeat   bool
}

func (m Matcher) matches(tok lexer.Token) bool {
	if len(m.Types) > 0 && !containsCategory(m.Types, tok.Type) {
		return false
	}

	if len(m.Values) > 0 && !containsString(m.Values, tok.Value) {
		return false
	}

	return true
}

// Constructor builds a clause from a rule match. tokens is the full line;
// span is the matched region. depth is the current nesting depth, passed
// through to recursive sub-parses.
type Constructor func(p *Parser, tokens []lexer.Token, span Span, depth int) (*Clause, error)

// Rule is one grammar rule: a pattern over token subsequences plus the
// constructor that turns a match into a clause. When Match is set it
// replaces the pattern engine for rules whose extent depends on scanning
// ahead (trigger sentences, cost clauses). When Construct is nil the
// match becomes a flat clause of the rule's kind.
type Rule struct {
	Name      string
	Kind      ClauseKind
	Pattern   []Matcher
	Match     func(tokens []lexer.Token, pos int) (int, bool)
	Construct Constructor
}

// match returns the number of tokens the rule consumes at pos, if any.
func (r Rule) match(tokens []lexer.Token, pos int) (int, bool) {
	if r.Match != nil {
		return r.Match(tokens, pos)
	}

	return matchPattern(r.Pattern, tokens, pos)
}

func matchPattern(pattern []Matcher, tokens []lexer.Token, pos int) (int, bool) {
	cur := pos

	for _, m := range pattern {
		n := 0

		for cur+n < len(tokens) && m.matches(tokens[cur+n]) {
			n++

			if !m.Repeat {
				break
			}
		}

		if n == 0 && !m.Optional {
			return 0, false
		}

		cur += n
	}

	return cur - pos, cur > pos
}

// RuleSet is an ordered, versioned grammar. Order is the documented
// tie-break: among rules that match at a position, the earliest registered
// wins, so rule sets go from most specific to most general. Immutable
// after construction; grammar growth is a new RuleSet with a new version.
type RuleSet struct {
	version string
	rules   []Rule
}

// NewRuleSet builds a rule set from ordered rules.
func NewRuleSet(version string, rules ...Rule) *RuleSet {
	return &RuleSet{version: version, rules: rules}
}

// Version returns the rule-set version identifier stamped onto trees.
func (rs *RuleSet) Version() string { return rs.version }

// Rules returns the ordered rules. The slice is the set's own storage and
// must not be modified.
func (rs *RuleSet) Rules() []Rule { return rs.rules }

func containsCategory(cats []symbol.Category, c symbol.Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}

	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}

	return false
}
