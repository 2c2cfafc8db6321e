package parser

import (
	"errors"
	"fmt"

	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
)

// maxDepth bounds clause nesting. Oracle lines are short, so any parse
// deeper than this is a grammar defect or pathological input; the inner
// span degrades to unparsed instead of recursing further.
const maxDepth = 12

// errDepthExceeded reports a sub-parse that hit the nesting bound. It is
// resolved internally by degrading to unparsed and never escapes Parse.
var errDepthExceeded = errors.New("clause nesting bound exceeded")

// Parser applies one immutable rule set to token sequences. Safe for
// concurrent use.
type Parser struct {
	rules *RuleSet
}

// New creates a Parser over the given rule set.
func New(rules *RuleSet) *Parser {
	return &Parser{rules: rules}
}

// RuleSetVersion returns the version of the grammar in use.
func (p *Parser) RuleSetVersion() string { return p.rules.version }

// Parse recognizes the clause structure of one line's token sequence.
// The returned clause spans partition [0, len(tokens)) exactly: every
// token belongs to exactly one top-level clause. Unrecognized tokens are
// preserved in minimal-span unparsed clauses. Pure function of the tokens
// and the rule-set version.
func (p *Parser) Parse(tokens []lexer.Token) ([]*Clause, error) {
	return p.parseSpan(tokens, Span{Start: 0, End: len(tokens)}, 0)
}

// parseSpan runs the scan loop over tokens[span.Start:span.End].
func (p *Parser) parseSpan(tokens []lexer.Token, span Span, depth int) ([]*Clause, error) {
	if depth > maxDepth {
		return nil, errDepthExceeded
	}

	var clauses []*Clause

	pos := span.Start
	pendingStart := -1

	flush := func(end int) {
		if pendingStart >= 0 {
			clauses = append(clauses, &Clause{
				Kind: KindUnparsed,
				Span: Span{Start: pendingStart, End: end},
			})
			pendingStart = -1
		}
	}

	for pos < span.End {
		consumed, clause, err := p.applyRules(tokens, pos, span.End, depth)
		if err != nil {
			return nil, err
		}

		if clause == nil {
			// No rule matched: the token joins the pending unparsed run,
			// bounding damage to this local span.
			if pendingStart < 0 {
				pendingStart = pos
			}

			pos++

			continue
		}

		flush(pos)

		// Trailing sentence punctuation belongs to the clause it closes.
		end := pos + consumed
		for end < span.End && isSentencePunct(tokens[end]) {
			end++
		}

		clause.Span.End = end
		clauses = append(clauses, clause)
		pos = end
	}

	flush(span.End)

	return clauses, nil
}

// applyRules tries the ordered rules at pos. The first rule whose pattern
// matches wins; this ordering is part of the grammar's versioned contract
// and keeps trees reproducible across runs.
func (p *Parser) applyRules(tokens []lexer.Token, pos, limit, depth int) (int, *Clause, error) {
	for _, rule := range p.rules.rules {
		n, ok := rule.match(tokens[:limit], pos)
		if !ok {
			continue
		}

		span := Span{Start: pos, End: pos + n}

		clause, err := p.construct(rule, tokens, span, depth)
		if err != nil {
			if errors.Is(err, errDepthExceeded) {
				return n, &Clause{Kind: KindUnparsed, Span: span}, nil
			}

			return 0, nil, fmt.Errorf("rule %q at token %d: %w", rule.Name, pos, err)
		}

		return n, clause, nil
	}

	return 0, nil, nil
}

func (p *Parser) construct(rule Rule, tokens []lexer.Token, span Span, depth int) (*Clause, error) {
	if rule.Construct == nil {
		return &Clause{Kind: rule.Kind, Span: span}, nil
	}

	return rule.Construct(p, tokens, span, depth+1)
}

func isSentencePunct(tok lexer.Token) bool {
	switch tok.Value {
	case ".", ",", ";":
		return true
	default:
		return false
	}
}
