package parser

import (
	"strings"

	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
)

// DefaultRulesVersion identifies the built-in grammar. Bump it whenever
// the rule list or its ordering changes; ordering is part of the contract.
const DefaultRulesVersion = "mtgl-rules-2020.05"

// DefaultRules builds the built-in grammar, most specific rules first:
// an activated-ability cost clause, ability-word lines, trigger
// sentences, conditionals, keyword clauses, target specifications,
// action clauses, bare mana costs, then modifiers. The general word
// fallback is implicit: whatever no rule claims becomes an unparsed
// clause.
func DefaultRules() *RuleSet {
	return NewRuleSet(DefaultRulesVersion,
		Rule{
			Name:      "cost-clause",
			Kind:      KindCost,
			Match:     matchCost,
			Construct: constructCost,
		},
		Rule{
			Name:      "ability-word-clause",
			Kind:      KindAbilityWord,
			Match:     matchAbilityWord,
			Construct: constructAbilityWord,
		},
		Rule{
			Name:      "trigger-clause",
			Kind:      KindTrigger,
			Match:     matchTrigger,
			Construct: constructTrigger,
		},
		Rule{
			Name:      "condition-clause",
			Kind:      KindCondition,
			Match:     matchCondition,
			Construct: constructCondition,
		},
		Rule{
			Name: "keyword-clause",
			Kind: KindKeyword,
			Pattern: []Matcher{
				{Types: []symbol.Category{symbol.Keyword}},
				{Types: []symbol.Category{symbol.Mana}, Repeat: true, Optional: true},
				{Types: []symbol.Category{symbol.Number}, Optional: true},
			},
			Construct: constructKeyword,
		},
		Rule{
			Name: "target-clause",
			Kind: KindTarget,
			Pattern: []Matcher{
				{Types: []symbol.Category{symbol.Quantifier}, Values: []string{"target", "any", "each", "all"}},
				{
					Types:    []symbol.Category{symbol.Quantifier, symbol.Quality, symbol.Reference, symbol.Status},
					Repeat:   true,
					Optional: true,
				},
			},
			Construct: constructTarget,
		},
		Rule{
			Name:      "action-clause",
			Kind:      KindAction,
			Match:     matchAction,
			Construct: constructAction,
		},
		Rule{
			Name: "mana-clause",
			Kind: KindMana,
			Pattern: []Matcher{
				{Types: []symbol.Category{symbol.Mana}, Repeat: true},
			},
			Construct: constructMana,
		},
		Rule{
			Name: "modifier-clause",
			Kind: KindModifier,
			Pattern: []Matcher{
				{Types: []symbol.Category{symbol.Sequence}},
				{
					Types: []symbol.Category{
						symbol.Quantifier, symbol.Number, symbol.Reference,
						symbol.Quality, symbol.Zone, symbol.Status,
						symbol.Word, symbol.Sequence,
					},
					Repeat:   true,
					Optional: true,
				},
			},
			Construct: constructModifier,
		},
		Rule{
			Name: "modifier-connective",
			Kind: KindModifier,
			Pattern: []Matcher{
				{Types: []symbol.Category{symbol.Condition}, Values: []string{"instead", "otherwise"}},
			},
		},
	)
}

// costTokenTypes are the token types allowed on the cost side of an
// activated ability's "cost: effect" line.
var costTokenTypes = []symbol.Category{
	symbol.Mana, symbol.Action, symbol.Number, symbol.Quantifier,
	symbol.Reference, symbol.Quality, symbol.Status, symbol.Zone,
	symbol.Word,
}

// matchCost recognizes the cost side of an activated ability: the line's
// leading tokens up to and including the first colon. Anchored at the
// line start, so a colon later in a sentence never creates a cost.
func matchCost(tokens []lexer.Token, pos int) (int, bool) {
	if pos != 0 {
		return 0, false
	}

	for j := pos; j < len(tokens); j++ {
		tok := tokens[j]

		if tok.Type == symbol.Punctuation {
			if tok.Value == ":" && j > pos {
				return j + 1 - pos, true
			}

			return 0, false
		}

		if !containsCategory(costTokenTypes, tok.Type) {
			return 0, false
		}
	}

	return 0, false
}

func constructCost(p *Parser, tokens []lexer.Token, span Span, depth int) (*Clause, error) {
	clause := &Clause{Kind: KindCost, Span: span}

	// span.End-1 is the colon.
	children, err := p.parseSpan(tokens, Span{Start: span.Start, End: span.End - 1}, depth)
	if err != nil {
		return nil, err
	}

	clause.Children = children

	return clause, nil
}

// matchAbilityWord recognizes an ability-word line: the ability word, its
// long dash, and the definition running to the end of the span. Without
// the dash the word is ordinary text, not a line label.
func matchAbilityWord(tokens []lexer.Token, pos int) (int, bool) {
	if tokens[pos].Type != symbol.AbilityWord {
		return 0, false
	}

	if pos+2 >= len(tokens) || tokens[pos+1].Type != symbol.Punctuation || tokens[pos+1].Value != "—" {
		return 0, false
	}

	return len(tokens) - pos, true
}

func constructAbilityWord(p *Parser, tokens []lexer.Token, span Span, depth int) (*Clause, error) {
	clause := &Clause{Kind: KindAbilityWord, Span: span}
	clause.SetAttr("word", tokens[span.Start].Value)

	// span.Start+1 is the dash; the definition follows it.
	children, err := p.parseSpan(tokens, Span{Start: span.Start + 2, End: span.End}, depth)
	if err != nil {
		return nil, err
	}

	clause.Children = children

	return clause, nil
}

// matchTrigger recognizes a full trigger sentence: a trigger preamble,
// a condition up to the first comma, and a consequence running to the
// sentence's period or the end of the span.
func matchTrigger(tokens []lexer.Token, pos int) (int, bool) {
	if tokens[pos].Type != symbol.Trigger {
		return 0, false
	}

	comma := -1

	for j := pos + 1; j < len(tokens); j++ {
		if tokens[j].Type == symbol.Punctuation && tokens[j].Value == "," {
			comma = j

			break
		}
	}

	if comma <= pos+1 {
		return 0, false
	}

	end := len(tokens)

	for j := comma + 1; j < len(tokens); j++ {
		if tokens[j].Type == symbol.Punctuation && tokens[j].Value == "." {
			end = j + 1

			break
		}
	}

	if end <= comma+1 {
		return 0, false
	}

	return end - pos, true
}

func constructTrigger(p *Parser, tokens []lexer.Token, span Span, depth int) (*Clause, error) {
	clause := &Clause{Kind: KindTrigger, Span: span}
	clause.SetAttr("trigger", tokens[span.Start].Value)

	comma := span.Start
	for tokens[comma].Type != symbol.Punctuation || tokens[comma].Value != "," {
		comma++
	}

	condition := &Clause{Kind: KindCondition, Span: Span{Start: span.Start + 1, End: comma}}

	children, err := p.parseSpan(tokens, condition.Span, depth)
	if err != nil {
		return nil, err
	}

	condition.Children = children

	effect := &Clause{Kind: KindEffect, Span: Span{Start: comma + 1, End: span.End}}

	children, err = p.parseSpan(tokens, effect.Span, depth)
	if err != nil {
		return nil, err
	}

	effect.Children = children

	clause.Children = []*Clause{condition, effect}

	return clause, nil
}

// matchCondition recognizes a conditional clause introduced by if, unless,
// as long as or only if, running to the next comma, period or span end.
func matchCondition(tokens []lexer.Token, pos int) (int, bool) {
	tok := tokens[pos]
	if tok.Type != symbol.Condition {
		return 0, false
	}

	switch tok.Value {
	case "if", "unless", "as long as", "only if":
	default:
		return 0, false
	}

	end := len(tokens)

	for j := pos + 1; j < len(tokens); j++ {
		if tokens[j].Type == symbol.Punctuation && (tokens[j].Value == "," || tokens[j].Value == ".") {
			end = j

			break
		}
	}

	if end <= pos+1 {
		return 0, false
	}

	return end - pos, true
}

func constructCondition(p *Parser, tokens []lexer.Token, span Span, depth int) (*Clause, error) {
	clause := &Clause{Kind: KindCondition, Span: span}
	clause.SetAttr("cond", tokens[span.Start].Value)

	children, err := p.parseSpan(tokens, Span{Start: span.Start + 1, End: span.End}, depth)
	if err != nil {
		return nil, err
	}

	clause.Children = children

	return clause, nil
}

func constructKeyword(_ *Parser, tokens []lexer.Token, span Span, _ int) (*Clause, error) {
	clause := &Clause{Kind: KindKeyword, Span: span}
	clause.SetAttr("keyword", tokens[span.Start].Value)

	if mana := manaRun(tokens, span.Start+1, span.End); mana != nil {
		clause.Children = append(clause.Children, mana)
	}

	for j := span.Start + 1; j < span.End; j++ {
		if tokens[j].Type == symbol.Number {
			clause.SetAttr("n", tokens[j].Value)
		}
	}

	return clause, nil
}

func constructTarget(_ *Parser, tokens []lexer.Token, span Span, _ int) (*Clause, error) {
	clause := &Clause{Kind: KindTarget, Span: span}
	clause.SetAttr("quantifier", tokens[span.Start].Value)

	var objects []string

	for j := span.Start + 1; j < span.End; j++ {
		switch tokens[j].Type {
		case symbol.Quality, symbol.Reference, symbol.Status:
			objects = append(objects, tokens[j].Value)
		default:
		}
	}

	if len(objects) > 0 {
		clause.SetAttr("object", strings.Join(objects, " "))
	}

	return clause, nil
}

// actionArgTypes are the token types an action clause absorbs after its
// verb. Another action, a trigger, a condition or punctuation ends the
// clause.
var actionArgTypes = []symbol.Category{
	symbol.Quantifier, symbol.Number, symbol.Reference, symbol.Quality,
	symbol.Zone, symbol.Status, symbol.Mana, symbol.Word,
}

func matchAction(tokens []lexer.Token, pos int) (int, bool) {
	if tokens[pos].Type != symbol.Action {
		return 0, false
	}

	n := 1
	for pos+n < len(tokens) && containsCategory(actionArgTypes, tokens[pos+n].Type) {
		n++
	}

	return n, true
}

func constructAction(_ *Parser, tokens []lexer.Token, span Span, _ int) (*Clause, error) {
	clause := &Clause{Kind: KindAction, Span: span}
	clause.SetAttr("verb", tokens[span.Start].Value)

	var objects []string

	for j := span.Start + 1; j < span.End; j++ {
		tok := tokens[j]

		switch tok.Type {
		case symbol.Mana:
			if mana := manaRun(tokens, j, span.End); mana != nil {
				clause.Children = append(clause.Children, mana)
				j = mana.Span.End - 1
			}
		case symbol.Quantifier:
			if n, ok := matchPattern(targetPattern(), tokens[:span.End], j); ok {
				sub := Span{Start: j, End: j + n}

				target, err := constructTarget(nil, tokens, sub, 0)
				if err != nil {
					return nil, err
				}

				clause.Children = append(clause.Children, target)
				j = sub.End - 1
			}
		case symbol.Quality, symbol.Reference:
			objects = append(objects, tok.Value)
		case symbol.Number:
			clause.SetAttr("n", tok.Value)
		case symbol.Zone:
			clause.SetAttr("zone", tok.Value)
		default:
		}
	}

	if len(objects) > 0 {
		clause.SetAttr("object", strings.Join(objects, " "))
	}

	return clause, nil
}

func constructMana(_ *Parser, tokens []lexer.Token, span Span, _ int) (*Clause, error) {
	return manaClause(tokens, span), nil
}

func constructModifier(_ *Parser, tokens []lexer.Token, span Span, _ int) (*Clause, error) {
	clause := &Clause{Kind: KindModifier, Span: span}
	clause.SetAttr("mod", tokens[span.Start].Value)

	return clause, nil
}

// targetPattern mirrors the target-clause rule's pattern for reuse inside
// action clause construction.
func targetPattern() []Matcher {
	return []Matcher{
		{Types: []symbol.Category{symbol.Quantifier}, Values: []string{"target", "any", "each", "all"}},
		{
			Types:    []symbol.Category{symbol.Quantifier, symbol.Quality, symbol.Reference, symbol.Status},
			Repeat:   true,
			Optional: true,
		},
	}
}

// manaRun collects the maximal run of mana tokens starting at pos into a
// mana clause, or nil if pos is not a mana token.
func manaRun(tokens []lexer.Token, pos, limit int) *Clause {
	if pos >= limit || tokens[pos].Type != symbol.Mana {
		return nil
	}

	end := pos
	for end < limit && tokens[end].Type == symbol.Mana {
		end++
	}

	return manaClause(tokens, Span{Start: pos, End: end})
}

func manaClause(tokens []lexer.Token, span Span) *Clause {
	var b strings.Builder

	for _, tok := range tokens[span.Start:span.End] {
		b.WriteByte('{')
		b.WriteString(tok.Value)
		b.WriteByte('}')
	}

	clause := &Clause{Kind: KindMana, Span: span}
	clause.SetAttr("mana", b.String())

	return clause
}
