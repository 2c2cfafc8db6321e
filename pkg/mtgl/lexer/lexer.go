// Package lexer turns tagged text into an ordered token stream. It splits
// multi-value spans (mana strings) into atomic tokens, canonicalizes
// surface variants to the catalog's normal forms, and attaches source
// positions to every token for error reporting.
package lexer

import (
	"fmt"

	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
	"github.com/TemporalInept/lituus/pkg/mtgl/tagger"
)

// Pos is a token's span in the source line. Offsets are bytes; Col is the
// 1-based rune column of Start.
type Pos struct {
	Start int
	End   int
	Col   int
}

// Token is one atomic unit of tagged oracle text. Tokens are immutable and
// emitted in source order.
type Token struct {
	Type  symbol.Category
	Value string
	Attrs map[string]string
	Pos   Pos
	// Group links tokens split from one tagged span: the symbols of a
	// mana string share a group id. Zero means ungrouped.
	Group int
}

// String renders a token for diagnostics as type<value>.
func (t Token) String() string {
	return fmt.Sprintf("%s<%s>", t.Type, t.Value)
}

// Tokenize converts tagged text into tokens. Space spans and reminder
// text are dropped; everything else maps to at least one token, so no
// recognized source content disappears. Deterministic and stateless.
func Tokenize(text tagger.Text) []Token {
	tokens := make([]Token, 0, len(text.Spans))
	group := 0

	cols := columnIndex(text.Source)

	for _, span := range text.Spans {
		switch {
		case span.Category == symbol.Space:
			continue
		case span.Attrs["reminder"] == "true":
			continue
		case span.Category == symbol.Mana:
			group++

			tokens = append(tokens, manaTokens(span, group, cols)...)
		default:
			tokens = append(tokens, Token{
				Type:  span.Category,
				Value: span.Value,
				Attrs: span.Attrs,
				Pos:   pos(span.Start, span.End, cols),
			})
		}
	}

	return tokens
}

// manaTokens splits one mana span into one token per symbol. Each token
// keeps the whole span's source position; the shared group id is the
// containing marker that lets the parser reassemble the string.
func manaTokens(span tagger.Span, group int, cols []int) []Token {
	symbols, ok := symbol.ParseManaString(span.Text)
	if !ok {
		// Tagger only emits mana spans it validated; treat anything else
		// as a literal word to uphold the no-loss policy.
		return []Token{{
			Type:  symbol.Word,
			Value: span.Value,
			Pos:   pos(span.Start, span.End, cols),
		}}
	}

	tokens := make([]Token, len(symbols))
	offset := span.Start

	for i, sym := range symbols {
		// Each symbol occupies len("{X}") bytes in source.
		width := len(sym) + 2

		tokens[i] = Token{
			Type:  symbol.Mana,
			Value: sym,
			Pos:   pos(offset, offset+width, cols),
			Group: group,
		}

		offset += width
	}

	return tokens
}

func pos(start, end int, cols []int) Pos {
	col := 1
	if start < len(cols) {
		col = cols[start]
	} else if len(cols) > 0 {
		col = cols[len(cols)-1] + 1
	}

	return Pos{Start: start, End: end, Col: col}
}

// columnIndex maps each byte offset to its 1-based rune column.
func columnIndex(source string) []int {
	cols := make([]int, len(source))
	col := 0

	for i := range source {
		col++

		for j := i; j < len(source) && (j == i || !isRuneStart(source[j])); j++ {
			cols[j] = col
		}
	}

	return cols
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
