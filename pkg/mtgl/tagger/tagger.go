// Package tagger annotates raw oracle-text lines with semantic categories
// from the symbol catalog. Tagging is total: every character of the input
// lands in exactly one span, with unknown text degrading to literal word
// spans rather than failing.
package tagger

import (
	"errors"
	"strings"
	"unicode"

	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
)

// Span is one tagged substring. Text is the original source slice; Value
// is the catalog's canonical form. Start and End are byte offsets into the
// source line.
type Span struct {
	Text     string
	Category symbol.Category
	Value    string
	Attrs    map[string]string
	Start    int
	End      int
}

// Text is the tagged form of one ability line. Concatenating the spans'
// Text fields reproduces Source exactly; the tagger never drops or
// reorders source characters.
type Text struct {
	Source string
	Spans  []Span
}

// Reconstruct rebuilds the source line from the spans. It exists so the
// reconstruction invariant is checkable, not because callers need it.
func (t Text) Reconstruct() string {
	var b strings.Builder
	for _, s := range t.Spans {
		b.WriteString(s.Text)
	}

	return b.String()
}

// Tagger scans lines against one immutable catalog version. Safe for
// concurrent use.
type Tagger struct {
	cat *symbol.Catalog
}

// New creates a Tagger over the given catalog.
func New(cat *symbol.Catalog) *Tagger {
	return &Tagger{cat: cat}
}

// Tag annotates one ability line. Pure function of the line and the
// catalog version; no failure mode.
func (t *Tagger) Tag(line string) Text {
	return t.tag(line, nil)
}

// TagCard annotates one ability line of the named card, additionally
// recognizing the card's own name (and its short form before a comma) as a
// self reference, the way "this spell" and "this permanent" already are.
func (t *Tagger) TagCard(name, line string) Text {
	if name == "" {
		return t.tag(line, nil)
	}

	selves := []string{name}
	if short, _, found := strings.Cut(name, ","); found {
		selves = append(selves, short)
	}

	return t.tag(line, selves)
}

// segment kinds produced by the low-level scanner.
const (
	segWord = iota
	segSpace
	segPunct
	segBrace
	segReminder
)

type segment struct {
	kind  int
	start int
	end   int
}

func (t *Tagger) tag(line string, selfNames []string) Text {
	segs := scan(line)
	out := Text{Source: line}

	for i := 0; i < len(segs); {
		seg := segs[i]
		text := line[seg.start:seg.end]

		switch seg.kind {
		case segSpace:
			out.Spans = append(out.Spans, span(text, symbol.Space, text, nil, seg))
			i++
		case segPunct:
			out.Spans = append(out.Spans, span(text, symbol.Punctuation, text, nil, seg))
			i++
		case segReminder:
			// Reminder text is parenthetical restatement of rules the
			// card already carries; keep it in the tagged text for
			// reconstruction but mark it for the lexer to drop.
			out.Spans = append(out.Spans, span(text, symbol.Word, text, map[string]string{"reminder": "true"}, seg))
			i++
		case segBrace:
			out.Spans = append(out.Spans, t.braceSpan(text, seg))
			i++
		default:
			matched, consumed := t.matchPhrase(line, segs, i, selfNames)
			out.Spans = append(out.Spans, matched)
			i += consumed
		}
	}

	return out
}

// matchPhrase applies longest-match-first at word segment i: the longest
// run of space-separated words matching a catalog phrase (or the card's
// own name) wins before shorter runs, and a lone unknown word degrades to
// a literal word span. Returns the span and how many segments it covers.
func (t *Tagger) matchPhrase(line string, segs []segment, i int, selfNames []string) (Span, int) {
	words, ends := phraseWindow(line, segs, i, t.cat.MaxPhraseWords())

	for n := len(words); n >= 1; n-- {
		phrase := line[segs[i].start:ends[n-1]]

		if isSelfName(phrase, selfNames) {
			covered := segment{start: segs[i].start, end: ends[n-1]}

			return span(phrase, symbol.Reference, "self", map[string]string{"ref": "self"}, covered), 2*n - 1
		}

		entry, err := t.cat.Lookup(phrase)
		if err == nil {
			covered := segment{start: segs[i].start, end: ends[n-1]}

			return span(phrase, entry.Category, entry.Value, entry.Attrs, covered), 2*n - 1
		}
	}

	// Unknown single word: literal fallback, canonical form preserved for
	// downstream normalization-sensitive matching.
	seg := segs[i]
	text := line[seg.start:seg.end]

	entry, err := t.cat.Lookup(text)
	if err == nil {
		return span(text, entry.Category, entry.Value, entry.Attrs, seg), 1
	}

	var attrs map[string]string
	if errors.Is(err, symbol.ErrAmbiguous) {
		// Flag rather than resolve: a phrase the catalog knows under two
		// categories degrades to a literal word carrying the conflict.
		attrs = map[string]string{"ambiguous": "true"}
	}

	return span(text, symbol.Word, symbol.NormalizeWord(text), attrs, seg), 1
}

// phraseWindow collects up to maxWords consecutive word segments starting
// at i, separated by single-space segments only, returning the words and
// the source end offset of each prefix.
func phraseWindow(line string, segs []segment, i, maxWords int) ([]string, []int) {
	var (
		words []string
		ends  []int
	)

	for j := i; j < len(segs) && len(words) < maxWords; j += 2 {
		if segs[j].kind != segWord {
			break
		}

		words = append(words, line[segs[j].start:segs[j].end])
		ends = append(ends, segs[j].end)

		// The next segment must be exactly one space for the phrase to
		// continue.
		if j+1 >= len(segs) || segs[j+1].kind != segSpace || line[segs[j+1].start:segs[j+1].end] != " " {
			break
		}
	}

	return words, ends
}

func isSelfName(phrase string, selfNames []string) bool {
	for _, n := range selfNames {
		if strings.EqualFold(phrase, strings.TrimSpace(n)) {
			return true
		}
	}

	return false
}

// braceSpan classifies a brace run: a well-formed mana string becomes one
// mana span; anything else is literal punctuation-ish text.
func (t *Tagger) braceSpan(text string, seg segment) Span {
	if symbols, ok := symbol.ParseManaString(text); ok {
		return span(text, symbol.Mana, strings.ToLower(text), map[string]string{
			"symbols": strings.Join(symbols, ","),
		}, seg)
	}

	return span(text, symbol.Word, text, nil, seg)
}

func span(text string, cat symbol.Category, value string, attrs map[string]string, seg segment) Span {
	return Span{
		Text:     text,
		Category: cat,
		Value:    value,
		Attrs:    attrs,
		Start:    seg.start,
		End:      seg.end,
	}
}

// scan splits a line into primitive segments: whitespace runs, single
// punctuation runes, maximal brace-group runs, parenthesized reminder
// regions and word runs. Segments tile the line with no gaps.
func scan(line string) []segment {
	var segs []segment

	runes := []rune(line)
	pos := 0 // byte position

	for idx := 0; idx < len(runes); {
		r := runes[idx]

		switch {
		case unicode.IsSpace(r):
			start := pos
			for idx < len(runes) && unicode.IsSpace(runes[idx]) {
				pos += len(string(runes[idx]))
				idx++
			}

			segs = append(segs, segment{kind: segSpace, start: start, end: pos})
		case r == '(':
			start := pos
			depth := 0
			j := idx

			for ; j < len(runes); j++ {
				if runes[j] == '(' {
					depth++
				}

				if runes[j] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}

			if j < len(runes) {
				for idx <= j {
					pos += len(string(runes[idx]))
					idx++
				}

				segs = append(segs, segment{kind: segReminder, start: start, end: pos})

				continue
			}

			// Unbalanced open paren: plain punctuation.
			pos += len(string(r))
			idx++

			segs = append(segs, segment{kind: segPunct, start: start, end: pos})
		case r == '{':
			start := pos
			j := idx
			ok := true

			for j < len(runes) && runes[j] == '{' {
				k := j
				for k < len(runes) && runes[k] != '}' {
					k++
				}

				if k == len(runes) {
					ok = false

					break
				}

				j = k + 1
			}

			if ok && j > idx {
				for idx < j {
					pos += len(string(runes[idx]))
					idx++
				}

				segs = append(segs, segment{kind: segBrace, start: start, end: pos})

				continue
			}

			pos += len(string(r))
			idx++

			segs = append(segs, segment{kind: segPunct, start: start, end: pos})
		case symbol.IsPunct(r):
			start := pos
			pos += len(string(r))
			idx++

			segs = append(segs, segment{kind: segPunct, start: start, end: pos})
		default:
			start := pos
			for idx < len(runes) && isWordRune(runes[idx]) {
				pos += len(string(runes[idx]))
				idx++
			}

			if pos == start {
				// A rune that is neither word, space, punct nor brace;
				// consume it as punctuation so scanning always advances.
				pos += len(string(runes[idx]))
				idx++

				segs = append(segs, segment{kind: segPunct, start: start, end: pos})

				continue
			}

			segs = append(segs, segment{kind: segWord, start: start, end: pos})
		}
	}

	return segs
}

func isWordRune(r rune) bool {
	if unicode.IsSpace(r) || symbol.IsPunct(r) || r == '{' || r == '}' || r == '(' || r == ')' {
		return false
	}

	return true
}
