// Package symbol provides the versioned catalog of recognized oracle-text
// vocabulary: keywords, keyword actions, zones, references, qualities and
// the classification rules the tagger runs on. The catalog is immutable
// after construction; vocabulary growth happens by building a new catalog
// (see Merge), never by mutating one mid-run.
package symbol

// Category labels a recognized span of oracle text. The set is closed and
// versioned with the catalog.
type Category string

// Catalog categories.
const (
	// Action covers keyword actions (rule 701) and common verbs such as
	// "add", "draw" and "deal" that carry an ability's effect.
	Action Category = "action"
	// Keyword covers keyword abilities (rule 702), including multi-word
	// forms such as "first strike".
	Keyword Category = "keyword"
	// AbilityWord covers ability words (rule 207.2c) such as "landfall".
	AbilityWord Category = "ability-word"
	// Mana covers mana symbol strings such as "{B}{B}{B}" or "{2}{W/U}".
	Mana Category = "mana"
	// Number covers digits, variables ("x") and normalized number words.
	Number Category = "number"
	// Reference covers player and object references ("you", "opponent",
	// "creature card", "it", "this permanent").
	Reference Category = "reference"
	// Zone covers game zones (rule 4).
	Zone Category = "zone"
	// Quality covers characteristics (rule 109.3): types, supertypes,
	// colors, power and toughness.
	Quality Category = "quality"
	// Status covers object statuses (rule 110.6) plus combat states.
	Status Category = "status"
	// Trigger covers trigger preambles (rule 603.1): when, whenever, at.
	Trigger Category = "trigger"
	// Condition covers conditional connectives: if, unless, as long as.
	Condition Category = "condition"
	// Sequence covers temporal connectives: then, until, before, after.
	Sequence Category = "sequence"
	// Quantifier covers scoping words: each, all, target, another.
	Quantifier Category = "quantifier"
	// Punctuation covers sentence punctuation and oracle-text glyphs.
	Punctuation Category = "punct"
	// Space covers whitespace runs between tagged spans.
	Space Category = "space"
	// Word is the fallback for text the catalog does not recognize.
	Word Category = "word"
	// Unparsed marks spans and clauses no grammar rule matched.
	Unparsed Category = "unparsed"
)

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case Action, Keyword, AbilityWord, Mana, Number, Reference, Zone,
		Quality, Status, Trigger, Condition, Sequence, Quantifier,
		Punctuation, Space, Word, Unparsed:
		return true
	default:
		return false
	}
}
