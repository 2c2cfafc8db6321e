package symbol

import (
	"strings"
)

// wordHacks maps surface variants to the canonical forms the catalog is
// keyed on: contractions, irregular plurals, tense variants and a few
// common phrases the original card texts abbreviate inconsistently.
var wordHacks = map[string]string{
	// contractions
	"can't": "cannot", "don't": "do not", "doesn't": "does not",
	"didn't": "did not", "isn't": "is not", "aren't": "are not",
	"hasn't": "has not", "haven't": "have not", "wasn't": "was not",
	"weren't": "were not", "couldn't": "could not", "it's": "it is",
	"you're": "you are", "they're": "they are", "that's": "that is",

	// irregular plurals back to the singular stem
	"elves": "elf", "werewolves": "werewolf", "allies": "ally",
	"armies": "army", "sorceries": "sorcery", "libraries": "library",
	"copies": "copy", "abilities": "ability", "mercenaries": "mercenary",
	"sphinxes": "sphinx", "foxes": "fox", "mice": "mouse",

	// tense and participle variants back to the verb stem
	"dealt": "deal", "drawn": "draw", "lost": "lose", "left": "leave",
	"died": "die", "dying": "die", "chosen": "choose", "spent": "spend",
	"sacrificed": "sacrifice", "destroyed": "destroy",
	"discarded": "discard", "entered": "enter", "enters": "enter",
	"gains": "gain", "gets": "get", "deals": "deal", "draws": "draw",
	"loses": "lose", "leaves": "leave", "dies": "die", "adds": "add",
	"becomes": "become", "puts": "put", "returns": "return",
	"controls": "control", "owns": "own", "attacks": "attack",
	"blocks": "block", "casts": "cast", "costs": "cost",

	// hyphenated status forms fold to their spaced catalog keys
	"face-up": "face up", "face-down": "face down",
	"phased-in": "phased in", "phased-out": "phased out",
}

// numberWords maps English number words to digit strings.
var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15",
}

// NormalizeWord maps a single surface word to its catalog key form:
// lowercased, possessive stripped, contraction and plural/tense variants
// folded, number words folded to digits. Pure function; the rules are part
// of the catalog's versioned contract.
func NormalizeWord(word string) string {
	w := strings.ToLower(word)

	// Contractions carry their apostrophe, so hacks run before the
	// possessive strip ("it's" folds to "it is", not to "it").
	if h, ok := wordHacks[w]; ok {
		w = h
	} else {
		w = strings.TrimSuffix(w, "'s")
		w = strings.TrimSuffix(w, "’s")

		if h, ok := wordHacks[w]; ok {
			w = h
		}
	}

	if n, ok := numberWords[w]; ok {
		return n
	}

	return w
}

// NormalizePhrase normalizes each word of a multi-word phrase and joins the
// result with single spaces, producing the catalog lookup key.
func NormalizePhrase(words []string) string {
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = NormalizeWord(w)
	}

	return strings.Join(normalized, " ")
}

// IsNumber reports whether the normalized word is a numeric value: digits
// or the variable designators x, y, z.
func IsNumber(word string) bool {
	if word == "x" || word == "y" || word == "z" {
		return true
	}

	if word == "" {
		return false
	}

	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Punctuation runes that appear in oracle text. The long hyphen and bullet
// come from ability-word lines and modal spells respectively. Apostrophes
// and short hyphens stay word-internal so possessives, contractions and
// hyphenated keywords survive as single words.
const punctRunes = ".,:;—•\"()/+"

// IsPunct reports whether r is an oracle-text punctuation rune.
func IsPunct(r rune) bool {
	return strings.ContainsRune(punctRunes, r)
}
