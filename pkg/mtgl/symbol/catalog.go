package symbol

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel lookup errors.
var (
	ErrUnknown   = errors.New("phrase not in catalog")
	ErrAmbiguous = errors.New("phrase is ambiguous")
)

// Entry is the classification the catalog returns for a recognized phrase.
type Entry struct {
	Category Category
	// Value is the canonical form downstream stages key on; surface
	// variants of one vocabulary item share a Value.
	Value string
	// Attrs carries per-entry metadata (e.g. a keyword's rule class).
	Attrs map[string]string
}

// Catalog is an immutable, versioned registry of recognized vocabulary.
// Build one with Default and extend it with Merge; concurrent lookups need
// no synchronization.
type Catalog struct {
	version  string
	entries  map[string][]Entry
	maxWords int
}

// Version returns the catalog version identifier. Trees produced from this
// catalog are stamped with it, so results built under different vocabulary
// versions are never compared as equivalent.
func (c *Catalog) Version() string { return c.version }

// MaxPhraseWords returns the word length of the longest registered phrase.
// The tagger uses it to bound its longest-match-first window.
func (c *Catalog) MaxPhraseWords() int { return c.maxWords }

// Lookup classifies a candidate phrase. The phrase is normalized before
// lookup, so callers may pass surface text. An unknown phrase returns
// ErrUnknown; a phrase registered under more than one category returns
// ErrAmbiguous naming every candidate, never a silent first-match winner.
func (c *Catalog) Lookup(phrase string) (Entry, error) {
	key := NormalizePhrase(strings.Fields(phrase))

	candidates := c.entries[key]
	switch len(candidates) {
	case 0:
		if IsNumber(key) {
			return Entry{Category: Number, Value: key}, nil
		}

		return Entry{}, fmt.Errorf("%q: %w", phrase, ErrUnknown)
	case 1:
		return candidates[0], nil
	default:
		cats := make([]string, len(candidates))
		for i, e := range candidates {
			cats[i] = string(e.Category)
		}

		sort.Strings(cats)

		return Entry{}, fmt.Errorf("%q matches %s: %w", phrase, strings.Join(cats, ", "), ErrAmbiguous)
	}
}

// Size returns the number of distinct registered phrases.
func (c *Catalog) Size() int { return len(c.entries) }

// add registers one canonical value with the given surface phrases. When
// phrases is empty the canonical value is its own surface form. Duplicate
// registrations under different categories accumulate and surface as
// ErrAmbiguous at lookup time.
func (c *Catalog) add(cat Category, value string, attrs map[string]string, phrases ...string) {
	if len(phrases) == 0 {
		phrases = []string{value}
	}

	for _, p := range phrases {
		key := NormalizePhrase(strings.Fields(p))

		for _, existing := range c.entries[key] {
			if existing.Category == cat {
				return
			}
		}

		c.entries[key] = append(c.entries[key], Entry{Category: cat, Value: value, Attrs: attrs})

		if n := len(strings.Fields(key)); n > c.maxWords {
			c.maxWords = n
		}
	}
}

// DefaultVersion identifies the built-in vocabulary. Bump it whenever the
// lists in data.go change.
const DefaultVersion = "mtgl-2020.05"

// Default builds the catalog of built-in vocabulary.
func Default() *Catalog {
	c := &Catalog{
		version: DefaultVersion,
		entries: make(map[string][]Entry, 512),
	}

	for _, kw := range keywords {
		c.add(Keyword, kw, nil)
	}

	for _, aw := range abilityWords {
		c.add(AbilityWord, aw, nil)
	}

	for _, a := range keywordActions {
		c.add(Action, a, map[string]string{"class": "keyword-action"})
	}

	for _, a := range commonActions {
		c.add(Action, a, nil)
	}

	for _, z := range zones {
		c.add(Zone, z, nil)
	}

	for _, r := range references {
		c.add(Reference, r, nil)
	}

	for _, q := range qualities {
		c.add(Quality, q, nil)
	}

	for _, s := range statuses {
		c.add(Status, s, nil)
	}

	for _, t := range triggerWords {
		c.add(Trigger, t, nil)
	}

	for _, cond := range conditionWords {
		c.add(Condition, cond, nil)
	}

	for _, s := range sequenceWords {
		c.add(Sequence, s, nil)
	}

	for _, q := range quantifiers {
		c.add(Quantifier, q, nil)
	}

	return c
}
