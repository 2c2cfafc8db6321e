package tagger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
	"github.com/TemporalInept/lituus/pkg/mtgl/tagger"
)

func newTagger(t *testing.T) *tagger.Tagger {
	t.Helper()

	return tagger.New(symbol.Default())
}

// categoriesOf drops space spans and returns the remaining categories in order.
func categoriesOf(text tagger.Text) []symbol.Category {
	var cats []symbol.Category

	for _, s := range text.Spans {
		if s.Category == symbol.Space {
			continue
		}

		cats = append(cats, s.Category)
	}

	return cats
}

func TestTag_SimpleManaAbility(t *testing.T) {
	t.Parallel()

	text := newTagger(t).Tag("Add {B}{B}{B}.")

	require.Equal(t, []symbol.Category{
		symbol.Action, symbol.Mana, symbol.Punctuation,
	}, categoriesOf(text))

	assert.Equal(t, "add", text.Spans[0].Value)
	assert.Equal(t, "{b}{b}{b}", text.Spans[2].Value)
	assert.Equal(t, "b,b,b", text.Spans[2].Attrs["symbols"])
}

func TestTag_Reconstruction(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Add {B}{B}{B}.",
		"Flying, first strike",
		"When this creature dies, draw a card.",
		"{T}: Add {G}. (Reminder text goes here.)",
		"Sacrifice a creature: Gromp deals 2 damage to any target.",
		"Completely novel gibberish phrasing!!",
		"",
		"   leading and trailing   ",
		"Snow-covered lands — weird punctuation • everywhere",
	}

	tg := newTagger(t)

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			t.Parallel()

			text := tg.Tag(line)
			assert.Equal(t, line, text.Reconstruct())

			// Spans tile the source with no gaps.
			pos := 0
			for _, s := range text.Spans {
				require.Equal(t, pos, s.Start)
				require.Equal(t, line[s.Start:s.End], s.Text)

				pos = s.End
			}

			assert.Equal(t, len(line), pos)
		})
	}
}

func TestTag_LongestMatchFirst(t *testing.T) {
	t.Parallel()

	// "first strike" must win over "first" alone; "at the beginning of"
	// over "at".
	text := newTagger(t).Tag("first strike at the beginning of combat")

	cats := categoriesOf(text)
	require.GreaterOrEqual(t, len(cats), 2)

	assert.Equal(t, symbol.Keyword, cats[0])
	assert.Equal(t, "first strike", text.Spans[0].Value)

	var trigger *tagger.Span

	for i := range text.Spans {
		if text.Spans[i].Category == symbol.Trigger {
			trigger = &text.Spans[i]
		}
	}

	require.NotNil(t, trigger)
	assert.Equal(t, "at the beginning of", trigger.Value)
}

func TestTag_UnknownDegradesToWord(t *testing.T) {
	t.Parallel()

	text := newTagger(t).Tag("gibberish frobnicates quickly")

	for _, s := range text.Spans {
		if s.Category == symbol.Space {
			continue
		}

		assert.Equal(t, symbol.Word, s.Category, "span %q", s.Text)
	}
}

func TestTag_ReminderTextMarked(t *testing.T) {
	t.Parallel()

	text := newTagger(t).Tag("Deathtouch (Any amount of damage it deals to a creature is enough to destroy it.)")

	var reminder *tagger.Span

	for i := range text.Spans {
		if text.Spans[i].Attrs["reminder"] == "true" {
			reminder = &text.Spans[i]
		}
	}

	require.NotNil(t, reminder)
	assert.Equal(t, byte('('), reminder.Text[0])
	assert.Equal(t, byte(')'), reminder.Text[len(reminder.Text)-1])
	assert.Equal(t, text.Source, text.Reconstruct())
}

func TestTagCard_SelfReference(t *testing.T) {
	t.Parallel()

	tg := newTagger(t)

	text := tg.TagCard("Krenko, Mob Boss", "Krenko deals 2 damage to you.")

	require.NotEmpty(t, text.Spans)
	assert.Equal(t, symbol.Reference, text.Spans[0].Category)
	assert.Equal(t, "self", text.Spans[0].Value)
	assert.Equal(t, "Krenko", text.Spans[0].Text)

	full := tg.TagCard("Krenko, Mob Boss", "Sacrifice Krenko, Mob Boss: draw a card.")
	assert.Equal(t, full.Source, full.Reconstruct())
}

func TestTag_NumberWords(t *testing.T) {
	t.Parallel()

	text := newTagger(t).Tag("draw three cards")

	var number *tagger.Span

	for i := range text.Spans {
		if text.Spans[i].Category == symbol.Number {
			number = &text.Spans[i]
		}
	}

	require.NotNil(t, number)
	assert.Equal(t, "3", number.Value)
	assert.Equal(t, "three", number.Text)
}

func TestTag_Idempotent(t *testing.T) {
	t.Parallel()

	tg := newTagger(t)
	line := "When this creature dies, each opponent sacrifices a creature."

	first := tg.Tag(line)
	second := tg.Tag(line)

	assert.Equal(t, first, second)
}
