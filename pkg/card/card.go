// Package card defines the input record for the oracle-text pipeline and
// loads card corpora from JSON files with schema validation.
package card

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Card is one card's pipeline input. Lines holds the oracle text split
// into ability lines, in printed order.
type Card struct {
	Name     string   `json:"name"`
	Lines    []string `json:"lines"`
	Types    []string `json:"types,omitempty"`
	ManaCost string   `json:"mana_cost,omitempty"`
}

// Card validation errors.
var (
	ErrNoName     = errors.New("card has no name")
	ErrNoLines    = errors.New("card has no oracle text lines")
	ErrEmptyLine  = errors.New("card has an empty oracle text line")
	ErrCorpusFile = errors.New("corpus failed schema validation")
)

// ValidationError reports a card that cannot enter the pipeline. The
// batch loader collects these instead of failing the whole corpus.
type ValidationError struct {
	Name  string
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("card %d: %v", e.Index, e.Err)
	}

	return fmt.Sprintf("card %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the card for pipeline preconditions. Vanilla creatures
// have no oracle text and are rejected here; they have nothing to parse.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNoName
	}

	if len(c.Lines) == 0 {
		return ErrNoLines
	}

	for _, line := range c.Lines {
		if strings.TrimSpace(line) == "" {
			return ErrEmptyLine
		}
	}

	return nil
}

//go:embed corpus_schema.json
var corpusSchemaJSON string

// LoadFile reads a JSON card corpus. The file is validated against the
// embedded schema first, then each card is validated individually;
// per-card rejects are returned alongside the cards that passed, so one
// bad record never discards a corpus.
func LoadFile(path string) ([]Card, []*ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates corpus JSON bytes.
func Parse(data []byte) ([]Card, []*ValidationError, error) {
	schemaLoader := gojsonschema.NewStringLoader(corpusSchemaJSON)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, nil, fmt.Errorf("validate corpus: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}

		return nil, nil, fmt.Errorf("%w: %s", ErrCorpusFile, strings.Join(msgs, "; "))
	}

	var cards []Card

	err = json.Unmarshal(data, &cards)
	if err != nil {
		return nil, nil, fmt.Errorf("decode corpus: %w", err)
	}

	valid := make([]Card, 0, len(cards))

	var rejects []*ValidationError

	for i, c := range cards {
		err = c.Validate()
		if err != nil {
			rejects = append(rejects, &ValidationError{Name: c.Name, Index: i, Err: err})

			continue
		}

		valid = append(valid, c)
	}

	return valid, rejects, nil
}
