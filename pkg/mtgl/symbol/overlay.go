package symbol

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Overlay extends the built-in vocabulary with entries discovered after a
// catalog release: new sets introduce subtypes, keywords and ability words
// faster than the built-in lists are revised.
type Overlay struct {
	Version string         `yaml:"version" json:"version"`
	Entries []OverlayEntry `yaml:"entries" json:"entries"`
}

// OverlayEntry is one vocabulary addition.
type OverlayEntry struct {
	Phrase   string            `yaml:"phrase"             json:"phrase"`
	Category Category          `yaml:"category"           json:"category"`
	Value    string            `yaml:"value,omitempty"    json:"value,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"    json:"attrs,omitempty"`
}

//go:embed overlay_schema.json
var overlaySchemaJSON string

// Overlay validation errors.
var (
	ErrOverlaySchema   = errors.New("overlay failed schema validation")
	ErrOverlayCategory = errors.New("overlay entry has invalid category")
)

// LoadOverlay reads and validates an overlay YAML file. The document is
// checked against the embedded JSON schema before any entry is trusted, so
// a malformed overlay is rejected whole rather than half-applied.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}

	return ParseOverlay(data)
}

// ParseOverlay parses and validates overlay YAML bytes.
func ParseOverlay(data []byte) (*Overlay, error) {
	// Round-trip through a generic document so the schema validator sees
	// the same shape the YAML decoder produced.
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse overlay yaml: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(overlaySchemaJSON)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate overlay: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrOverlaySchema, strings.Join(msgs, "; "))
	}

	var overlay Overlay

	err = yaml.Unmarshal(data, &overlay)
	if err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}

	for _, e := range overlay.Entries {
		if !e.Category.Valid() {
			return nil, fmt.Errorf("%w: %q for phrase %q", ErrOverlayCategory, e.Category, e.Phrase)
		}
	}

	return &overlay, nil
}

// Merge builds a new catalog containing the base vocabulary plus the
// overlay's entries. The result carries a compound version string so trees
// built with overlays never masquerade as plain-catalog trees. The base
// catalog is not modified.
func Merge(base *Catalog, overlay *Overlay) *Catalog {
	merged := &Catalog{
		version:  base.version + "+" + overlay.Version,
		entries:  make(map[string][]Entry, len(base.entries)+len(overlay.Entries)),
		maxWords: base.maxWords,
	}

	for key, entries := range base.entries {
		merged.entries[key] = append([]Entry(nil), entries...)
	}

	for _, e := range overlay.Entries {
		value := e.Value
		if value == "" {
			value = NormalizePhrase(strings.Fields(e.Phrase))
		}

		merged.add(e.Category, value, e.Attrs, e.Phrase)
	}

	return merged
}
