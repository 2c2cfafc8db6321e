package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Persister handles file I/O for one value type using a Codec. Files are
// named for the value they hold; names are sanitized so card names with
// path-hostile characters stay on one filesystem level.
type Persister[T any] struct {
	dir   string
	codec Codec
}

// NewPersister creates a persister writing under dir with the given codec.
func NewPersister[T any](dir string, codec Codec) *Persister[T] {
	return &Persister[T]{dir: dir, codec: codec}
}

// Save writes value to a file named for name plus the codec extension.
// The directory is created if missing.
func (p *Persister[T]) Save(name string, value *T) error {
	err := os.MkdirAll(p.dir, 0o755)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(p.Path(name))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	err = p.codec.Encode(file, value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	return nil
}

// Load reads the value previously saved under name.
func (p *Persister[T]) Load(name string) (*T, error) {
	file, err := os.Open(p.Path(name))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var value T

	err = p.codec.Decode(file, &value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &value, nil
}

// Path returns the file path a value of the given name maps to.
func (p *Persister[T]) Path(name string) string {
	return filepath.Join(p.dir, sanitize(name)+p.codec.Extension())
}

// sanitize maps a display name onto a safe filename.
func sanitize(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		" ", "_",
		":", "_",
	)

	return strings.ToLower(replacer.Replace(name))
}
