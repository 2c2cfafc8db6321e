package persist

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec wraps another codec with LZ4 frame compression. Parse-tree JSON
// is highly repetitive (labels and attribute keys recur on every node), so
// corpus-sized caches shrink well under it.
type LZ4Codec struct {
	inner Codec
}

// NewLZ4Codec wraps the given codec with LZ4 compression.
func NewLZ4Codec(inner Codec) *LZ4Codec {
	return &LZ4Codec{inner: inner}
}

// Encode implements Codec.Encode, compressing the inner codec's output.
func (c *LZ4Codec) Encode(w io.Writer, value any) error {
	zw := lz4.NewWriter(w)

	err := c.inner.Encode(zw, value)
	if err != nil {
		return fmt.Errorf("lz4 encode: %w", err)
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("lz4 flush: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode, decompressing before the inner codec reads.
func (c *LZ4Codec) Decode(r io.Reader, value any) error {
	err := c.inner.Decode(lz4.NewReader(r), value)
	if err != nil {
		return fmt.Errorf("lz4 decode: %w", err)
	}

	return nil
}

// Extension implements Codec.Extension by appending ".lz4" to the inner
// codec's extension.
func (c *LZ4Codec) Extension() string {
	return c.inner.Extension() + lz4Suffix
}
