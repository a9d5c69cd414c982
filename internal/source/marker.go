package source

import (
	"fmt"

	"fortio.org/safecast"
)

// MarkerByte is the sentinel spliced into a buffer at the completion offset.
// It can never occur in valid Glint source, so the lexer can surface it as a
// dedicated token without lookahead.
const MarkerByte byte = 0x00

// WithMarker produces the derived buffer for a completion request: the
// original content with MarkerByte inserted at offset. The offset is clamped
// to the buffer length and moved back to the nearest rune boundary; the
// returned offset is the marker's position in the derived buffer.
//
// Deterministic and side-effect free.
func WithMarker(content []byte, offset uint32) (derived []byte, adjusted uint32) {
	n, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("buffer length overflow: %w", err))
	}
	if offset > n {
		offset = n
	}
	// Never split a UTF-8 sequence: back up over continuation bytes.
	for offset > 0 && offset < n && content[offset]&0xC0 == 0x80 {
		offset--
	}
	derived = make([]byte, 0, len(content)+1)
	derived = append(derived, content[:offset]...)
	derived = append(derived, MarkerByte)
	derived = append(derived, content[offset:]...)
	return derived, offset
}
