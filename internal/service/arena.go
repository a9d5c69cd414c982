package service

import (
	"fmt"

	"fortio.org/safecast"
)

// Span addresses a substring of an Arena: the projection phase records every
// textual facet this way instead of allocating per-candidate strings.
type Span struct {
	Off uint32
	Len uint32
}

// Arena is the single append-only text buffer shared by all facets of one
// packed result. It is owned exclusively by the query that created it and
// must stay alive until the consumer adapter finishes materializing.
type Arena struct {
	buf []byte
}

// Append copies s into the arena and returns its span. Appends never move
// existing spans; the buffer only grows.
func (a *Arena) Append(s string) Span {
	off, err := safecast.Conv[uint32](len(a.buf))
	if err != nil {
		panic(fmt.Errorf("arena offset overflow: %w", err))
	}
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("arena span overflow: %w", err))
	}
	a.buf = append(a.buf, s...)
	return Span{Off: off, Len: n}
}

// View materializes a span back into a string. This is the boundary step:
// the result leaving the arena is an owned string with its own lifetime.
func (a *Arena) View(sp Span) string {
	return string(a.buf[sp.Off : sp.Off+sp.Len])
}

// Len returns the number of bytes packed so far.
func (a *Arena) Len() int {
	return len(a.buf)
}
