package source

import (
	"bytes"
	"testing"
)

func TestWithMarkerInsertsAtOffset(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		offset   uint32
		want     string
		adjusted uint32
	}{
		{"start", "abc", 0, "\x00abc", 0},
		{"middle", "abc", 1, "a\x00bc", 1},
		{"end", "abc", 3, "abc\x00", 3},
		{"clamped past end", "abc", 99, "abc\x00", 3},
		{"empty buffer", "", 0, "\x00", 0},
		{"empty buffer clamped", "", 7, "\x00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived, adjusted := WithMarker([]byte(tt.content), tt.offset)
			if !bytes.Equal(derived, []byte(tt.want)) {
				t.Errorf("derived = %q, want %q", derived, tt.want)
			}
			if adjusted != tt.adjusted {
				t.Errorf("adjusted = %d, want %d", adjusted, tt.adjusted)
			}
		})
	}
}

func TestWithMarkerRespectsRuneBoundaries(t *testing.T) {
	// "héllo": 'é' is two bytes (0xC3 0xA9) at offsets 1-2. An offset that
	// lands on the continuation byte must back up to the rune start.
	content := []byte("héllo")
	derived, adjusted := WithMarker(content, 2)
	if adjusted != 1 {
		t.Fatalf("adjusted = %d, want 1", adjusted)
	}
	want := append([]byte("h\x00"), []byte("éllo")...)
	if !bytes.Equal(derived, want) {
		t.Errorf("derived = %q, want %q", derived, want)
	}
}

func TestWithMarkerDoesNotMutateInput(t *testing.T) {
	content := []byte("abc")
	WithMarker(content, 1)
	if !bytes.Equal(content, []byte("abc")) {
		t.Errorf("input mutated: %q", content)
	}
}
