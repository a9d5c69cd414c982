package token

import (
	"fmt"

	"glint/internal/source"
)

// Token is one lexical token. Text is a view into the source buffer for
// kinds that carry spelling (Ident, Int, String, DocComment).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Span)
}
