package lexer

import (
	"testing"

	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/token"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.gl", []byte(content))
	return fs.Get(id)
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokensFuncHeader(t *testing.T) {
	file := createFile("func f(x: Int) -> Int { }")
	toks := Tokens(file, Options{})

	want := []token.Kind{
		token.KwFunc, token.Ident, token.LParen, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Arrow, token.Ident,
		token.LBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[1].Text != "f" {
		t.Errorf("func name text = %q, want %q", toks[1].Text, "f")
	}
}

func TestMarkerByteBecomesMarkerToken(t *testing.T) {
	file := createFile("s.\x00")
	toks := Tokens(file, Options{})

	want := []token.Kind{token.Ident, token.Dot, token.Marker, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[2].Span.Start != 2 || toks[2].Span.End != 3 {
		t.Errorf("marker span = %s, want 2-3", toks[2].Span)
	}
}

func TestCommentsAreTriviaDocCommentsAreTokens(t *testing.T) {
	file := createFile("// plain\n/// brief text\nfunc")
	toks := Tokens(file, Options{})

	want := []token.Kind{token.DocComment, token.KwFunc, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[0].Text != "brief text" {
		t.Errorf("doc text = %q, want %q", toks[0].Text, "brief text")
	}
}

func TestStringAndNumberLiterals(t *testing.T) {
	file := createFile(`f("hi", 42)`)
	toks := Tokens(file, Options{})

	want := []token.Kind{
		token.Ident, token.LParen, token.String, token.Comma,
		token.Int, token.RParen, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[2].Text != `"hi"` {
		t.Errorf("string text = %q, want %q", toks[2].Text, `"hi"`)
	}
	if toks[4].Text != "42" {
		t.Errorf("int text = %q, want %q", toks[4].Text, "42")
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	bag := diag.NewBag(10)
	file := createFile("\"oops")
	Tokens(file, Options{Reporter: diag.BagReporter{Bag: bag}})

	if !bag.HasErrors() {
		t.Fatal("expected an error for unterminated string")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code = %s, want %s", bag.Items()[0].Code, diag.LexUnterminatedString)
	}
}

func TestUnknownCharReported(t *testing.T) {
	bag := diag.NewBag(10)
	file := createFile("func §")
	Tokens(file, Options{Reporter: diag.BagReporter{Bag: bag}})

	if !bag.HasErrors() {
		t.Fatal("expected an error for unknown character")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %s, want %s", bag.Items()[0].Code, diag.LexUnknownChar)
	}
}
