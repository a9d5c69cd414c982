package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/token"
)

// Options configure a lexer.
type Options struct {
	Reporter diag.Reporter
}

// Lexer produces tokens from one source file. The completion marker byte is
// surfaced as token.Marker so the parser can record the completion position.
type Lexer struct {
	file     *source.File
	pos      uint32
	reporter diag.Reporter
}

func New(file *source.File, opts Options) *Lexer {
	r := opts.Reporter
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Lexer{file: file, reporter: r}
}

// Tokens drains the lexer into a slice, ending with EOF.
func Tokens(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token.
func (lx *Lexer) Next() token.Token {
	lx.skipSpaceAndComments()
	start := lx.pos
	b, ok := lx.peekByte()
	if !ok {
		return lx.make(token.EOF, start, "")
	}

	switch {
	case b == source.MarkerByte:
		lx.pos++
		return lx.make(token.Marker, start, "")
	case b == '(':
		lx.pos++
		return lx.make(token.LParen, start, "")
	case b == ')':
		lx.pos++
		return lx.make(token.RParen, start, "")
	case b == '{':
		lx.pos++
		return lx.make(token.LBrace, start, "")
	case b == '}':
		lx.pos++
		return lx.make(token.RBrace, start, "")
	case b == ':':
		lx.pos++
		return lx.make(token.Colon, start, "")
	case b == ',':
		lx.pos++
		return lx.make(token.Comma, start, "")
	case b == '.':
		lx.pos++
		return lx.make(token.Dot, start, "")
	case b == '=':
		lx.pos++
		return lx.make(token.Equal, start, "")
	case b == '-':
		if nb, ok := lx.byteAt(lx.pos + 1); ok && nb == '>' {
			lx.pos += 2
			return lx.make(token.Arrow, start, "")
		}
		lx.pos++
		lx.reporter.Report(diag.LexUnknownChar, diag.SevError,
			source.Span{File: lx.file.ID, Start: start, End: lx.pos},
			"unexpected character '-'")
		return lx.make(token.Invalid, start, "")
	case b == '/':
		// skipSpaceAndComments leaves only doc comments (///) in place.
		if nb, ok := lx.byteAt(lx.pos + 1); ok && nb == '/' {
			return lx.lexDocComment(start)
		}
		lx.pos++
		lx.reporter.Report(diag.LexUnknownChar, diag.SevError,
			source.Span{File: lx.file.ID, Start: start, End: lx.pos},
			"unexpected character '/'")
		return lx.make(token.Invalid, start, "")
	case b == '"':
		return lx.lexString(start)
	case b >= '0' && b <= '9':
		return lx.lexNumber(start)
	}

	r, size := utf8.DecodeRune(lx.file.Content[lx.pos:])
	if r == '_' || unicode.IsLetter(r) {
		return lx.lexIdent(start)
	}
	lx.pos += mustU32(size)
	lx.reporter.Report(diag.LexUnknownChar, diag.SevError,
		source.Span{File: lx.file.ID, Start: start, End: lx.pos},
		fmt.Sprintf("unexpected character %q", r))
	return lx.make(token.Invalid, start, "")
}

func (lx *Lexer) skipSpaceAndComments() {
	for {
		b, ok := lx.peekByte()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			lx.pos++
		case '/':
			nb, ok := lx.byteAt(lx.pos + 1)
			if !ok || nb != '/' {
				return
			}
			// Doc comments (///) are tokens; plain line comments are trivia.
			if db, ok := lx.byteAt(lx.pos + 2); ok && db == '/' {
				return
			}
			for {
				b, ok := lx.peekByte()
				if !ok || b == '\n' {
					break
				}
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) lexIdent(start uint32) token.Token {
	for {
		b, ok := lx.peekByte()
		if !ok {
			break
		}
		if b < utf8.RuneSelf {
			if b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
				lx.pos++
				continue
			}
			break
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		lx.pos += mustU32(size)
	}
	text := string(lx.file.Content[start:lx.pos])
	if kw, ok := token.LookupKeyword(text); ok {
		// Doc-comment token needs the spelling; keywords do not.
		return lx.make(kw, start, "")
	}
	return lx.make(token.Ident, start, text)
}

func (lx *Lexer) lexNumber(start uint32) token.Token {
	for {
		b, ok := lx.peekByte()
		if !ok || b < '0' || b > '9' {
			break
		}
		lx.pos++
	}
	return lx.make(token.Int, start, string(lx.file.Content[start:lx.pos]))
}

func (lx *Lexer) lexString(start uint32) token.Token {
	lx.pos++ // opening quote
	for {
		b, ok := lx.peekByte()
		if !ok || b == '\n' {
			lx.reporter.Report(diag.LexUnterminatedString, diag.SevError,
				source.Span{File: lx.file.ID, Start: start, End: lx.pos},
				"unterminated string literal")
			break
		}
		lx.pos++
		if b == '"' {
			break
		}
	}
	return lx.make(token.String, start, string(lx.file.Content[start:lx.pos]))
}

// Doc comment: three slashes, text runs to end of line. Consecutive doc lines
// are merged by the parser.
func (lx *Lexer) lexDocComment(start uint32) token.Token {
	lx.pos += 3
	textStart := lx.pos
	for {
		b, ok := lx.peekByte()
		if !ok || b == '\n' {
			break
		}
		lx.pos++
	}
	text := string(lx.file.Content[textStart:lx.pos])
	if len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}
	return lx.make(token.DocComment, start, text)
}

func (lx *Lexer) make(kind token.Kind, start uint32, text string) token.Token {
	return token.Token{
		Kind: kind,
		Span: source.Span{File: lx.file.ID, Start: start, End: lx.pos},
		Text: text,
	}
}

func (lx *Lexer) peekByte() (byte, bool) {
	return lx.byteAt(lx.pos)
}

func (lx *Lexer) byteAt(pos uint32) (byte, bool) {
	if int(pos) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[pos], true
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
