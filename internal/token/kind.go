package token

// Kind identifies a lexical token class.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Ident
	Int
	String

	// Marker is the spliced completion sentinel (source.MarkerByte).
	Marker
	// DocComment is a `///` comment; the parser attaches it to the following
	// declaration.
	DocComment

	LParen
	RParen
	LBrace
	RBrace
	Colon
	Comma
	Dot
	Arrow // ->
	Equal

	KwProtocol
	KwStruct
	KwEnum
	KwExtension
	KwFunc
	KwCase
	KwLet
	KwVar
	KwStatic
	KwExtern
	KwImport
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "ident",
	Int:         "int",
	String:      "string",
	Marker:      "marker",
	DocComment:  "doc-comment",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	Colon:       ":",
	Comma:       ",",
	Dot:         ".",
	Arrow:       "->",
	Equal:       "=",
	KwProtocol:  "protocol",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwExtension: "extension",
	KwFunc:      "func",
	KwCase:      "case",
	KwLet:       "let",
	KwVar:       "var",
	KwStatic:    "static",
	KwExtern:    "extern",
	KwImport:    "import",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"protocol":  KwProtocol,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"extension": KwExtension,
	"func":      KwFunc,
	"case":      KwCase,
	"let":       KwLet,
	"var":       KwVar,
	"static":    KwStatic,
	"extern":    KwExtern,
	"import":    KwImport,
}

// LookupKeyword returns the keyword kind for an identifier spelling, if any.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
