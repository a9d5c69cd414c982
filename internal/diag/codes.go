package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntactic
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectIdent     Code = 2002
	SynExpectType      Code = 2003
	SynExpectLBrace    Code = 2004
	SynExpectRBrace    Code = 2005
	SynExpectRParen    Code = 2006
	SynStrayMarker     Code = 2007

	// Semantic
	SemaInfo             Code = 3000
	SemaUnresolvedType   Code = 3001
	SemaUnresolvedSymbol Code = 3002
	SemaDuplicateSymbol  Code = 3003
	SemaNotAProtocol     Code = 3004

	// Front-end / IO
	IOLoadFileError Code = 4001
)

func (c Code) String() string {
	return fmt.Sprintf("GL%04d", uint16(c))
}
