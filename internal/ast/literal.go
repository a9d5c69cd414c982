package ast

import "glint/internal/source"

// LiteralExpr covers int and string literals. Only their types matter to the
// query pipeline (argument positions around a marker).
type LiteralExpr struct {
	Text     string
	IsString bool
	Span     source.Span
}

func (e *LiteralExpr) ExprSpan() source.Span { return e.Span }
