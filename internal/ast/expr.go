package ast

import (
	"glint/internal/source"
)

// Expr is any expression node. The expression grammar exists to locate and
// classify the completion marker; it is deliberately small.
type Expr interface {
	ExprSpan() source.Span
}

type IdentExpr struct {
	Name string
	Span source.Span
}

type MemberExpr struct {
	Base Expr
	Name string // empty when the member position holds the marker
	Span source.Span
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   source.Span
}

// MarkerExpr is the completion marker in expression position.
type MarkerExpr struct {
	Span source.Span
}

func (e *IdentExpr) ExprSpan() source.Span  { return e.Span }
func (e *MemberExpr) ExprSpan() source.Span { return e.Span }
func (e *CallExpr) ExprSpan() source.Span   { return e.Span }
func (e *MarkerExpr) ExprSpan() source.Span { return e.Span }
