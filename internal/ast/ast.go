package ast

import (
	"glint/internal/source"
)

// Origin distinguishes declarations written in Glint from declarations
// imported through foreign-interop headers. Brief documentation resolves
// differently per origin (see internal/docs).
type Origin uint8

const (
	OriginNative Origin = iota
	OriginForeign
)

func (o Origin) String() string {
	if o == OriginForeign {
		return "foreign"
	}
	return "native"
}

// File is one parsed source file.
type File struct {
	Path  string
	ID    source.FileID
	Decls []Decl
	// Code holds top-level expression statements, in source order.
	Code []Expr
}

// Decl is any declaration node.
type Decl interface {
	DeclName() string
	DeclSpan() source.Span
}

// TypeExpr is a written type reference. Only named types exist in Glint.
type TypeExpr struct {
	Name string
	Span source.Span
}

// IsZero reports an absent type annotation.
func (t TypeExpr) IsZero() bool { return t.Name == "" }

type ProtocolDecl struct {
	Name     string
	Span     source.Span
	Doc      string
	Inherits []string
	Reqs     []*FuncDecl
}

type StructDecl struct {
	Name     string
	Span     source.Span
	BodySpan source.Span
	Doc      string
	Conforms []string
	Members  []Decl
}

type EnumDecl struct {
	Name     string
	Span     source.Span
	BodySpan source.Span
	Doc      string
	Conforms []string
	Cases    []*EnumCaseDecl
	Members  []Decl
}

type EnumCaseDecl struct {
	Name string
	Span source.Span
	Doc  string
}

type ExtensionDecl struct {
	Name     string // extended type
	Span     source.Span
	BodySpan source.Span
	Conforms []string
	Members  []Decl
}

type Param struct {
	Name string
	Type TypeExpr
	Span source.Span
}

type FuncDecl struct {
	Name   string
	Span   source.Span
	Doc    string
	Params []Param
	Result TypeExpr // zero value means Void
	Static bool
	Origin Origin
}

type VarDecl struct {
	Name   string
	Span   source.Span
	Doc    string
	Type   TypeExpr
	Let    bool
	Static bool
	Origin Origin
}

type ImportDecl struct {
	Path string
	Span source.Span
}

// MarkerDecl records a completion marker that appeared among the members of
// a type body. It is the type-body marker context.
type MarkerDecl struct {
	Span source.Span
}

func (d *ProtocolDecl) DeclName() string  { return d.Name }
func (d *StructDecl) DeclName() string    { return d.Name }
func (d *EnumDecl) DeclName() string      { return d.Name }
func (d *EnumCaseDecl) DeclName() string  { return d.Name }
func (d *ExtensionDecl) DeclName() string { return d.Name }
func (d *FuncDecl) DeclName() string      { return d.Name }
func (d *VarDecl) DeclName() string       { return d.Name }
func (d *ImportDecl) DeclName() string    { return d.Path }
func (d *MarkerDecl) DeclName() string    { return "" }

func (d *ProtocolDecl) DeclSpan() source.Span  { return d.Span }
func (d *StructDecl) DeclSpan() source.Span    { return d.Span }
func (d *EnumDecl) DeclSpan() source.Span      { return d.Span }
func (d *EnumCaseDecl) DeclSpan() source.Span  { return d.Span }
func (d *ExtensionDecl) DeclSpan() source.Span { return d.Span }
func (d *FuncDecl) DeclSpan() source.Span      { return d.Span }
func (d *VarDecl) DeclSpan() source.Span       { return d.Span }
func (d *ImportDecl) DeclSpan() source.Span    { return d.Span }
func (d *MarkerDecl) DeclSpan() source.Span    { return d.Span }
