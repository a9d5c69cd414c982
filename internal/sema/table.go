package sema

import (
	"glint/internal/ast"
	"glint/internal/source"
	"glint/internal/types"
)

// Member is one accessible member of a nominal type: a method, a stored
// property, or an enum case. Members synthesized from protocol obligations
// carry the protocol's name in FromProtocol.
type Member struct {
	Name   string
	Decl   ast.Decl // *ast.FuncDecl, *ast.VarDecl or *ast.EnumCaseDecl
	Owner  *TypeInfo
	Static bool
	Origin ast.Origin
	Doc    string
	// Type is the member interface type: the function type for methods, the
	// annotated type for properties, the owner type for enum cases.
	Type types.Type
	// FromProtocol names the protocol whose requirement produced this member
	// (empty for members written directly on the type or its extensions).
	FromProtocol string
	// File is the declaring file's path; foreign members resolve briefs
	// through its sidecar doc store.
	File string
}

// IsMethod reports whether the member is callable.
func (m *Member) IsMethod() bool {
	_, ok := m.Decl.(*ast.FuncDecl)
	return ok
}

// ResultType is the method result type, or the member type itself for
// non-methods. This is the "resolved type" facet of a candidate.
func (m *Member) ResultType() types.Type {
	if ft, ok := m.Type.(*types.Func); ok {
		return ft.Result
	}
	return m.Type
}

// TypeInfo is the semantic record for one nominal type.
type TypeInfo struct {
	Name     string
	Kind     types.NominalKind
	Type     *types.Nominal
	Decl     ast.Decl
	Span     source.Span
	Doc      string
	Conforms []string // declared conformances, including via extensions
	Members  []*Member
}

// ConformsDirectly reports a declared conformance to the named protocol.
func (ti *TypeInfo) ConformsDirectly(name string) bool {
	for _, c := range ti.Conforms {
		if c == name {
			return true
		}
	}
	return false
}

// Find returns the first member with the given name.
func (ti *TypeInfo) Find(name string) (*Member, bool) {
	for _, m := range ti.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// FuncInfo is a top-level function.
type FuncInfo struct {
	Decl *ast.FuncDecl
	Type *types.Func
	File string
}

// Globals is the name-binding table produced by Bind. It is part of the
// persistent parser state: the second pass reads it, never rebuilds it.
type Globals struct {
	FileSet *source.FileSet
	Files   []*ast.File

	Types map[string]*TypeInfo
	Funcs map[string]*FuncInfo
	Vars  map[string]types.Type

	typeOrder []string
}

// Resolve maps a written type name to its semantic type.
func (g *Globals) Resolve(name string) types.Type {
	if name == "" {
		return types.Void
	}
	if b, ok := types.Builtin(name); ok {
		return b
	}
	if ti, ok := g.Types[name]; ok {
		return ti.Type
	}
	return types.Unresolved(name)
}

// TypeInfoOf returns the TypeInfo behind a type, when it is a declared
// nominal.
func (g *Globals) TypeInfoOf(t types.Type) (*TypeInfo, bool) {
	n, ok := t.(*types.Nominal)
	if !ok {
		return nil, false
	}
	ti, ok := g.Types[n.Name]
	return ti, ok
}

// ConformsTo reports whether t satisfies the expected type name: either the
// spelling matches exactly, or t's declaration conforms to the named
// protocol (transitively through protocol inheritance).
func (g *Globals) ConformsTo(t types.Type, expected string) bool {
	if t == nil {
		return false
	}
	if t.String() == expected {
		return true
	}
	ti, ok := g.TypeInfoOf(t)
	if !ok {
		return false
	}
	seen := map[string]bool{}
	var walk func(names []string) bool
	walk = func(names []string) bool {
		for _, n := range names {
			if n == expected {
				return true
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			if p, ok := g.Types[n]; ok && p.Kind == types.KindProtocol {
				if walk(p.Conforms) {
					return true
				}
			}
		}
		return false
	}
	return walk(ti.Conforms)
}
