package sema

import (
	"glint/internal/ast"
	"glint/internal/types"
)

// ContextKind classifies where the completion marker landed.
type ContextKind uint8

const (
	// ContextNone: the marker is outside any analyzable position. Queries
	// yield zero candidates; this is a valid outcome, not an error.
	ContextNone ContextKind = iota
	// ContextMemberAccess: expr.<marker>
	ContextMemberAccess
	// ContextCallArg: f(<marker>) or f(a, <marker>) or f(.<marker>)
	ContextCallArg
	// ContextTypeBody: the marker sits among the members of a type body.
	ContextTypeBody
)

func (k ContextKind) String() string {
	switch k {
	case ContextMemberAccess:
		return "member-access"
	case ContextCallArg:
		return "call-argument"
	case ContextTypeBody:
		return "type-body"
	default:
		return "none"
	}
}

// MarkerContext is the resolved semantic context at the marker.
type MarkerContext struct {
	Kind ContextKind

	// BaseType is the static type at the marker: the member-access base's
	// type, or the enclosing nominal type for a type-body marker.
	BaseType *TypeInfo
	// StaticAccess marks a member access whose base is the type itself
	// (Color.<marker>), so only static members apply.
	StaticAccess bool

	// Call-argument context.
	CalleeName string
	Callee     *FuncInfo
	ArgIndex   int
	// ParamType is the statically expected type at the argument position,
	// nil when the callee or position cannot be resolved.
	ParamType types.Type
}

// FindMarkerContext locates the completion marker in the persistent parse
// trees and resolves its context. Exactly one marker exists per derived
// buffer; the first hit wins.
func FindMarkerContext(g *Globals) (MarkerContext, bool) {
	for _, f := range g.Files {
		for _, d := range f.Decls {
			if cx, ok := markerInDecl(g, d); ok {
				return cx, true
			}
		}
		for _, e := range f.Code {
			if cx, ok := markerInExpr(g, e, nil, 0); ok {
				return cx, true
			}
		}
	}
	return MarkerContext{}, false
}

func markerInDecl(g *Globals, d ast.Decl) (MarkerContext, bool) {
	typeBody := func(name string, members []ast.Decl) (MarkerContext, bool) {
		for _, m := range members {
			if _, ok := m.(*ast.MarkerDecl); ok {
				if ti, ok := g.Types[name]; ok {
					return MarkerContext{Kind: ContextTypeBody, BaseType: ti}, true
				}
				return MarkerContext{}, true
			}
		}
		return MarkerContext{}, false
	}
	switch d := d.(type) {
	case *ast.StructDecl:
		if cx, ok := typeBody(d.Name, d.Members); ok {
			return cx, cx.Kind != ContextNone
		}
	case *ast.EnumDecl:
		if cx, ok := typeBody(d.Name, d.Members); ok {
			return cx, cx.Kind != ContextNone
		}
	case *ast.ExtensionDecl:
		if cx, ok := typeBody(d.Name, d.Members); ok {
			return cx, cx.Kind != ContextNone
		}
	}
	return MarkerContext{}, false
}

// markerInExpr walks an expression looking for the marker. parentCall and
// argIdx carry the innermost call-argument position across the descent.
func markerInExpr(g *Globals, e ast.Expr, parentCall *ast.CallExpr, argIdx int) (MarkerContext, bool) {
	switch e := e.(type) {
	case *ast.MarkerExpr:
		if parentCall != nil {
			return callArgContext(g, parentCall, argIdx), true
		}
		return MarkerContext{}, false
	case *ast.MemberExpr:
		if e.Name == "" {
			// Marker in member position.
			if e.Base == nil {
				// Leading-dot marker: expected type comes from the argument
				// position, same as a bare call-argument marker.
				if parentCall != nil {
					return callArgContext(g, parentCall, argIdx), true
				}
				return MarkerContext{}, false
			}
			baseTy, static := typeOfExpr(g, e.Base)
			ti, ok := g.TypeInfoOf(baseTy)
			if !ok {
				// Unresolvable base: valid query, zero candidates.
				return MarkerContext{Kind: ContextNone}, true
			}
			return MarkerContext{Kind: ContextMemberAccess, BaseType: ti, StaticAccess: static}, true
		}
		if e.Base != nil {
			return markerInExpr(g, e.Base, nil, 0)
		}
	case *ast.CallExpr:
		if cx, ok := markerInExpr(g, e.Callee, nil, 0); ok {
			return cx, true
		}
		for i, a := range e.Args {
			if cx, ok := markerInExpr(g, a, e, i); ok {
				return cx, true
			}
		}
	}
	return MarkerContext{}, false
}

func callArgContext(g *Globals, call *ast.CallExpr, argIdx int) MarkerContext {
	cx := MarkerContext{Kind: ContextCallArg, ArgIndex: argIdx}
	switch callee := call.Callee.(type) {
	case *ast.IdentExpr:
		cx.CalleeName = callee.Name
		if fi, ok := g.Funcs[callee.Name]; ok {
			cx.Callee = fi
			if argIdx < len(fi.Type.Params) {
				cx.ParamType = fi.Type.Params[argIdx]
			}
		}
	case *ast.MemberExpr:
		// Static factory or method call: resolve through the base type.
		cx.CalleeName = callee.Name
		baseTy, _ := typeOfExpr(g, callee.Base)
		if ti, ok := g.TypeInfoOf(baseTy); ok {
			if m, ok := ti.Find(callee.Name); ok {
				if ft, ok := m.Type.(*types.Func); ok && argIdx < len(ft.Params) {
					cx.ParamType = ft.Params[argIdx]
				}
			}
		}
	}
	return cx
}

// typeOfExpr computes the static type of a base expression. The second
// result reports a static access (the expression names a type rather than a
// value).
func typeOfExpr(g *Globals, e ast.Expr) (types.Type, bool) {
	switch e := e.(type) {
	case *ast.IdentExpr:
		if t, ok := g.Vars[e.Name]; ok {
			return t, false
		}
		if ti, ok := g.Types[e.Name]; ok {
			return ti.Type, true
		}
		return nil, false
	case *ast.LiteralExpr:
		if e.IsString {
			return types.String, false
		}
		return types.Int, false
	case *ast.MemberExpr:
		if e.Base == nil || e.Name == "" {
			return nil, false
		}
		baseTy, _ := typeOfExpr(g, e.Base)
		if ti, ok := g.TypeInfoOf(baseTy); ok {
			if m, ok := ti.Find(e.Name); ok {
				return m.Type, false
			}
		}
		return nil, false
	case *ast.CallExpr:
		switch callee := e.Callee.(type) {
		case *ast.IdentExpr:
			if fi, ok := g.Funcs[callee.Name]; ok {
				return fi.Type.Result, false
			}
		case *ast.MemberExpr:
			t, _ := typeOfExpr(g, callee)
			if ft, ok := t.(*types.Func); ok {
				return ft.Result, false
			}
		}
		return nil, false
	}
	return nil, false
}
