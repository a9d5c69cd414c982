package sema

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/source"
	"glint/internal/types"
)

// Bind builds the global name table for a set of parsed files. It is the
// "resolve imports" half of parse-and-resolve-imports: every top-level name
// is registered, extensions are folded into their targets, member types are
// computed, and protocol obligations are synthesized onto conforming types.
func Bind(fset *source.FileSet, files []*ast.File, reporter diag.Reporter) *Globals {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	g := &Globals{
		FileSet: fset,
		Files:   files,
		Types:   make(map[string]*TypeInfo),
		Funcs:   make(map[string]*FuncInfo),
		Vars:    make(map[string]types.Type),
	}
	b := &binder{g: g, reporter: reporter}
	b.registerTypes(files)
	b.applyExtensions(files)
	b.populateMembers()
	b.synthesizeObligations()
	b.registerValues(files)
	return g
}

type binder struct {
	g        *Globals
	reporter diag.Reporter
}

func (b *binder) declareType(ti *TypeInfo) {
	if prev, ok := b.g.Types[ti.Name]; ok {
		b.reporter.Report(diag.SemaDuplicateSymbol, diag.SevError, ti.Span,
			fmt.Sprintf("type %q already declared at %s", ti.Name, prev.Span))
		return
	}
	b.g.Types[ti.Name] = ti
	b.g.typeOrder = append(b.g.typeOrder, ti.Name)
}

func (b *binder) registerTypes(files []*ast.File) {
	for _, f := range files {
		for _, d := range f.Decls {
			switch d := d.(type) {
			case *ast.ProtocolDecl:
				b.declareType(&TypeInfo{
					Name:     d.Name,
					Kind:     types.KindProtocol,
					Type:     &types.Nominal{Kind: types.KindProtocol, Name: d.Name},
					Decl:     d,
					Span:     d.Span,
					Doc:      d.Doc,
					Conforms: append([]string(nil), d.Inherits...),
				})
			case *ast.StructDecl:
				b.declareType(&TypeInfo{
					Name:     d.Name,
					Kind:     types.KindStruct,
					Type:     &types.Nominal{Kind: types.KindStruct, Name: d.Name},
					Decl:     d,
					Span:     d.Span,
					Doc:      d.Doc,
					Conforms: append([]string(nil), d.Conforms...),
				})
			case *ast.EnumDecl:
				b.declareType(&TypeInfo{
					Name:     d.Name,
					Kind:     types.KindEnum,
					Type:     &types.Nominal{Kind: types.KindEnum, Name: d.Name},
					Decl:     d,
					Span:     d.Span,
					Doc:      d.Doc,
					Conforms: append([]string(nil), d.Conforms...),
				})
			}
		}
	}
}

func (b *binder) applyExtensions(files []*ast.File) {
	for _, f := range files {
		for _, d := range f.Decls {
			ext, ok := d.(*ast.ExtensionDecl)
			if !ok {
				continue
			}
			ti, ok := b.g.Types[ext.Name]
			if !ok {
				b.reporter.Report(diag.SemaUnresolvedType, diag.SevError, ext.Span,
					fmt.Sprintf("extension of undeclared type %q", ext.Name))
				continue
			}
			for _, c := range ext.Conforms {
				if !ti.ConformsDirectly(c) {
					ti.Conforms = append(ti.Conforms, c)
				}
			}
		}
	}
}

// memberFromFunc computes the member record for a declared method.
func (b *binder) memberFromFunc(ti *TypeInfo, fd *ast.FuncDecl, file string, fromProtocol string) *Member {
	return &Member{
		Name:         fd.Name,
		Decl:         fd,
		Owner:        ti,
		Static:       fd.Static,
		Origin:       fd.Origin,
		Doc:          fd.Doc,
		Type:         b.funcType(fd),
		FromProtocol: fromProtocol,
		File:         file,
	}
}

func (b *binder) funcType(fd *ast.FuncDecl) *types.Func {
	ft := &types.Func{Result: b.resolve(fd.Result)}
	for _, p := range fd.Params {
		ft.Params = append(ft.Params, b.resolve(p.Type))
	}
	return ft
}

func (b *binder) resolve(te ast.TypeExpr) types.Type {
	t := b.g.Resolve(te.Name)
	if n, ok := t.(*types.Nominal); ok && n.Kind == types.KindUnresolved {
		b.reporter.Report(diag.SemaUnresolvedType, diag.SevError, te.Span,
			fmt.Sprintf("unresolved type %q", te.Name))
	}
	return t
}

func (b *binder) addBodyMembers(ti *TypeInfo, members []ast.Decl, file string) {
	for _, m := range members {
		switch m := m.(type) {
		case *ast.FuncDecl:
			ti.Members = append(ti.Members, b.memberFromFunc(ti, m, file, ""))
		case *ast.VarDecl:
			ti.Members = append(ti.Members, &Member{
				Name:   m.Name,
				Decl:   m,
				Owner:  ti,
				Static: m.Static,
				Origin: m.Origin,
				Doc:    m.Doc,
				Type:   b.resolve(m.Type),
				File:   file,
			})
		}
	}
}

func (b *binder) populateMembers() {
	for _, name := range b.g.typeOrder {
		ti := b.g.Types[name]
		switch d := ti.Decl.(type) {
		case *ast.ProtocolDecl:
			for _, req := range d.Reqs {
				ti.Members = append(ti.Members, b.memberFromFunc(ti, req, b.fileOf(d), ""))
			}
		case *ast.StructDecl:
			b.addBodyMembers(ti, d.Members, b.fileOf(d))
		case *ast.EnumDecl:
			for _, c := range d.Cases {
				ti.Members = append(ti.Members, &Member{
					Name:  c.Name,
					Decl:  c,
					Owner: ti,
					// Enum cases are written unqualified in value position.
					Static: true,
					Doc:    c.Doc,
					Type:   ti.Type,
					File:   b.fileOf(d),
				})
			}
			b.addBodyMembers(ti, d.Members, b.fileOf(d))
		}
	}
	// Extension members come after the type's own members, in source order.
	for _, f := range b.g.Files {
		for _, d := range f.Decls {
			if ext, ok := d.(*ast.ExtensionDecl); ok {
				if ti, ok := b.g.Types[ext.Name]; ok {
					b.addBodyMembers(ti, ext.Members, f.Path)
				}
			}
		}
	}
}

// synthesizeObligations adds, for every non-protocol type, the requirements
// of each conformed protocol that the type does not already implement. The
// synthesized member keeps the requirement's declaration and documentation
// and records which protocol obligated it.
func (b *binder) synthesizeObligations() {
	for _, name := range b.g.typeOrder {
		ti := b.g.Types[name]
		if ti.Kind == types.KindProtocol {
			continue
		}
		seen := map[string]bool{}
		b.obligationsFrom(ti, ti.Conforms, seen)
	}
}

func (b *binder) obligationsFrom(ti *TypeInfo, protocols []string, seen map[string]bool) {
	for _, pname := range protocols {
		if seen[pname] {
			continue
		}
		seen[pname] = true
		p, ok := b.g.Types[pname]
		if !ok {
			b.reporter.Report(diag.SemaUnresolvedType, diag.SevError, ti.Span,
				fmt.Sprintf("conformance to undeclared protocol %q", pname))
			continue
		}
		if p.Kind != types.KindProtocol {
			b.reporter.Report(diag.SemaNotAProtocol, diag.SevError, ti.Span,
				fmt.Sprintf("%q is not a protocol", pname))
			continue
		}
		for _, req := range p.Members {
			if _, exists := ti.Find(req.Name); exists {
				continue
			}
			m := *req
			m.Owner = ti
			m.FromProtocol = pname
			ti.Members = append(ti.Members, &m)
		}
		b.obligationsFrom(ti, p.Conforms, seen)
	}
}

func (b *binder) registerValues(files []*ast.File) {
	for _, f := range files {
		for _, d := range f.Decls {
			switch d := d.(type) {
			case *ast.FuncDecl:
				if _, ok := b.g.Funcs[d.Name]; ok {
					b.reporter.Report(diag.SemaDuplicateSymbol, diag.SevError, d.Span,
						fmt.Sprintf("function %q already declared", d.Name))
					continue
				}
				b.g.Funcs[d.Name] = &FuncInfo{Decl: d, Type: b.funcType(d), File: f.Path}
			case *ast.VarDecl:
				b.g.Vars[d.Name] = b.resolve(d.Type)
			}
		}
	}
}

func (b *binder) fileOf(d ast.Decl) string {
	for _, f := range b.g.Files {
		for _, fd := range f.Decls {
			if fd == d {
				return f.Path
			}
		}
	}
	return ""
}
