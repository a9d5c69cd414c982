package parser

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/source"
)

func parseSource(t *testing.T, content string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.gl", []byte(content))
	bag := diag.NewBag(10)
	f := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return f
}

func TestParseProtocol(t *testing.T) {
	f := parseSource(t, `
protocol Drawable: Shape {
	func draw() -> Void
	func area() -> Int
}`)
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
	p, ok := f.Decls[0].(*ast.ProtocolDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.ProtocolDecl", f.Decls[0])
	}
	if p.Name != "Drawable" {
		t.Errorf("name = %q, want %q", p.Name, "Drawable")
	}
	if len(p.Inherits) != 1 || p.Inherits[0] != "Shape" {
		t.Errorf("inherits = %v, want [Shape]", p.Inherits)
	}
	if len(p.Reqs) != 2 {
		t.Fatalf("got %d requirements, want 2", len(p.Reqs))
	}
	if p.Reqs[1].Name != "area" || p.Reqs[1].Result.Name != "Int" {
		t.Errorf("second req = %s -> %s, want area -> Int", p.Reqs[1].Name, p.Reqs[1].Result.Name)
	}
}

func TestParseStructWithMembers(t *testing.T) {
	f := parseSource(t, `
struct Point: Drawable {
	var x: Int
	func draw() -> Void { }
	static func origin() -> Point { }
}`)
	s, ok := f.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.StructDecl", f.Decls[0])
	}
	if len(s.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(s.Members))
	}
	v, ok := s.Members[0].(*ast.VarDecl)
	if !ok || v.Name != "x" || v.Type.Name != "Int" {
		t.Errorf("first member = %#v, want var x: Int", s.Members[0])
	}
	fac, ok := s.Members[2].(*ast.FuncDecl)
	if !ok || !fac.Static {
		t.Errorf("third member = %#v, want static func", s.Members[2])
	}
}

func TestParseEnumCaseForms(t *testing.T) {
	// Both the `case` keyword list and the bare list declare cases.
	f := parseSource(t, `
enum Color {
	case red, green
	blue
	func hex() -> String { }
}`)
	e, ok := f.Decls[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.EnumDecl", f.Decls[0])
	}
	if len(e.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(e.Cases))
	}
	names := []string{"red", "green", "blue"}
	for i, want := range names {
		if e.Cases[i].Name != want {
			t.Errorf("case %d = %q, want %q", i, e.Cases[i].Name, want)
		}
	}
	if len(e.Members) != 1 {
		t.Errorf("got %d members, want 1", len(e.Members))
	}
}

func TestParseExtension(t *testing.T) {
	f := parseSource(t, `
extension Point: Printable {
	func describe() -> String { }
}`)
	e, ok := f.Decls[0].(*ast.ExtensionDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.ExtensionDecl", f.Decls[0])
	}
	if e.Name != "Point" {
		t.Errorf("extended type = %q, want Point", e.Name)
	}
	if len(e.Conforms) != 1 || e.Conforms[0] != "Printable" {
		t.Errorf("conforms = %v, want [Printable]", e.Conforms)
	}
	if len(e.Members) != 1 {
		t.Errorf("got %d members, want 1", len(e.Members))
	}
}

func TestDocCommentAttachment(t *testing.T) {
	f := parseSource(t, `
/// A point in the plane.
/// Second line.
struct Point { }

/// Paints the screen.
func paint(c: Color) -> Void { }`)
	s := f.Decls[0].(*ast.StructDecl)
	if s.Doc != "A point in the plane.\nSecond line." {
		t.Errorf("struct doc = %q", s.Doc)
	}
	fd := f.Decls[1].(*ast.FuncDecl)
	if fd.Doc != "Paints the screen." {
		t.Errorf("func doc = %q", fd.Doc)
	}
}

func TestExternFuncIsForeign(t *testing.T) {
	f := parseSource(t, "extern func clock() -> Int")
	fd, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.FuncDecl", f.Decls[0])
	}
	if fd.Origin != ast.OriginForeign {
		t.Errorf("origin = %s, want foreign", fd.Origin)
	}
}

func TestMarkerInTypeBody(t *testing.T) {
	f := parseSource(t, "struct S { \x00 }")
	s := f.Decls[0].(*ast.StructDecl)
	if len(s.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(s.Members))
	}
	if _, ok := s.Members[0].(*ast.MarkerDecl); !ok {
		t.Errorf("member is %T, want *ast.MarkerDecl", s.Members[0])
	}
}

func TestMarkerInExpressions(t *testing.T) {
	t.Run("member access", func(t *testing.T) {
		f := parseSource(t, "s.\x00")
		if len(f.Code) != 1 {
			t.Fatalf("got %d exprs, want 1", len(f.Code))
		}
		m, ok := f.Code[0].(*ast.MemberExpr)
		if !ok || m.Name != "" {
			t.Fatalf("expr = %#v, want marker member access", f.Code[0])
		}
		if id, ok := m.Base.(*ast.IdentExpr); !ok || id.Name != "s" {
			t.Errorf("base = %#v, want ident s", m.Base)
		}
	})
	t.Run("call argument", func(t *testing.T) {
		f := parseSource(t, "paint(\x00)")
		call, ok := f.Code[0].(*ast.CallExpr)
		if !ok {
			t.Fatalf("expr = %#v, want call", f.Code[0])
		}
		if len(call.Args) != 1 {
			t.Fatalf("got %d args, want 1", len(call.Args))
		}
		if _, ok := call.Args[0].(*ast.MarkerExpr); !ok {
			t.Errorf("arg = %#v, want marker", call.Args[0])
		}
	})
	t.Run("leading dot", func(t *testing.T) {
		f := parseSource(t, "paint(.\x00)")
		call := f.Code[0].(*ast.CallExpr)
		m, ok := call.Args[0].(*ast.MemberExpr)
		if !ok || m.Base != nil || m.Name != "" {
			t.Errorf("arg = %#v, want baseless marker member", call.Args[0])
		}
	})
}

func TestFuncBodyExpressionsHoisted(t *testing.T) {
	f := parseSource(t, `
func main() -> Void {
	paint(red)
}`)
	if len(f.Code) != 1 {
		t.Fatalf("got %d exprs, want 1", len(f.Code))
	}
	if _, ok := f.Code[0].(*ast.CallExpr); !ok {
		t.Errorf("expr = %#v, want call", f.Code[0])
	}
}

func TestVarInitializerExpressionHoisted(t *testing.T) {
	f := parseSource(t, "let x = paint(\x00)")
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
	if v, ok := f.Decls[0].(*ast.VarDecl); !ok || v.Name != "x" {
		t.Errorf("decl = %#v, want let x", f.Decls[0])
	}
	if len(f.Code) != 1 {
		t.Fatalf("got %d exprs, want 1", len(f.Code))
	}
	call, ok := f.Code[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr = %#v, want call", f.Code[0])
	}
	if len(call.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.MarkerExpr); !ok {
		t.Errorf("arg = %#v, want marker", call.Args[0])
	}
}

func TestParseErrorsAreBounded(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.gl", []byte(") ) ) ) ) ) ) )"))
	bag := diag.NewBag(100)
	ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 3})
	if bag.Len() > 3 {
		t.Errorf("got %d diagnostics, want at most 3", bag.Len())
	}
	if !bag.HasErrors() {
		t.Error("expected at least one error")
	}
}
