package sema

import (
	"testing"
)

func TestFindMarkerContextMemberAccess(t *testing.T) {
	g := bindSources(t, nil, "struct S { func f() -> Int { } }\nlet s: S\ns.\x00")
	cx, ok := FindMarkerContext(g)
	if !ok {
		t.Fatal("marker not found")
	}
	if cx.Kind != ContextMemberAccess {
		t.Fatalf("kind = %s, want member-access", cx.Kind)
	}
	if cx.BaseType == nil || cx.BaseType.Name != "S" {
		t.Errorf("base type = %v, want S", cx.BaseType)
	}
	if cx.StaticAccess {
		t.Error("value base must not be a static access")
	}
}

func TestFindMarkerContextStaticAccess(t *testing.T) {
	g := bindSources(t, nil, "enum Color { case red }\nColor.\x00")
	cx, ok := FindMarkerContext(g)
	if !ok || cx.Kind != ContextMemberAccess {
		t.Fatalf("kind = %s, want member-access", cx.Kind)
	}
	if !cx.StaticAccess {
		t.Error("type-named base must be a static access")
	}
	if cx.BaseType.Name != "Color" {
		t.Errorf("base type = %q, want Color", cx.BaseType.Name)
	}
}

func TestFindMarkerContextCallArgument(t *testing.T) {
	t.Run("first argument", func(t *testing.T) {
		g := bindSources(t, nil, "enum Color { case red }\nfunc paint(c: Color) -> Void { }\npaint(\x00)")
		cx, ok := FindMarkerContext(g)
		if !ok || cx.Kind != ContextCallArg {
			t.Fatalf("kind = %s, want call-argument", cx.Kind)
		}
		if cx.CalleeName != "paint" || cx.ArgIndex != 0 {
			t.Errorf("callee = %q arg %d, want paint arg 0", cx.CalleeName, cx.ArgIndex)
		}
		if cx.ParamType == nil || cx.ParamType.String() != "Color" {
			t.Errorf("param type = %v, want Color", cx.ParamType)
		}
	})
	t.Run("later argument", func(t *testing.T) {
		g := bindSources(t, nil, "enum Color { case red }\nfunc mix(n: Int, c: Color) -> Void { }\nmix(1, \x00)")
		cx, ok := FindMarkerContext(g)
		if !ok || cx.Kind != ContextCallArg {
			t.Fatalf("kind = %s, want call-argument", cx.Kind)
		}
		if cx.ArgIndex != 1 {
			t.Errorf("arg index = %d, want 1", cx.ArgIndex)
		}
		if cx.ParamType == nil || cx.ParamType.String() != "Color" {
			t.Errorf("param type = %v, want Color", cx.ParamType)
		}
	})
	t.Run("leading dot", func(t *testing.T) {
		g := bindSources(t, nil, "enum Color { case red }\nfunc paint(c: Color) -> Void { }\npaint(.\x00)")
		cx, ok := FindMarkerContext(g)
		if !ok || cx.Kind != ContextCallArg {
			t.Fatalf("kind = %s, want call-argument", cx.Kind)
		}
		if cx.ParamType == nil || cx.ParamType.String() != "Color" {
			t.Errorf("param type = %v, want Color", cx.ParamType)
		}
	})
	t.Run("unknown callee", func(t *testing.T) {
		g := bindSources(t, nil, "mystery(\x00)")
		cx, ok := FindMarkerContext(g)
		if !ok || cx.Kind != ContextCallArg {
			t.Fatalf("kind = %s, want call-argument", cx.Kind)
		}
		if cx.ParamType != nil {
			t.Errorf("param type = %v, want nil", cx.ParamType)
		}
	})
}

func TestFindMarkerContextStaticFactoryArgument(t *testing.T) {
	g := bindSources(t, nil, `
enum Color { case red }
struct Brush {
	static func make(c: Color) -> Brush { }
}
Brush.make(`+"\x00"+`)`)
	cx, ok := FindMarkerContext(g)
	if !ok || cx.Kind != ContextCallArg {
		t.Fatalf("kind = %s, want call-argument", cx.Kind)
	}
	if cx.CalleeName != "make" {
		t.Errorf("callee = %q, want make", cx.CalleeName)
	}
	if cx.ParamType == nil || cx.ParamType.String() != "Color" {
		t.Errorf("param type = %v, want Color", cx.ParamType)
	}
}

func TestFindMarkerContextTypeBody(t *testing.T) {
	g := bindSources(t, nil, "protocol P { func f() -> Int }\nstruct S: P { \x00 }")
	cx, ok := FindMarkerContext(g)
	if !ok || cx.Kind != ContextTypeBody {
		t.Fatalf("kind = %s, want type-body", cx.Kind)
	}
	if cx.BaseType == nil || cx.BaseType.Name != "S" {
		t.Errorf("base type = %v, want S", cx.BaseType)
	}
}

func TestFindMarkerContextUnresolvableBase(t *testing.T) {
	g := bindSources(t, nil, "x.\x00")
	cx, ok := FindMarkerContext(g)
	if !ok {
		t.Fatal("marker should be located even with an unresolvable base")
	}
	if cx.Kind != ContextNone {
		t.Errorf("kind = %s, want none", cx.Kind)
	}
}

func TestFindMarkerContextAbsent(t *testing.T) {
	g := bindSources(t, nil, "struct S { }")
	if _, ok := FindMarkerContext(g); ok {
		t.Error("no marker, no context")
	}
}

type recordingCallbacks struct {
	calls int
	cx    MarkerContext
}

func (r *recordingCallbacks) AtMarker(_ *Globals, cx MarkerContext) {
	r.calls++
	r.cx = cx
}

func TestRunSecondPass(t *testing.T) {
	t.Run("fires once at marker", func(t *testing.T) {
		g := bindSources(t, nil, "enum Color { case red }\nColor.\x00")
		var cb recordingCallbacks
		RunSecondPass(&State{Globals: g}, &cb)
		if cb.calls != 1 {
			t.Fatalf("calls = %d, want 1", cb.calls)
		}
		if cb.cx.Kind != ContextMemberAccess {
			t.Errorf("kind = %s, want member-access", cb.cx.Kind)
		}
	})
	t.Run("no marker means no callback", func(t *testing.T) {
		g := bindSources(t, nil, "struct S { }")
		var cb recordingCallbacks
		RunSecondPass(&State{Globals: g}, &cb)
		if cb.calls != 0 {
			t.Errorf("calls = %d, want 0", cb.calls)
		}
	})
	t.Run("nil state is a no-op", func(t *testing.T) {
		var cb recordingCallbacks
		RunSecondPass(nil, &cb)
		if cb.calls != 0 {
			t.Errorf("calls = %d, want 0", cb.calls)
		}
	})
}

func TestMemberDescription(t *testing.T) {
	g := bindSources(t, nil, `
struct S {
	func f(x: Int, y: Color) -> Void { }
	var count: Int
}
enum Color { case red }`)
	s := g.Types["S"]

	f, _ := s.Find("f")
	if got := MemberDescription(f, false); got != "f(x: Int, y: Color)" {
		t.Errorf("plain = %q", got)
	}
	if got := MemberDescription(f, true); got != "f(x: <#Int#>, y: <#Color#>)" {
		t.Errorf("placeholder = %q", got)
	}

	count, _ := s.Find("count")
	if got := MemberDescription(count, true); got != "count" {
		t.Errorf("property = %q, want bare name", got)
	}

	red, _ := g.Types["Color"].Find("red")
	if got := MemberDescription(red, false); got != "red" {
		t.Errorf("case = %q, want bare name", got)
	}
}
