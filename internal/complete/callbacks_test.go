package complete

import (
	"errors"
	"testing"

	"glint/internal/frontend"
	"glint/internal/source"
)

type conformingSink struct {
	calls int
	res   *ConformingMethodListResult
}

func (s *conformingSink) HandleResult(res *ConformingMethodListResult) {
	s.calls++
	s.res = res
}

type typeContextSink struct {
	calls int
	items []TypeContextItem
}

func (s *typeContextSink) HandleResults(items []TypeContextItem) {
	s.calls++
	s.items = items
}

// newTestInstance builds a parsed instance over one in-memory buffer that
// already contains the completion marker byte.
func newTestInstance(t *testing.T, src string) *frontend.Instance {
	t.Helper()
	fs := &source.MapFS{Files: map[string][]byte{
		"/p/main.gl": []byte(src),
	}}
	inv, err := frontend.ParseInvocation([]string{"/p/main.gl"})
	if err != nil {
		t.Fatalf("ParseInvocation: %v", err)
	}
	return frontend.NewInstance(inv, fs, 10)
}

func TestConformingMethodListFromObligation(t *testing.T) {
	inst := newTestInstance(t, "protocol P { func f() -> Int }\nstruct S: P { \x00 }")
	var sink conformingSink
	if err := Run(inst, NewConformingMethodListCallbacks([]string{"P"}, &sink)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("calls = %d, want 1", sink.calls)
	}
	if sink.res.BaseType.Name != "S" {
		t.Errorf("base type = %q, want S", sink.res.BaseType.Name)
	}
	if len(sink.res.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(sink.res.Members))
	}
	m := sink.res.Members[0].Member
	if m.Name != "f" || m.FromProtocol != "P" {
		t.Errorf("member = %q from %q, want f from P", m.Name, m.FromProtocol)
	}
	if m.ResultType().String() != "Int" {
		t.Errorf("resolved type = %s, want Int", m.ResultType())
	}
}

func TestConformingMethodListByResultType(t *testing.T) {
	// No protocol in play: the member's result type matches the expected
	// name directly.
	inst := newTestInstance(t, "struct S { func count() -> Int { }\n func name() -> String { } }\nlet s: S\ns.\x00")
	var sink conformingSink
	if err := Run(inst, NewConformingMethodListCallbacks([]string{"Int"}, &sink)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("calls = %d, want 1", sink.calls)
	}
	if len(sink.res.Members) != 1 || sink.res.Members[0].Member.Name != "count" {
		t.Errorf("members = %v, want [count]", memberNames(sink.res))
	}
}

func TestConformingMethodListStaticAccessFilter(t *testing.T) {
	src := `struct S {
	func instanceOnly() -> Int { }
	static func staticOnly() -> Int { }
}
`
	t.Run("value base", func(t *testing.T) {
		inst := newTestInstance(t, src+"let s: S\ns.\x00")
		var sink conformingSink
		if err := Run(inst, NewConformingMethodListCallbacks([]string{"Int"}, &sink)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if got := memberNames(sink.res); len(got) != 1 || got[0] != "instanceOnly" {
			t.Errorf("members = %v, want [instanceOnly]", got)
		}
	})
	t.Run("type base", func(t *testing.T) {
		inst := newTestInstance(t, src+"S.\x00")
		var sink conformingSink
		if err := Run(inst, NewConformingMethodListCallbacks([]string{"Int"}, &sink)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if got := memberNames(sink.res); len(got) != 1 || got[0] != "staticOnly" {
			t.Errorf("members = %v, want [staticOnly]", got)
		}
	})
}

func memberNames(res *ConformingMethodListResult) []string {
	if res == nil {
		return nil
	}
	out := make([]string, 0, len(res.Members))
	for _, c := range res.Members {
		out = append(out, c.Member.Name)
	}
	return out
}

func TestTypeContextInfoImplicitMembers(t *testing.T) {
	inst := newTestInstance(t, `enum Color {
	case red, blue
	static func favorite() -> Color { }
	static func count() -> Int { }
	func hex() -> String { }
}
func paint(c: Color) -> Void { }
paint(`+"\x00"+`)`)
	var sink typeContextSink
	if err := Run(inst, NewTypeContextInfoCallbacks(&sink)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("calls = %d, want 1", sink.calls)
	}
	if len(sink.items) != 1 {
		t.Fatalf("got %d items, want 1", len(sink.items))
	}
	item := sink.items[0]
	if item.ExpectedType.String() != "Color" {
		t.Errorf("expected type = %s, want Color", item.ExpectedType)
	}
	var names []string
	for _, c := range item.ImplicitMembers {
		names = append(names, c.Member.Name)
	}
	// Cases and Color-returning static factories are writable with a
	// leading dot; instance methods and foreign-typed statics are not.
	want := []string{"red", "blue", "favorite"}
	if len(names) != len(want) {
		t.Fatalf("members = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("member %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTypeContextInfoBuiltinParameter(t *testing.T) {
	inst := newTestInstance(t, "func inc(n: Int) -> Int { }\ninc(\x00)")
	var sink typeContextSink
	if err := Run(inst, NewTypeContextInfoCallbacks(&sink)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("calls = %d, want 1", sink.calls)
	}
	item := sink.items[0]
	if item.ExpectedType.String() != "Int" {
		t.Errorf("expected type = %s, want Int", item.ExpectedType)
	}
	if len(item.ImplicitMembers) != 0 {
		t.Errorf("builtin types carry no implicit members, got %d", len(item.ImplicitMembers))
	}
}

func TestRunWithoutMarkerIsEmptySuccess(t *testing.T) {
	inst := newTestInstance(t, "struct S { }")
	var sink typeContextSink
	if err := Run(inst, NewTypeContextInfoCallbacks(&sink)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.calls != 0 {
		t.Errorf("calls = %d, want 0", sink.calls)
	}
}

func TestRunReusesParserState(t *testing.T) {
	inst := newTestInstance(t, "enum Color { case red }\nColor.\x00")
	var sink conformingSink
	for i := 0; i < 3; i++ {
		if err := Run(inst, NewConformingMethodListCallbacks([]string{"Color"}, &sink)); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if inst.ParseCount() != 1 {
		t.Errorf("parse count = %d, want 1", inst.ParseCount())
	}
}

func TestRunSurfacesSetupErrors(t *testing.T) {
	fs := &source.MapFS{Files: map[string][]byte{}}
	inv, err := frontend.ParseInvocation([]string{"/p/missing.gl"})
	if err != nil {
		t.Fatalf("ParseInvocation: %v", err)
	}
	inst := frontend.NewInstance(inv, fs, 10)
	var sink typeContextSink
	err = Run(inst, NewTypeContextInfoCallbacks(&sink))
	if !errors.Is(err, frontend.ErrFrontendSetup) {
		t.Errorf("error = %v, want ErrFrontendSetup", err)
	}
	if sink.calls != 0 {
		t.Error("failed setup must not deliver results")
	}
}
