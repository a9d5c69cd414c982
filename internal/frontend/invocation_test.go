package frontend

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInvocation(t *testing.T) {
	inv, err := ParseInvocation([]string{"main.gl", "-I", "lib", "-Ivendor", "-strict", "extra.gl"})
	if err != nil {
		t.Fatalf("ParseInvocation: %v", err)
	}
	if len(inv.Inputs) != 2 || inv.Inputs[0] != "main.gl" || inv.Inputs[1] != "extra.gl" {
		t.Errorf("inputs = %v", inv.Inputs)
	}
	if len(inv.SearchDirs) != 2 || inv.SearchDirs[0] != "lib" || inv.SearchDirs[1] != "vendor" {
		t.Errorf("search dirs = %v", inv.SearchDirs)
	}
	if len(inv.Flags) != 1 || inv.Flags[0] != "-strict" {
		t.Errorf("flags = %v", inv.Flags)
	}
}

func TestParseInvocationNoInputs(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"-I", "lib"}, {"-strict"}} {
		_, err := ParseInvocation(args)
		if err == nil {
			t.Fatalf("args %v: expected an error", args)
		}
		if !errors.Is(err, ErrInvocation) {
			t.Errorf("args %v: error %v does not wrap ErrInvocation", args, err)
		}
		if len(args) == 0 && !strings.Contains(err.Error(), "no input filenames specified") {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestParseInvocationDanglingInclude(t *testing.T) {
	_, err := ParseInvocation([]string{"main.gl", "-I"})
	if !errors.Is(err, ErrInvocation) {
		t.Errorf("error = %v, want ErrInvocation", err)
	}
}

func TestCanonicalIsOrderSensitive(t *testing.T) {
	a, _ := ParseInvocation([]string{"a.gl", "b.gl"})
	b, _ := ParseInvocation([]string{"b.gl", "a.gl"})
	if a.Canonical() == b.Canonical() {
		t.Error("different argument orders must produce different canonical forms")
	}
	c, _ := ParseInvocation([]string{"a.gl", "b.gl"})
	if a.Canonical() != c.Canonical() {
		t.Error("identical argument lists must produce one canonical form")
	}
}
