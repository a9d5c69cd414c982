package frontend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvocation covers malformed or incomplete compiler arguments. The
// no-inputs case is a hard precondition of every query.
var ErrInvocation = errors.New("invalid compiler invocation")

// ErrFrontendSetup covers failures to initialize a front-end instance from
// the given arguments and filesystem.
var ErrFrontendSetup = errors.New("front-end setup failed")

// Invocation is the validated form of caller-provided compiler arguments.
type Invocation struct {
	Args       []string // original argument list, as given
	Inputs     []string // non-flag arguments: input files
	SearchDirs []string // -I directories
	Flags      []string // unrecognized flags, preserved for the cache key
}

// ParseInvocation validates compiler arguments. An invocation that resolves
// to zero input files fails with ErrInvocation.
func ParseInvocation(args []string) (*Invocation, error) {
	inv := &Invocation{Args: append([]string(nil), args...)}
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-I":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing directory after -I: %w", ErrInvocation)
			}
			i++
			inv.SearchDirs = append(inv.SearchDirs, args[i])
		case strings.HasPrefix(a, "-I"):
			inv.SearchDirs = append(inv.SearchDirs, a[2:])
		case strings.HasPrefix(a, "-"):
			inv.Flags = append(inv.Flags, a)
		default:
			inv.Inputs = append(inv.Inputs, a)
		}
	}
	if len(inv.Inputs) == 0 {
		return nil, fmt.Errorf("no input filenames specified: %w", ErrInvocation)
	}
	return inv, nil
}

// Canonical is the invocation's contribution to the compilation-context
// cache key.
func (inv *Invocation) Canonical() string {
	return strings.Join(inv.Args, "\x1f")
}
