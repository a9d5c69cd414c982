package complete

import (
	"glint/internal/sema"
	"glint/internal/types"
)

// NewConformingMethodListCallbacks builds the second-pass strategy for the
// ConformingMethodList query kind, feeding the given consumer.
func NewConformingMethodListCallbacks(expected []string, consumer ConformingMethodListConsumer) sema.CompletionCallbacks {
	return &conformingMethodList{expected: expected, consumer: consumer}
}

type conformingMethodList struct {
	expected []string
	consumer ConformingMethodListConsumer
}

func (c *conformingMethodList) AtMarker(g *sema.Globals, cx sema.MarkerContext) {
	var base *sema.TypeInfo
	switch cx.Kind {
	case sema.ContextMemberAccess, sema.ContextTypeBody:
		base = cx.BaseType
	default:
		return
	}
	if base == nil {
		return
	}

	res := &ConformingMethodListResult{BaseType: base}
	for _, m := range base.Members {
		if !m.IsMethod() {
			continue
		}
		if cx.Kind == sema.ContextMemberAccess && cx.StaticAccess != m.Static {
			continue
		}
		if !c.matches(g, base, m) {
			continue
		}
		res.Members = append(res.Members, RawCandidate{Member: m, Type: m.Type})
	}
	c.consumer.HandleResult(res)
}

// matches applies the conforming-method rule: the member is an obligation of
// an expected protocol the base type conforms to, or its result type
// conforms to at least one expected type.
func (c *conformingMethodList) matches(g *sema.Globals, base *sema.TypeInfo, m *sema.Member) bool {
	for _, want := range c.expected {
		if m.FromProtocol != "" && obligatedBy(g, m.FromProtocol, want) && g.ConformsTo(base.Type, want) {
			return true
		}
		if g.ConformsTo(m.ResultType(), want) {
			return true
		}
	}
	return false
}

// obligatedBy reports whether a requirement originating in protocol origin
// is an obligation of the expected protocol (the same protocol or one it
// inherits from).
func obligatedBy(g *sema.Globals, origin, expected string) bool {
	if origin == expected {
		return true
	}
	p, ok := g.Types[origin]
	if !ok {
		return false
	}
	return g.ConformsTo(p.Type, expected)
}

// NewTypeContextInfoCallbacks builds the second-pass strategy for the
// TypeContextInfo query kind.
func NewTypeContextInfoCallbacks(consumer TypeContextInfoConsumer) sema.CompletionCallbacks {
	return &typeContextInfo{consumer: consumer}
}

type typeContextInfo struct {
	consumer TypeContextInfoConsumer
}

func (t *typeContextInfo) AtMarker(g *sema.Globals, cx sema.MarkerContext) {
	if cx.Kind != sema.ContextCallArg || cx.ParamType == nil {
		return
	}
	item := TypeContextItem{ExpectedType: cx.ParamType}
	if ti, ok := g.TypeInfoOf(cx.ParamType); ok {
		for _, m := range ti.Members {
			if !implicitMember(ti, m) {
				continue
			}
			item.ImplicitMembers = append(item.ImplicitMembers, RawCandidate{Member: m, Type: m.Type})
		}
	}
	t.consumer.HandleResults([]TypeContextItem{item})
}

// implicitMember keeps enum cases and static factory-like members whose
// result is the expected type: those can be written with a leading dot,
// unqualified.
func implicitMember(ti *sema.TypeInfo, m *sema.Member) bool {
	if !m.Static {
		return false
	}
	if !m.IsMethod() {
		// Enum case or static stored property of the expected type.
		return types.SameName(m.Type, ti.Type)
	}
	return types.SameName(m.ResultType(), ti.Type)
}
