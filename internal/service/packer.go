package service

import (
	"glint/internal/complete"
	"glint/internal/docs"
	"glint/internal/sema"
)

// conformingProjector converts raw second-pass candidates into the
// caller-facing result. Every textual facet is rendered once into a shared
// arena and recorded as a span; materialization happens only at the very
// end, when the result crosses the consumer boundary.
type conformingProjector struct {
	docs      *docs.Store
	out       ConformingMethodsConsumer
	delivered bool
}

func (p *conformingProjector) HandleResult(res *complete.ConformingMethodListResult) {
	a := &Arena{}

	typeName := a.Append(res.BaseType.Type.String())
	typeUSR := a.Append(res.BaseType.Type.USR())

	// Per-member facet spans, in rendering order: name, resolved type name,
	// type USR, description, insertable source text. BriefDoc is a genuine
	// owned string; its backing store is independent of the arena.
	type memberSpans struct {
		name     Span
		typeName Span
		typeUSR  Span
		desc     Span
		srcText  Span
		brief    string
	}
	spans := make([]memberSpans, 0, len(res.Members))
	for _, cand := range res.Members {
		m := cand.Member
		resultTy := m.ResultType()
		spans = append(spans, memberSpans{
			name:     a.Append(m.Name),
			typeName: a.Append(resultTy.String()),
			typeUSR:  a.Append(resultTy.USR()),
			desc:     a.Append(sema.MemberDescription(m, false)),
			srcText:  a.Append(sema.MemberDescription(m, true)),
			brief:    p.docs.Brief(m.Origin, m.Name, m.Doc, m.File),
		})
	}

	final := ConformingMethodsResult{
		TypeName: a.View(typeName),
		TypeUSR:  a.View(typeUSR),
	}
	for _, ms := range spans {
		final.Members = append(final.Members, ConformingMember{
			Name:        a.View(ms.name),
			TypeName:    a.View(ms.typeName),
			TypeUSR:     a.View(ms.typeUSR),
			Description: a.View(ms.desc),
			SourceText:  a.View(ms.srcText),
			BriefDoc:    ms.brief,
		})
	}

	p.delivered = true
	p.out.HandleResult(final)
}

// typeContextProjector packs TypeContextInfo items. Each item gets its own
// arena, mirroring the per-result buffers of the conforming projector.
type typeContextProjector struct {
	docs      *docs.Store
	out       TypeContextConsumer
	delivered bool
}

func (p *typeContextProjector) HandleResults(items []complete.TypeContextItem) {
	final := make([]TypeContextItem, 0, len(items))
	for i := range items {
		final = append(final, p.packItem(&items[i]))
	}
	p.delivered = true
	p.out.HandleResults(final)
}

func (p *typeContextProjector) packItem(item *complete.TypeContextItem) TypeContextItem {
	a := &Arena{}

	typeName := a.Append(item.ExpectedType.String())
	typeUSR := a.Append(item.ExpectedType.USR())

	type memberSpans struct {
		name    Span
		desc    Span
		srcText Span
		brief   string
	}
	spans := make([]memberSpans, 0, len(item.ImplicitMembers))
	for _, cand := range item.ImplicitMembers {
		m := cand.Member
		spans = append(spans, memberSpans{
			name: a.Append(m.Name),
			desc: a.Append(sema.MemberDescription(m, false)),
			// Implicit members are written unqualified, with a leading dot.
			srcText: a.Append("." + sema.MemberDescription(m, true)),
			brief:   p.docs.Brief(m.Origin, m.Name, m.Doc, m.File),
		})
	}

	out := TypeContextItem{
		TypeName: a.View(typeName),
		TypeUSR:  a.View(typeUSR),
	}
	for _, ms := range spans {
		out.ImplicitMembers = append(out.ImplicitMembers, TypeContextMember{
			Name:        a.View(ms.name),
			Description: a.View(ms.desc),
			SourceText:  a.View(ms.srcText),
			BriefDoc:    ms.brief,
		})
	}
	return out
}
