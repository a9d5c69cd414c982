package complete

import (
	"glint/internal/sema"
	"glint/internal/types"
)

// RawCandidate is one discovered member plus the type it resolves to when
// accessed on the base/expected type. It references declarations owned by
// the compilation context and must not outlive the query.
type RawCandidate struct {
	Member *sema.Member
	// Type is the member's type specialized for the base type; for methods
	// this is the function type whose result is the "resolved type" facet.
	Type types.Type
}

// ConformingMethodListResult is the raw result of a ConformingMethodList
// query: the base expression type and the members whose obligations or
// result types matched the expected set, in discovery order.
type ConformingMethodListResult struct {
	BaseType *sema.TypeInfo
	Members  []RawCandidate
}

// TypeContextItem is one expected type at the marker position together with
// the implicit members writable there without qualification.
type TypeContextItem struct {
	ExpectedType    types.Type
	ImplicitMembers []RawCandidate
}

// ConformingMethodListConsumer receives the raw conforming-method result.
// Implemented by the result projector in internal/service.
type ConformingMethodListConsumer interface {
	HandleResult(res *ConformingMethodListResult)
}

// TypeContextInfoConsumer receives raw type-context items.
type TypeContextInfoConsumer interface {
	HandleResults(items []TypeContextItem)
}
