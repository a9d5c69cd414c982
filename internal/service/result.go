package service

// ConformingMember is one caller-facing conforming-method candidate. All
// fields are materialized strings; BriefDoc originates outside the shared
// arena (doc comment or sidecar store) and was owned from the start.
type ConformingMember struct {
	Name        string
	TypeName    string // resolved (result) type
	TypeUSR     string
	Description string // without placeholders
	SourceText  string // with placeholders, insertable
	BriefDoc    string
}

// ConformingMethodsResult is the final result of a ConformingMethodList
// query. Member order equals raw candidate discovery order.
type ConformingMethodsResult struct {
	TypeName string
	TypeUSR  string
	Members  []ConformingMember
}

// ConformingMethodsConsumer is the caller-facing consumer for the
// conforming-methods query kind. Exactly one of HandleResult/Failed is
// invoked per query.
type ConformingMethodsConsumer interface {
	HandleResult(res ConformingMethodsResult)
	Failed(message string)
}

// TypeContextMember is one implicit member writable at the queried position
// without qualification.
type TypeContextMember struct {
	Name        string
	Description string
	SourceText  string // leading-dot insertable form
	BriefDoc    string
}

// TypeContextItem is one expected type at the queried position.
type TypeContextItem struct {
	TypeName        string
	TypeUSR         string
	ImplicitMembers []TypeContextMember
}

// TypeContextConsumer is the caller-facing consumer for the type-context
// query kind. Exactly one of HandleResults/Failed is invoked per query; an
// empty slice is a valid, successful result.
type TypeContextConsumer interface {
	HandleResults(items []TypeContextItem)
	Failed(message string)
}
