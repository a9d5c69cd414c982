package sema

// CompletionCallbacks is the query-specific strategy installed before the
// second pass resumes analysis at the marker. The two query kinds are
// interchangeable implementations of this interface; see internal/complete.
type CompletionCallbacks interface {
	// AtMarker fires once when analysis reaches the marker with its resolved
	// context. It is not called when no marker context exists.
	AtMarker(g *Globals, cx MarkerContext)
}

// State is the persistent parser state a front-end instance keeps between
// queries: the parsed trees plus the binding tables. Second passes only read
// it.
type State struct {
	Globals *Globals
}

// RunSecondPass re-enters analysis at the marker position with the given
// strategy. A marker outside any analyzable position yields no callback
// invocation; the caller treats that as an empty, successful result.
func RunSecondPass(st *State, cb CompletionCallbacks) {
	if st == nil || st.Globals == nil || cb == nil {
		return
	}
	cx, ok := FindMarkerContext(st.Globals)
	if !ok || cx.Kind == ContextNone {
		return
	}
	cb.AtMarker(st.Globals, cx)
}
