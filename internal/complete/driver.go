package complete

import (
	"glint/internal/frontend"
	"glint/internal/sema"
)

// Run drives one second-pass query against a pinned instance. The first use
// of an instance forces the initial parse-and-resolve-imports step; every
// later query reuses the persistent parser state. The per-key pin held by
// the caller serializes this with concurrent queries at the same position.
func Run(inst *frontend.Instance, cb sema.CompletionCallbacks) error {
	if !inst.HasPersistentParserState() {
		if err := inst.ParseAndResolveImports(); err != nil {
			return err
		}
	}
	sema.RunSecondPass(inst.ParserState(), cb)
	return nil
}
