package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"glint/internal/service"
)

// queryError is returned when a query invoked Failed on its consumer; the
// message is already user-facing.
type queryError struct{ message string }

func (e *queryError) Error() string { return e.message }

// conformingSink captures the single delivery of a conforming-methods query.
type conformingSink struct {
	result service.ConformingMethodsResult
	err    error
}

func (s *conformingSink) HandleResult(res service.ConformingMethodsResult) { s.result = res }
func (s *conformingSink) Failed(msg string)                                { s.err = &queryError{message: msg} }

// typeContextSink captures the single delivery of a type-context query.
type typeContextSink struct {
	items []service.TypeContextItem
	err   error
}

func (s *typeContextSink) HandleResults(items []service.TypeContextItem) { s.items = items }
func (s *typeContextSink) Failed(msg string)                             { s.err = &queryError{message: msg} }

var (
	headColor   = color.New(color.FgCyan, color.Bold)
	usrColor    = color.New(color.Faint)
	memberColor = color.New(color.FgGreen)
	briefColor  = color.New(color.Faint, color.Italic)
)

func renderConformingPretty(out io.Writer, res service.ConformingMethodsResult, useColor bool) {
	color.NoColor = !useColor
	if res.TypeName == "" {
		fmt.Fprintln(out, "no conforming methods at this position")
		return
	}
	fmt.Fprintf(out, "%s %s\n", headColor.Sprint(res.TypeName), usrColor.Sprint(res.TypeUSR))
	for _, m := range res.Members {
		fmt.Fprintf(out, "  %s -> %s %s\n", memberColor.Sprint(m.SourceText), m.TypeName, usrColor.Sprint(m.TypeUSR))
		if m.BriefDoc != "" {
			fmt.Fprintf(out, "    %s\n", briefColor.Sprint(m.BriefDoc))
		}
	}
}

func renderTypeContextPretty(out io.Writer, items []service.TypeContextItem, useColor bool) {
	color.NoColor = !useColor
	if len(items) == 0 {
		fmt.Fprintln(out, "no expected type at this position")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "%s %s\n", headColor.Sprint(item.TypeName), usrColor.Sprint(item.TypeUSR))
		for _, m := range item.ImplicitMembers {
			fmt.Fprintf(out, "  %s\n", memberColor.Sprint(m.SourceText))
			if m.BriefDoc != "" {
				fmt.Fprintf(out, "    %s\n", briefColor.Sprint(m.BriefDoc))
			}
		}
	}
}

func renderJSON(out io.Writer, payload any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
