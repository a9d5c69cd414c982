package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glint/internal/diag"
	"glint/internal/lexer"
	"glint/internal/source"
	"glint/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.gl",
	Short: "Tokenize a glint source file",
	Long:  `Tokenize breaks down a glint source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fset := source.NewFileSet()
	id, err := fset.Load(source.OSFS{}, filePath)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	file := fset.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokens(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	if bag.Len() > 0 {
		colorize, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		printer := &diag.PrintingConsumer{Out: os.Stderr, Color: colorize}
		for _, d := range bag.Items() {
			printer.Handle(fset, d)
		}
	}

	switch format {
	case "pretty":
		return formatTokensPretty(os.Stdout, toks, fset)
	case "json":
		return formatTokensJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatTokensPretty(out *os.File, toks []token.Token, fset *source.FileSet) error {
	for _, t := range toks {
		start, _ := fset.Resolve(t.Span)
		if _, err := fmt.Fprintf(out, "%4d:%-3d %s\n", start.Line, start.Col, t); err != nil {
			return err
		}
	}
	return nil
}

type tokenPayload struct {
	Kind  string `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Text  string `json:"text,omitempty"`
}

func formatTokensJSON(out *os.File, toks []token.Token) error {
	payload := make([]tokenPayload, 0, len(toks))
	for _, t := range toks {
		payload = append(payload, tokenPayload{
			Kind:  t.Kind.String(),
			Start: t.Span.Start,
			End:   t.Span.End,
			Text:  t.Text,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
