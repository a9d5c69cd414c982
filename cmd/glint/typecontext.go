package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glint/internal/service"
)

var typeContextCmd = &cobra.Command{
	Use:   "type-context [flags] file.gl",
	Short: "Report the statically expected type at a position",
	Long: `Type-context re-enters semantic analysis at the given byte offset and
reports the expected type there, along with the implicit members writable
without qualification`,
	Args: cobra.ExactArgs(1),
	RunE: runTypeContext,
}

func init() {
	typeContextCmd.Flags().Uint32("pos", 0, "byte offset of the query position")
	typeContextCmd.Flags().StringArray("arg", nil, "extra compiler argument (repeatable)")
	typeContextCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	_ = typeContextCmd.MarkFlagRequired("pos")
}

func runTypeContext(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	pos, err := cmd.Flags().GetUint32("pos")
	if err != nil {
		return fmt.Errorf("failed to get pos flag: %w", err)
	}
	extraArgs, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return fmt.Errorf("failed to get arg flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	svc, err := setupService(cmd)
	if err != nil {
		return err
	}
	compilerArgs, err := queryArgs(filePath, extraArgs)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", filePath, err)
	}

	var sink typeContextSink
	svc.GetExpressionContextInfo(
		service.Buffer{Identity: compilerArgs[0], Content: content},
		pos, compilerArgs, &sink, nil,
	)
	if sink.err != nil {
		return fmt.Errorf("query failed: %w", sink.err)
	}

	switch format {
	case "pretty":
		colorize, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		renderTypeContextPretty(os.Stdout, sink.items, colorize)
		return nil
	case "json":
		return renderJSON(os.Stdout, sink.items)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
