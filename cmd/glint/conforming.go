package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glint/internal/service"
)

var conformingCmd = &cobra.Command{
	Use:   "conforming-methods [flags] file.gl",
	Short: "List methods conforming to the expected protocols at a position",
	Long: `Conforming-methods re-enters semantic analysis at the given byte offset
and reports which members of the type there satisfy the expected protocol
or type names`,
	Args: cobra.ExactArgs(1),
	RunE: runConformingMethods,
}

func init() {
	conformingCmd.Flags().Uint32("pos", 0, "byte offset of the query position")
	conformingCmd.Flags().StringSlice("expect", nil, "expected protocol/type names")
	conformingCmd.Flags().StringArray("arg", nil, "extra compiler argument (repeatable)")
	conformingCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	_ = conformingCmd.MarkFlagRequired("pos")
}

func runConformingMethods(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	pos, err := cmd.Flags().GetUint32("pos")
	if err != nil {
		return fmt.Errorf("failed to get pos flag: %w", err)
	}
	expect, err := cmd.Flags().GetStringSlice("expect")
	if err != nil {
		return fmt.Errorf("failed to get expect flag: %w", err)
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

	var sink conformingSink
	svc.GetConformingMethodList(
		service.Buffer{Identity: compilerArgs[0], Content: content},
		pos, compilerArgs, expect, &sink, nil,
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
		renderConformingPretty(os.Stdout, sink.result, colorize)
		return nil
	case "json":
		return renderJSON(os.Stdout, sink.result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
