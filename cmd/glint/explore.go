package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"glint/internal/service"
	"glint/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [flags] file.gl",
	Short: "Interactively explore type-context results in a buffer",
	Long: `Explore opens a terminal UI that re-runs the type-context query as the
cursor moves through the file, reusing the compilation context between
positions the way an editor session would`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().StringArray("arg", nil, "extra compiler argument (repeatable)")
}

func runExplore(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	if !isTerminal(os.Stdout) {
		return fmt.Errorf("explore needs a terminal; use type-context for scripted queries")
	}

	extraArgs, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return fmt.Errorf("failed to get arg flag: %w", err)
	}
	// Diagnostics printed to stderr would tear the alternate screen; the
	// explorer surfaces failures in its results pane instead.
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	rec, err := setupRecorder(cmd)
	if err != nil {
		return err
	}
	svc := service.New(service.Options{
		Recorder:       rec,
		DiagOut:        io.Discard,
		MaxDiagnostics: maxDiagnostics,
	})
	compilerArgs, err := queryArgs(filePath, extraArgs)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", filePath, err)
	}

	model := ui.NewExplorer(svc, compilerArgs[0], content, compilerArgs)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
