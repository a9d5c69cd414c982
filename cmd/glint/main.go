package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Glint language semantic query tool",
	Long:  `Glint answers semantic-completion queries over glint source buffers`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(conformingCmd)
	rootCmd.AddCommand(typeContextCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Bool("trace", false, "persist a trace record per query")
	rootCmd.PersistentFlags().String("trace-dir", "", "trace record store directory")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
