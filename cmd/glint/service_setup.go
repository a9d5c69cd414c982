package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"glint/internal/service"
	"glint/internal/trace"
)

// useColor resolves the --color persistent flag against the terminal state
// of the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// setupRecorder builds the trace recorder from flags, falling back to the
// environment when the flag is unset. The recorder may be nil (disabled).
func setupRecorder(cmd *cobra.Command) (*trace.Recorder, error) {
	root := cmd.Root()
	enabled, err := root.PersistentFlags().GetBool("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	dir, err := root.PersistentFlags().GetString("trace-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-dir flag: %w", err)
	}

	cfg := trace.FromEnv()
	if enabled {
		cfg.Enabled = true
	}
	if dir != "" {
		cfg.Dir = dir
	}
	rec, err := trace.NewRecorder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace store: %w", err)
	}
	return rec, nil
}

// setupService builds a query service from the persistent flags.
func setupService(cmd *cobra.Command) (*service.Service, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}
	rec, err := setupRecorder(cmd)
	if err != nil {
		return nil, err
	}
	return service.New(service.Options{
		Recorder:       rec,
		DiagOut:        os.Stderr,
		DiagColor:      color,
		MaxDiagnostics: maxDiagnostics,
	}), nil
}

// queryArgs assembles the compiler argument list for one queried file: the
// file itself, explicit extra args, and the project manifest's defaults.
func queryArgs(filePath string, extra []string) ([]string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", filePath, err)
	}
	args := []string{abs}
	args = append(args, extra...)

	manifest, ok, err := loadProjectManifest(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	if ok {
		for _, a := range manifestArgs(manifest) {
			// The queried buffer is already an input; skip a duplicate
			// listing from [compiler].sources.
			if a == abs {
				continue
			}
			args = append(args, a)
		}
	}
	return args, nil
}
