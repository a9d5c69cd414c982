package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is a discovered glint.toml plus its location. The manifest
// contributes default compiler arguments (extra sources, include dirs) to
// queries run from inside a project tree.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Compiler compilerConfig `toml:"compiler"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type compilerConfig struct {
	Include []string `toml:"include"` // search directories, relative to the root
	Sources []string `toml:"sources"` // extra inputs beyond the queried buffer
}

func findGlintToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "glint.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findGlintToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// manifestArgs converts a manifest into compiler arguments: every include
// directory becomes -I, every extra source an input file. All paths are made
// absolute against the manifest root.
func manifestArgs(m *projectManifest) []string {
	if m == nil {
		return nil
	}
	var args []string
	for _, inc := range m.Config.Compiler.Include {
		args = append(args, "-I", filepath.Join(m.Root, filepath.FromSlash(inc)))
	}
	for _, src := range m.Config.Compiler.Sources {
		args = append(args, filepath.Join(m.Root, filepath.FromSlash(src)))
	}
	return args
}
