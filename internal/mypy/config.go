package mypy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileNames are the dedicated config files mypy recognizes, in
// mypy's own priority order.
var configFileNames = []string{"mypy.ini", ".mypy.ini"}

// pyprojectTool is the subset of pyproject.toml needed to tell whether the
// file configures mypy at all. Nothing beyond the section's presence is
// interpreted here.
type pyprojectTool struct {
	Tool map[string]toml.Primitive `toml:"tool"`
}

// FindConfig walks up from startDir looking for the checker's configuration
// file: mypy.ini or .mypy.ini, or a pyproject.toml containing a [tool.mypy]
// section. Returns ok=false when no configuration exists up to the
// filesystem root.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}

		pyproject := filepath.Join(dir, "pyproject.toml")
		if _, err := os.Stat(pyproject); err == nil {
			if hasMypySection(pyproject) {
				return pyproject, true, nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", pyproject, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing the checker's config
// file, or startDir itself when no config exists.
func FindProjectRoot(startDir string) (string, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil {
		return "", err
	}
	if ok {
		return filepath.Dir(configPath), nil
	}
	return filepath.Abs(startDir)
}

// hasMypySection reports whether a pyproject.toml declares [tool.mypy].
// An unparseable file counts as not configuring mypy.
func hasMypySection(path string) bool {
	var doc pyprojectTool
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return false
	}
	_, ok := doc.Tool["mypy"]
	return ok
}
