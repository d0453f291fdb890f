package testutil

import (
	"fmt"
	"os"
	"testing"

	"pgregory.net/rapid"
)

// RapidCheck wraps rapid.Check with the configured iteration count.
// This is the recommended way to run property tests in this project.
//
// rapid v1.2.0 has no per-check option API, so the iteration count is
// applied through the RAPID_CHECKS environment variable that rapid reads.
func RapidCheck(t *testing.T, fn func(*rapid.T)) {
	t.Helper()

	config := GetTestConfig()
	os.Setenv("RAPID_CHECKS", fmt.Sprintf("%d", config.IterationCount))

	if config.VerboseOutput {
		t.Logf("Property test starting with %d iterations (intensity: %s)",
			config.IterationCount, config.Intensity)
	}

	rapid.Check(t, fn)
}

// RapidFileCountGenerator returns a generator for source file counts
// within config limits, in the range [1, MaxFiles].
func RapidFileCountGenerator(config TestConfig) *rapid.Generator[int] {
	if config.MaxFiles <= 1 {
		return rapid.Just(1)
	}
	return rapid.IntRange(1, config.MaxFiles)
}

// RapidLineCountGenerator returns a generator for per-file line counts
// within config limits, in the range [1, MaxLines].
func RapidLineCountGenerator(config TestConfig) *rapid.Generator[int] {
	if config.MaxLines <= 1 {
		return rapid.Just(1)
	}
	return rapid.IntRange(1, config.MaxLines)
}

// RapidModuleNameGenerator returns a generator for plausible Python module
// file names (always .py, always a valid identifier stem).
func RapidModuleNameGenerator() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		stem := rapid.StringMatching(`[a-z][a-z0-9_]{0,15}`).Draw(t, "stem")
		return stem + ".py"
	})
}

// RapidPythonSourceGenerator returns a generator for small Python module
// bodies with a bounded number of definitions.
func RapidPythonSourceGenerator(config TestConfig) *rapid.Generator[string] {
	maxDefs := config.MaxLines / 3
	if maxDefs < 1 {
		maxDefs = 1
	}
	return rapid.Custom(func(t *rapid.T) string {
		n := rapid.IntRange(0, maxDefs).Draw(t, "defs")
		return PythonSource(n)
	})
}
