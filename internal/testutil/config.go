// Package testutil provides utilities for configuring and running tests
// with different intensity levels, plus fixture builders for Python
// project trees.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TestIntensity represents the thoroughness level of test execution.
type TestIntensity int

const (
	// IntensityQuick runs tests with minimal resources for fast feedback during development.
	IntensityQuick TestIntensity = iota
	// IntensityThorough runs tests with comprehensive resources for thorough validation in CI.
	IntensityThorough
)

// String returns the string representation of the test intensity.
func (ti TestIntensity) String() string {
	switch ti {
	case IntensityQuick:
		return "quick"
	case IntensityThorough:
		return "thorough"
	default:
		return "unknown"
	}
}

// TestConfig holds configuration parameters for test execution.
type TestConfig struct {
	// Intensity level (quick or thorough)
	Intensity TestIntensity

	// Number of iterations for property tests
	IterationCount int

	// Maximum number of source files to create in test cases
	MaxFiles int

	// Maximum number of lines per generated source file
	MaxLines int

	// Maximum directory depth for nested package structures
	MaxDepth int

	// Timeout duration for individual tests
	Timeout time.Duration

	// Enable verbose test output
	VerboseOutput bool
}

// GetTestConfig returns the current test configuration based on environment
// variables. It reads TEST_INTENSITY, TEST_QUICK, and VERBOSE_TESTS.
// Defaults to quick mode if no environment variables are set.
func GetTestConfig() TestConfig {
	config := TestConfig{}

	// TEST_QUICK override takes precedence
	testQuick := os.Getenv("TEST_QUICK")
	if testQuick == "1" || strings.ToLower(testQuick) == "true" {
		config.Intensity = IntensityQuick
	} else {
		switch strings.ToLower(os.Getenv("TEST_INTENSITY")) {
		case "thorough":
			config.Intensity = IntensityThorough
		default:
			config.Intensity = IntensityQuick
		}
	}

	switch config.Intensity {
	case IntensityQuick:
		config.IterationCount = 10
		config.MaxFiles = 50
		config.MaxLines = 40
		config.MaxDepth = 3
		config.Timeout = 30 * time.Second
	case IntensityThorough:
		config.IterationCount = 100
		config.MaxFiles = 500
		config.MaxLines = 200
		config.MaxDepth = 5
		config.Timeout = 5 * time.Minute
	}

	verboseTests := os.Getenv("VERBOSE_TESTS")
	config.VerboseOutput = verboseTests == "1" || strings.ToLower(verboseTests) == "true"

	return config
}

var testConfig TestConfig

func init() {
	testConfig = GetTestConfig()

	if testConfig.VerboseOutput {
		fmt.Printf("Test Configuration: intensity=%s, iterations=%d, maxFiles=%d, maxLines=%d, maxDepth=%d, timeout=%s\n",
			testConfig.Intensity,
			testConfig.IterationCount,
			testConfig.MaxFiles,
			testConfig.MaxLines,
			testConfig.MaxDepth,
			testConfig.Timeout,
		)
	}
}
