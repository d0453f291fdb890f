package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/logger"
	"github.com/yourusername/typescan/internal/mypy"
	"github.com/yourusername/typescan/internal/report"
	"github.com/yourusername/typescan/internal/scan"
)

// Process exit codes. exitInterrupted follows the 128+SIGINT shell
// convention; an interrupted scan is not a tool failure.
const (
	exitClean       = 0
	exitIssues      = 1
	exitFailure     = 2
	exitInterrupted = 130
)

// exitCode is set by the subcommand and consumed by main after Execute
// returns, so deferred cleanup still runs.
var exitCode = exitClean

var (
	flagAll        bool
	flagTabWidth   int
	flagMypy       string
	flagConfig     string
	flagScratchDir string
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan Python files and print mypy diagnostics",
	Long: `Scan expands the given paths (default: the current directory) to the
Python files beneath them, runs mypy once over the batch and prints every
diagnostic. The project root and configuration are located by walking up
from the first path looking for mypy.ini, .mypy.ini or a pyproject.toml
with a [tool.mypy] section.

Exit codes: 0 no errors, 1 errors reported, 2 scan failure.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&flagAll, "all", false, "check every project file, not only source roots")
	scanCmd.Flags().IntVar(&flagTabWidth, "tab-width", 0, "tab width for column translation (0 = default)")
	scanCmd.Flags().StringVar(&flagMypy, "mypy", "", "mypy executable to invoke (default: mypy from PATH)")
	scanCmd.Flags().StringVar(&flagConfig, "config", "", "mypy config file (default: discovered)")
	scanCmd.Flags().StringVar(&flagScratchDir, "scratch-dir", "", "directory for temporary file copies")
}

func runScan(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	configPath := flagConfig
	if configPath == "" {
		if found, ok, err := mypy.FindConfig(roots[0]); err != nil {
			return err
		} else if ok {
			configPath = found
			logger.Debug("using mypy config %s", configPath)
		}
	}

	projectRoot, err := mypy.FindProjectRoot(roots[0])
	if err != nil {
		return err
	}
	logger.Debug("project root: %s", projectRoot)

	runner := &mypy.CommandRunner{
		Executable: flagMypy,
		ConfigPath: configPath,
	}

	orchestrator := scan.NewOrchestrator(document.NewOSModel(), runner, scan.Options{
		ProjectRoot: projectRoot,
		CheckAll:    flagAll,
		TabWidth:    flagTabWidth,
		ScratchDir:  flagScratchDir,
	})
	orchestrator.AddListener(scan.ListenerFuncs{
		OnStarting: func(files []*document.FileHandle) {
			logger.Info("scanning %d files", len(files))
		},
	})

	ctx, cancel := scan.SetupInterruptHandler()
	defer cancel()

	start := time.Now()
	result := orchestrator.Scan(ctx, roots)
	elapsed := time.Since(start)

	switch result.Outcome {
	case scan.OutcomeFailed:
		exitCode = exitFailure
		return result.Err
	case scan.OutcomeCancelled:
		fmt.Fprintln(os.Stderr, "Scan interrupted")
		exitCode = exitInterrupted
		return nil
	}

	if out := report.Render(result.Files); out != "" {
		fmt.Print(out)
	}
	fmt.Println(report.Summary(result.Files, elapsed))

	if report.HasErrors(result.Files) {
		exitCode = exitIssues
	}
	return nil
}
