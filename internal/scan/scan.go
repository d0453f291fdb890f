// Package scan sequences one scan batch end to end: discover candidate
// files, snapshot modified buffers, invoke the external checker once, parse
// its output into per-file diagnostics, release the snapshots, and notify
// listeners. A scan is a single cancellable unit of work designed to be
// submitted to a host-managed worker pool.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/yourusername/typescan/internal/diag"
	"github.com/yourusername/typescan/internal/discovery"
	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/logger"
	"github.com/yourusername/typescan/internal/mypy"
	"github.com/yourusername/typescan/internal/snapshot"
)

// State identifies the lifecycle phase a scan is in. With overlapping
// scans the value reflects the most recent transition; it exists for
// monitoring, not for synchronization.
type State int32

const (
	StateIdle State = iota
	StateDiscovering
	StateSnapshotting
	StateInvoking
	StateParsing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateSnapshotting:
		return "snapshotting"
	case StateInvoking:
		return "invoking"
	case StateParsing:
		return "parsing"
	}
	return "unknown"
}

// Outcome tags how a scan ended.
type Outcome int

const (
	// OutcomeSuccess means the checker ran (or had nothing to do) and the
	// result map is authoritative.
	OutcomeSuccess Outcome = iota
	// OutcomeCancelled means the caller interrupted the scan. It is not an
	// error: the editor treats it as "try again later".
	OutcomeCancelled
	// OutcomeFailed means a validation or tool error ended the scan.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the product of one scan. Files always holds an entry per
// scanned file on success (empty slice = scanned clean); it is empty for
// cancelled and failed scans. Err is set only for OutcomeFailed.
type Result struct {
	Outcome Outcome
	Files   map[*document.FileHandle][]diag.Diagnostic
	Err     error
}

// Options configures an Orchestrator.
type Options struct {
	// ProjectRoot anchors relative diagnostic paths and is the checker's
	// working directory.
	ProjectRoot string

	// SourceRoots are the directories whose files are eligible; empty
	// means the project root.
	SourceRoots []string

	// CheckAll widens eligibility to any project-owned file.
	CheckAll bool

	// TabWidth translates reported diagnostic columns; zero means the
	// parser default.
	TabWidth int

	// ScratchDir overrides where temporary snapshots are written.
	ScratchDir string
}

// Orchestrator runs scans. All per-scan state is local to each Scan call,
// so concurrent invocations are safe; they share only the listener
// registry and the monitoring state value.
type Orchestrator struct {
	model  document.Model
	runner mypy.Runner
	filter *discovery.Filter
	opts   Options

	registry listenerRegistry
	state    atomic.Int32
}

// NewOrchestrator creates an Orchestrator reading documents from model and
// invoking the checker through runner.
func NewOrchestrator(model document.Model, runner mypy.Runner, opts Options) *Orchestrator {
	return &Orchestrator{
		model:  model,
		runner: runner,
		filter: discovery.NewFilter(opts.ProjectRoot, opts.SourceRoots, opts.CheckAll),
		opts:   opts,
	}
}

// AddListener registers a lifecycle listener. Meant to be called during
// setup, before scans start.
func (o *Orchestrator) AddListener(l Listener) {
	o.registry.add(l)
}

// State returns the most recently entered lifecycle phase.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Scan expands roots, narrows them through the eligibility filter and runs
// one scan batch over the surviving files.
//
// The returned Result is never nil. Every failure is folded into it; the
// only way to get OutcomeCancelled is through ctx.
func (o *Orchestrator) Scan(ctx context.Context, roots []string) *Result {
	o.setState(StateDiscovering)
	defer o.setState(StateIdle)

	discovered, err := discovery.Discover(ctx, o.model, roots)
	if err != nil {
		// Discovery only fails on cancellation; nothing was started yet,
		// so this is still an empty success.
		return o.cancelled()
	}

	eligible := o.filter.Narrow(discovered)
	logger.Debug("discovered %d files, %d eligible", len(discovered), len(eligible))

	return o.run(ctx, eligible)
}

// ScanFiles runs one scan batch over an explicit, already-filtered file
// list (the host's "scan these files" entry point).
func (o *Orchestrator) ScanFiles(ctx context.Context, files []*document.FileHandle) *Result {
	defer o.setState(StateIdle)
	return o.run(ctx, files)
}

// run drives one batch through snapshot -> invoke -> parse -> cleanup and
// performs exactly one listener notification.
func (o *Orchestrator) run(ctx context.Context, files []*document.FileHandle) *Result {
	o.fireScanStarting(files)

	if len(files) == 0 {
		logger.Debug("no files to scan, skipping checker invocation")
		return o.succeeded(emptyResults())
	}

	o.setState(StateSnapshotting)
	snaps, err := snapshot.CreateAndValidate(o.model, files, snapshot.Options{ScratchDir: o.opts.ScratchDir})
	// Snapshots already created are released no matter how the scan ends.
	defer snapshot.ReleaseAll(snaps)
	if err != nil {
		return o.failed(fmt.Errorf("failed to snapshot files: %w", err))
	}
	if ctx.Err() != nil {
		return o.cancelled()
	}

	paths := lo.Map(snaps, func(s *snapshot.ScannableFile, _ int) string {
		return s.Path()
	})

	o.setState(StateInvoking)
	lines, err := o.runner.Run(ctx, o.opts.ProjectRoot, paths)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			logger.Debug("scan cancelled by caller")
			return o.cancelled()
		}
		return o.failed(fmt.Errorf("checker invocation failed: %w", err))
	}

	o.setState(StateParsing)
	parser := diag.NewParser(o.opts.TabWidth, o.opts.ProjectRoot)
	results := parser.Parse(lines, mapPathsToHandles(snaps), o.model)

	return o.succeeded(results)
}

// mapPathsToHandles maps both the materialized path (what the tool reports
// for snapshotted buffers) and the original path back to the handle.
func mapPathsToHandles(snaps []*snapshot.ScannableFile) map[string]*document.FileHandle {
	mapping := make(map[string]*document.FileHandle, len(snaps))
	for _, s := range snaps {
		mapping[s.Path()] = s.Handle()
		mapping[s.Handle().Path()] = s.Handle()
	}
	return mapping
}

func emptyResults() map[*document.FileHandle][]diag.Diagnostic {
	return map[*document.FileHandle][]diag.Diagnostic{}
}

func (o *Orchestrator) succeeded(results map[*document.FileHandle][]diag.Diagnostic) *Result {
	o.fireScanCompleted(results)
	return &Result{Outcome: OutcomeSuccess, Files: results}
}

// cancelled models interruption as "successfully scanned nothing":
// listeners observe a completed scan with an empty result map.
func (o *Orchestrator) cancelled() *Result {
	results := emptyResults()
	o.fireScanCompleted(results)
	return &Result{Outcome: OutcomeCancelled, Files: results}
}

func (o *Orchestrator) failed(err error) *Result {
	logger.Error("scan failed: %v", err)
	o.fireScanFailed(err)
	return &Result{Outcome: OutcomeFailed, Files: emptyResults(), Err: err}
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
}

func (o *Orchestrator) fireScanStarting(files []*document.FileHandle) {
	for _, l := range o.registry.snapshot() {
		l.ScanStarting(files)
	}
}

func (o *Orchestrator) fireScanCompleted(results map[*document.FileHandle][]diag.Diagnostic) {
	for _, l := range o.registry.snapshot() {
		l.ScanCompleted(results)
	}
}

func (o *Orchestrator) fireScanFailed(err error) {
	for _, l := range o.registry.snapshot() {
		l.ScanFailed(err)
	}
}
