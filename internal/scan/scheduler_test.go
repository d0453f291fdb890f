package scan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/testutil"
)

func TestScheduler_CoalescesBursts(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"a.py": "x = 1\n",
	})

	runner := &fakeRunner{}
	orch := NewOrchestrator(document.NewOSModel(), runner, Options{
		ProjectRoot: root,
		ScratchDir:  t.TempDir(),
	})

	results := make(chan *Result, 16)
	s := NewScheduler(context.Background(), orch, 50*time.Millisecond, func(r *Result) {
		results <- r
	})

	// An editor-style burst: many change events in quick succession.
	for i := 0; i < 10; i++ {
		s.Request(root)
	}

	select {
	case r := <-results:
		if r.Outcome != OutcomeSuccess {
			t.Fatalf("Expected success, got %v", r.Outcome)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for debounced scan")
	}

	if got := runner.callCount(); got != 1 {
		t.Errorf("Expected burst coalesced into 1 invocation, got %d", got)
	}

	// No further requests, no further scans.
	select {
	case <-results:
		t.Error("Unexpected second scan after a single burst")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestScheduler_MergesRootsAcrossRequests(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"front/a.py": "x = 1\n",
		"back/b.py":  "y = 2\n",
	})

	runner := &fakeRunner{}
	orch := NewOrchestrator(document.NewOSModel(), runner, Options{
		ProjectRoot: root,
		ScratchDir:  t.TempDir(),
	})

	results := make(chan *Result, 4)
	s := NewScheduler(context.Background(), orch, 50*time.Millisecond, func(r *Result) {
		results <- r
	})

	s.Request(filepath.Join(root, "front"))
	s.Request(filepath.Join(root, "back"))

	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for debounced scan")
	}

	if got := runner.callCount(); got != 1 {
		t.Fatalf("Expected a single merged scan, got %d invocations", got)
	}
	if paths := runner.lastCall(); len(paths) != 2 {
		t.Errorf("Expected both roots' files in one batch, got %v", paths)
	}
}

func TestScheduler_SeparateBurstsScanSeparately(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"a.py": "x = 1\n",
	})

	runner := &fakeRunner{}
	orch := NewOrchestrator(document.NewOSModel(), runner, Options{
		ProjectRoot: root,
		ScratchDir:  t.TempDir(),
	})

	results := make(chan *Result, 4)
	s := NewScheduler(context.Background(), orch, 30*time.Millisecond, func(r *Result) {
		results <- r
	})

	s.Request(root)
	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for first scan")
	}

	s.Request(root)
	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for second scan")
	}

	if got := runner.callCount(); got != 2 {
		t.Errorf("Expected 2 scans for 2 separated bursts, got %d", got)
	}
}
