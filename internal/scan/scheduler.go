package scan

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/yourusername/typescan/internal/logger"
)

// DefaultQuietPeriod is the debounce window for rescan requests.
const DefaultQuietPeriod = 500 * time.Millisecond

// Scheduler coalesces bursts of rescan requests into single scans. Editors
// fire change events in storms (typing, save-all, branch switches); every
// request within the quiet window merges its roots into the next scan.
type Scheduler struct {
	orchestrator *Orchestrator
	debounced    func(func())
	onResult     func(*Result)

	ctx context.Context

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewScheduler creates a Scheduler driving orchestrator. ctx bounds every
// scan the scheduler starts; onResult (optional) receives each scan's
// result on the scan goroutine.
func NewScheduler(ctx context.Context, orchestrator *Orchestrator, quiet time.Duration, onResult func(*Result)) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Scheduler{
		orchestrator: orchestrator,
		debounced:    debounce.New(quiet),
		onResult:     onResult,
		ctx:          ctx,
		pending:      make(map[string]struct{}),
	}
}

// Request queues roots for scanning. The scan starts once no further
// request arrives for the quiet period; roots from merged requests are
// scanned together.
func (s *Scheduler) Request(roots ...string) {
	s.mu.Lock()
	for _, root := range roots {
		s.pending[root] = struct{}{}
	}
	s.mu.Unlock()

	s.debounced(s.flush)
}

// flush launches one scan over everything requested since the last flush.
func (s *Scheduler) flush() {
	s.mu.Lock()
	roots := make([]string, 0, len(s.pending))
	for root := range s.pending {
		roots = append(roots, root)
	}
	s.pending = make(map[string]struct{})
	s.mu.Unlock()

	if len(roots) == 0 {
		return
	}

	logger.Debug("scheduler flushing scan over %d roots", len(roots))
	go func() {
		result := s.orchestrator.Scan(s.ctx, roots)
		if s.onResult != nil {
			s.onResult(result)
		}
	}()
}
