// Package discovery expands a set of scan roots into the flat set of
// candidate files and narrows it to the files the external checker should
// see. Roots are walked through the host document model, never through the
// OS directly, so unsaved editor state stays authoritative.
package discovery

import (
	"context"
	"runtime"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/logger"
)

// Discover recursively expands every root into the non-directory files
// beneath it. Roots that are plain files resolve to themselves.
//
// Failure policy: a root or subtree that cannot be listed is logged and
// skipped; the call only fails when ctx is cancelled. No ordering is
// guaranteed across the returned handles.
func Discover(ctx context.Context, model document.Model, roots []string) ([]*document.FileHandle, error) {
	var (
		mu    sync.Mutex
		files []*document.FileHandle
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, root := range roots {
		root := root
		g.Go(func() error {
			var located []*document.FileHandle
			if err := walk(ctx, model, root, &located); err != nil {
				return err
			}
			mu.Lock()
			files = append(files, located...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Handles are interned by the model, so pointer uniqueness is path
	// uniqueness. Overlapping roots would otherwise yield duplicates.
	return lo.Uniq(files), nil
}

// walk visits path and every descendant, appending non-directory entries.
// Returns an error only for context cancellation; unreadable entries are
// logged and skipped.
func walk(ctx context.Context, model document.Model, path string, out *[]*document.FileHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// A path the model resolves is a plain file and a candidate itself.
	if h, ok := model.Resolve(path); ok {
		*out = append(*out, h)
		return nil
	}

	children, err := model.ListChildren(path)
	if err != nil {
		logger.LogFileWarning(path, "cannot list children: "+err.Error())
		return nil
	}

	for _, child := range children {
		if child.IsDir {
			if err := walk(ctx, model, child.Path, out); err != nil {
				return err
			}
			continue
		}
		if h, ok := model.Resolve(child.Path); ok {
			*out = append(*out, h)
		}
	}
	return nil
}
