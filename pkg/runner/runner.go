package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of processing one file.
type Outcome[T any] struct {
	// Path is the file path that was processed.
	Path string

	// Value is what the processing function returned.
	Value T

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
}

// Result is the overall runner result.
type Result[T any] struct {
	// Files contains the outcome for each file, ordered by path.
	Files []Outcome[T]

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Func processes a single file.
type Func[T any] func(ctx context.Context, path string) (T, error)

// Run discovers files under opts and calls fn for each of them with at most
// opts.Jobs calls in flight. An error from fn is recorded on that file's
// outcome and does not stop the others. Only discovery failures and
// cancellation are returned as errors.
func Run[T any](ctx context.Context, opts Options, fn Func[T]) (*Result[T], error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return Process(ctx, files, opts.Jobs, fn)
}

// Process calls fn for every file in files concurrently. The outcomes keep
// the order of files.
func Process[T any](ctx context.Context, files []string, jobs int, fn Func[T]) (*Result[T], error) {
	result := &Result[T]{
		Files: make([]Outcome[T], len(files)),
		Stats: Stats{FilesDiscovered: len(files)},
	}
	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for idx, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			value, err := fn(gctx, path)
			result.Files[idx] = Outcome[T]{Path: path, Value: value, Error: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			result.Stats.FilesErrored++
		} else {
			result.Stats.FilesProcessed++
		}
	}
	return result, nil
}
