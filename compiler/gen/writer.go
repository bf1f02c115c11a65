package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer persists dialect artifacts to disk.
type Writer struct {
	dialect string
	layout  Layout
	target  string
	workers int

	mu     sync.Mutex
	report *Report
}

// Report summarizes a write pass.
type Report struct {
	Dialect string
	Files   []string // written paths, in artifact order.
	Bytes   int64
	Tables  int // tables in the generated model; set by the caller.
}

// NewWriter creates a writer for the artifacts of d. For SingleFile dialects
// target is the output file, for PerTable dialects the output directory.
func NewWriter(d Dialect, target string) *Writer {
	return &Writer{
		dialect: d.Name(),
		layout:  d.Layout(),
		target:  target,
		workers: 1,
	}
}

// WithWorkers sets the number of parallel file writes.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Write writes all artifacts. The resulting files do not depend on the
// number of workers.
func (w *Writer) Write(ctx context.Context, artifacts []*Artifact) (*Report, error) {
	paths, err := w.paths(artifacts)
	if err != nil {
		return nil, err
	}
	w.report = &Report{Dialect: w.dialect, Files: paths}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, a := range artifacts {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(paths[i], a)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return w.report, nil
}

// paths resolves the destination of every artifact.
func (w *Writer) paths(artifacts []*Artifact) ([]string, error) {
	if w.target == "" {
		return nil, NewConfigError("Target", nil, "missing output path")
	}
	switch w.layout {
	case SingleFile:
		if len(artifacts) != 1 {
			return nil, NewGenerationError(w.dialect, w.target, fmt.Sprintf("single-file dialect produced %d artifacts", len(artifacts)), nil)
		}
		return []string{w.target}, nil
	case PerTable:
		paths := make([]string, len(artifacts))
		seen := make(map[string]bool, len(artifacts))
		for i, a := range artifacts {
			if a.Name == "" || a.Name != filepath.Base(a.Name) || a.Name == "." || a.Name == ".." {
				return nil, NewGenerationError(w.dialect, a.Name, "invalid artifact name", nil)
			}
			if seen[a.Name] {
				return nil, NewGenerationError(w.dialect, a.Name, "duplicate artifact name", nil)
			}
			seen[a.Name] = true
			paths[i] = filepath.Join(w.target, a.Name)
		}
		return paths, nil
	default:
		return nil, NewGenerationError(w.dialect, "", fmt.Sprintf("unknown layout %d", w.layout), nil)
	}
}

// writeFile writes a single artifact.
func (w *Writer) writeFile(path string, a *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError(w.dialect, path, "create directory", err)
	}
	if err := os.WriteFile(path, a.Content, 0o644); err != nil {
		return NewGenerationError(w.dialect, path, "write file", err)
	}
	slog.Debug("file written", "dialect", w.dialect, "path", path, "bytes", len(a.Content))

	w.mu.Lock()
	w.report.Bytes += int64(len(a.Content))
	w.mu.Unlock()
	return nil
}
