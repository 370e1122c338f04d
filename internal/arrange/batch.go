// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arrange

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/pkg/types"
)

// BatchResult holds the outcome of routing a folder.
type BatchResult struct {
	Moved        int
	Unclassified int
	Ignored      int
	Failed       int
}

// Total returns the number of files visited.
func (r BatchResult) Total() int {
	return r.Moved + r.Unclassified + r.Ignored + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(o types.Outcome) {
	switch o {
	case types.OutcomeMoved:
		r.Moved++
	case types.OutcomeUnclassified:
		r.Unclassified++
	case types.OutcomeIgnored:
		r.Ignored++
	default:
		r.Failed++
	}
}

// Orchestrator feeds every file of a folder to a Router.
type Orchestrator struct {
	fs     afero.Fs
	router *Router
	log    *slog.Logger
}

// NewOrchestrator returns an Orchestrator that lists folders on fs and
// routes each file through router.
func NewOrchestrator(fs afero.Fs, router *Router, log *slog.Logger) *Orchestrator {
	return &Orchestrator{fs: fs, router: router, log: log}
}

// Run routes every regular file directly inside sourceDir, in name order.
// Sub-folders are not descended into. A missing or unreadable sourceDir is
// returned before any file is touched; per-file failures are reported and
// counted and never stop the batch.
func (o *Orchestrator) Run(sourceDir string, w io.Writer) (BatchResult, error) {
	files, err := ListFiles(o.fs, sourceDir)
	if err != nil {
		return BatchResult{}, err
	}
	o.log.Debug("scanning source folder", "dir", sourceDir, "files", len(files))
	return o.RouteFiles(files, w), nil
}

// RouteFiles routes each path in order and prints a summary line. Paths
// that are not regular files (after following symlinks) are ignored and
// never moved; paths that cannot be inspected count as failures.
func (o *Orchestrator) RouteFiles(paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		info, err := o.fs.Stat(p)
		if err != nil {
			err = types.NewError(types.KindFilesystem, p, err)
			fmt.Fprintf(w, "failed:       %s (%v)\n", p, err)
			o.log.Error("routing failed", "path", p, "kind", types.KindFilesystem, "error", err)
			result.Failed++
			continue
		}
		if !info.Mode().IsRegular() {
			fmt.Fprintf(w, "ignored:      %s (not a regular file)\n", p)
			result.Ignored++
			continue
		}

		d, err := o.router.Route(p, w)
		if err != nil {
			kind := types.KindOf(err)
			fmt.Fprintf(w, "failed:       %s (%v)\n", p, err)
			o.log.Error("routing failed", "path", p, "kind", kind, "route", d.Route, "error", err)
			result.Failed++
			continue
		}
		result.add(d.Outcome)
	}

	fmt.Fprintf(w, "\nBatch summary: %d moved, %d unclassified, %d ignored, %d failed (total: %d)\n",
		result.Moved, result.Unclassified, result.Ignored, result.Failed, result.Total())
	return result
}

// ListFiles returns the paths of the regular files directly inside dir,
// sorted by name. Symbolic links are followed to decide whether they
// point at a regular file.
func ListFiles(afs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(afs, dir)
	if err != nil {
		return nil, types.NewError(types.KindConfiguration, dir, fmt.Errorf("reading source folder: %w", err))
	}

	var files []string
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if isRegularFile(afs, path, info) {
			files = append(files, path)
		}
	}
	return files, nil
}

func isRegularFile(afs afero.Fs, path string, info fs.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := afs.Stat(path)
		if err != nil {
			return false
		}
		info = target
	}
	return info.Mode().IsRegular()
}
