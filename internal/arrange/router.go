// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arrange routes downloaded files to their destination folders.
//
// The Router decides where a single file goes: PDFs by content similarity
// against category keyword profiles, archives and pictures by extension.
// The Orchestrator applies the Router to every regular file in a folder,
// one at a time, and keeps going when a file fails.
package arrange

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/internal/classify"
	"github.com/pdiddy/download-manager/pkg/types"
)

const extPDF = ".pdf"

// ContentClassifier selects a category for a document. *classify.Classifier
// implements it.
type ContentClassifier interface {
	ClassifyFile(path string, categories []types.Category) (classify.Result, error)
}

// Options adjusts Router behaviour.
type Options struct {
	// DryRun reports decisions without moving anything.
	DryRun bool
}

// Router dispatches one file to its destination.
type Router struct {
	fs         afero.Fs
	cfg        types.Config
	categories []types.Category
	classifier ContentClassifier
	log        *slog.Logger
	opts       Options
}

// NewRouter returns a Router for cfg. Only categories with a keyword
// profile path take part in content routing.
func NewRouter(fs afero.Fs, cfg types.Config, classifier ContentClassifier, log *slog.Logger, opts Options) *Router {
	return &Router{
		fs:         fs,
		cfg:        cfg,
		categories: cfg.Classifiable(),
		classifier: classifier,
		log:        log,
		opts:       opts,
	}
}

// RouteOf returns the route for path based on its extension, compared
// case-insensitively.
func (r *Router) RouteOf(path string) types.Route {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == extPDF:
		return types.RouteContent
	case slices.Contains(r.cfg.ArchiveExtensions, ext):
		return types.RouteArchive
	case slices.Contains(r.cfg.PictureExtensions, ext):
		return types.RoutePicture
	default:
		return types.RouteNone
	}
}

// Route handles one file and writes one status line to w for every
// outcome except failure. Failures are returned for the caller to report;
// the returned Decision then has OutcomeFailed.
func (r *Router) Route(path string, w io.Writer) (types.Decision, error) {
	d := types.Decision{Path: path, Route: r.RouteOf(path)}

	switch d.Route {
	case types.RouteContent:
		return r.routeContent(d, w)
	case types.RouteArchive:
		return r.moveTo(d, r.cfg.ArchiveDir, w)
	case types.RoutePicture:
		return r.moveTo(d, r.cfg.PicturesDir, w)
	default:
		d.Outcome = types.OutcomeIgnored
		fmt.Fprintf(w, "ignored:      %s\n", path)
		return d, nil
	}
}

func (r *Router) routeContent(d types.Decision, w io.Writer) (types.Decision, error) {
	if len(r.categories) == 0 {
		d.Outcome = types.OutcomeUnclassified
		fmt.Fprintf(w, "unclassified: %s (no categories with keyword profiles)\n", d.Path)
		return d, nil
	}

	res, err := r.classifier.ClassifyFile(d.Path, r.categories)
	if err != nil {
		d.Outcome = types.OutcomeFailed
		return d, err
	}
	d.Scores = res.Scores
	r.log.Info("scored document", "path", d.Path, "scores", res.Scores, "index", res.Index)

	if !res.Matched() {
		d.Outcome = types.OutcomeUnclassified
		fmt.Fprintf(w, "unclassified: %s (best score %.6g below threshold %.6g)\n",
			d.Path, maxScore(res.Scores), r.cfg.Threshold)
		return d, nil
	}

	d.Category = res.Category.Label()
	return r.moveTo(d, res.Category.Path, w)
}

func (r *Router) moveTo(d types.Decision, dir string, w io.Writer) (types.Decision, error) {
	label := ""
	if d.Category != "" {
		label = fmt.Sprintf(" [%s]", d.Category)
	}

	if r.opts.DryRun {
		d.Outcome = types.OutcomeMoved
		d.Destination = dir
		fmt.Fprintf(w, "would move:   %s -> %s%s\n", d.Path, dir, label)
		return d, nil
	}

	if _, err := Move(r.fs, d.Path, dir); err != nil {
		d.Outcome = types.OutcomeFailed
		return d, err
	}
	d.Outcome = types.OutcomeMoved
	d.Destination = dir
	fmt.Fprintf(w, "moved:        %s -> %s%s\n", d.Path, dir, label)
	return d, nil
}

func maxScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return slices.Max(scores)
}
