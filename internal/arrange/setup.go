// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arrange

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/pkg/types"
)

// Folders returns every folder the configuration needs, deduplicated, in
// a stable order: category folders, archive and pictures folders, then
// the folders holding keyword profiles.
func Folders(cfg types.Config) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(d string) {
		if d == "" {
			return
		}
		d = filepath.Clean(d)
		if seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, c := range cfg.Categories {
		add(c.Path)
	}
	add(cfg.ArchiveDir)
	add(cfg.PicturesDir)
	for _, c := range cfg.Categories {
		if c.Keywords != "" {
			add(filepath.Dir(c.Keywords))
		}
	}
	return dirs
}

// Setup creates every folder from Folders. Existing folders are left
// alone, so Setup is safe to run repeatedly. Each folder gets one status
// line on w; failures are collected and returned together.
func Setup(afs afero.Fs, cfg types.Config, w io.Writer) error {
	var errs []error
	for _, dir := range Folders(cfg) {
		exists, err := afero.DirExists(afs, dir)
		if err == nil && exists {
			fmt.Fprintf(w, "exists:  %s\n", dir)
			continue
		}
		if err := afs.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", dir, err)
			errs = append(errs, types.NewError(types.KindFilesystem, dir, err))
			continue
		}
		fmt.Fprintf(w, "created: %s\n", dir)
	}
	return errors.Join(errs...)
}
