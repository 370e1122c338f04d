// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var defaultExec = &osExecutor{}

// pdftotextPages runs pdftotext on path and splits its output into pages
// on form feeds. A trailing empty page after the final form feed is
// dropped.
func pdftotextPages(ex executor, path string) ([]string, error) {
	if _, err := ex.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s fallback unavailable: %w", binPdftotext, err)
	}

	out, err := ex.Output(binPdftotext, "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", binPdftotext, path, err)
	}

	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}
