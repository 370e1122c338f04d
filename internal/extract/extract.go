// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls word tokens out of PDF documents.
//
// Each page's plain text is split on whitespace and tokens are appended in
// page order. No case folding or punctuation stripping is applied.
package extract

import (
	"errors"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/pkg/types"
)

// TokenSource produces the token sequence of a document. The Classifier
// and Builder depend on this interface so tests can supply canned tokens.
type TokenSource interface {
	Tokens(path string) ([]string, error)
}

// Extractor reads PDFs through an afero filesystem using ledongthuc/pdf,
// optionally falling back to the pdftotext binary.
type Extractor struct {
	fs       afero.Fs
	fallback bool
	exec     executor
}

// New returns an Extractor reading from fs. The pdftotext fallback is only
// attempted when cfg enables it and fs is the OS filesystem.
func New(fs afero.Fs, cfg types.ExtractConfig) *Extractor {
	return &Extractor{fs: fs, fallback: cfg.FallbackPdftotext, exec: defaultExec}
}

// Tokens returns the whitespace-split words of every page of the PDF at
// path, in page order. Failures are *types.Error of kind extraction.
func (e *Extractor) Tokens(path string) ([]string, error) {
	pages, err := e.Pages(path)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, page := range pages {
		tokens = append(tokens, Tokenize(page)...)
	}
	return tokens, nil
}

// Pages returns the plain text of each page of the PDF at path.
func (e *Extractor) Pages(path string) ([]string, error) {
	pages, err := e.readPages(path)
	if err == nil {
		return pages, nil
	}

	if e.fallback && e.onDisk() {
		fbPages, fbErr := pdftotextPages(e.exec, path)
		if fbErr == nil {
			return fbPages, nil
		}
		err = errors.Join(err, fbErr)
	}
	return nil, types.NewError(types.KindExtraction, path, err)
}

// Tokenize splits text on runs of Unicode whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

func (e *Extractor) onDisk() bool {
	_, ok := e.fs.(*afero.OsFs)
	return ok
}

// readPages opens the document and extracts each page. The parser panics
// on some malformed inputs; those panics are returned as errors.
func (e *Extractor) readPages(path string) (pages []string, err error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()

	reader, err := pdflib.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing PDF %s: %w", path, err)
	}

	n := reader.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
