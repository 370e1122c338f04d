// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile builds and stores category keyword profiles.
//
// A profile is a plain UTF-8 text file with one keyword per line. It is
// rebuilt from the category's seed document by ranking the seed's tokens
// by frequency and keeping a window of the top ranks. Rebuilding always
// overwrites the previous profile.
package profile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/internal/extract"
	"github.com/pdiddy/download-manager/pkg/types"
)

// WordCount is a token and the number of times it occurred.
type WordCount struct {
	Word  string
	Count int
}

// TopOccurrences counts tokens of at least minLen runes and returns ranks
// start through end (1-based, inclusive) ordered by descending count. Ties
// keep first-seen order. A window past the end of the ranking is truncated.
func TopOccurrences(tokens []string, start, end, minLen int) ([]WordCount, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid rank window [%d, %d]", start, end)
	}

	index := make(map[string]int)
	var counts []WordCount
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minLen {
			continue
		}
		if i, ok := index[tok]; ok {
			counts[i].Count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, WordCount{Word: tok, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if start > len(counts) {
		return []WordCount{}, nil
	}
	if end > len(counts) {
		end = len(counts)
	}
	return counts[start-1 : end], nil
}

// Words returns the words of counts in order.
func Words(counts []WordCount) []string {
	words := make([]string, len(counts))
	for i, c := range counts {
		words[i] = c.Word
	}
	return words
}

// Save writes keywords to path, one per line with a trailing newline,
// replacing any existing content. The parent directory is created.
func Save(afs afero.Fs, path string, keywords []string) error {
	if err := afs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return types.NewError(types.KindFilesystem, path, fmt.Errorf("creating profile directory: %w", err))
	}

	var b strings.Builder
	for _, k := range keywords {
		b.WriteString(k)
		b.WriteByte('\n')
	}

	if err := afero.WriteFile(afs, path, []byte(b.String()), 0o644); err != nil {
		return types.NewError(types.KindFilesystem, path, fmt.Errorf("writing profile: %w", err))
	}
	return nil
}

// Load reads the keyword profile at path, trimming each line and dropping
// blank ones. A missing profile is a configuration error.
func Load(afs afero.Fs, path string) ([]string, error) {
	f, err := afs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.KindConfiguration, path, fmt.Errorf("keyword profile missing: %w", err))
		}
		return nil, types.NewError(types.KindConfiguration, path, fmt.Errorf("opening keyword profile: %w", err))
	}
	defer f.Close()

	keywords, err := parse(f)
	if err != nil {
		return nil, types.NewError(types.KindConfiguration, path, fmt.Errorf("reading keyword profile: %w", err))
	}
	return keywords, nil
}

func parse(r io.Reader) ([]string, error) {
	var keywords []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			keywords = append(keywords, w)
		}
	}
	return keywords, sc.Err()
}

// Builder rebuilds keyword profiles from seed documents.
type Builder struct {
	fs     afero.Fs
	source extract.TokenSource
	cfg    types.KeywordConfig
}

// NewBuilder returns a Builder that reads seeds through source and writes
// profiles to fs.
func NewBuilder(fs afero.Fs, source extract.TokenSource, cfg types.KeywordConfig) *Builder {
	return &Builder{fs: fs, source: source, cfg: cfg}
}

// Build extracts the seed document, ranks its tokens, and overwrites the
// profile at keywordsPath. It returns the keywords written.
func (b *Builder) Build(seedPath, keywordsPath string) ([]string, error) {
	tokens, err := b.source.Tokens(seedPath)
	if err != nil {
		return nil, err
	}

	top, err := TopOccurrences(tokens, b.cfg.TopStart, b.cfg.TopEnd, b.cfg.MinLength)
	if err != nil {
		return nil, types.NewError(types.KindConfiguration, keywordsPath, err)
	}

	keywords := Words(top)
	if err := Save(b.fs, keywordsPath, keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

// PopulateResult holds the outcome of rebuilding every profile.
type PopulateResult struct {
	Built   int
	Skipped int
	Failed  int
}

// Total returns the number of categories processed.
func (r PopulateResult) Total() int {
	return r.Built + r.Skipped + r.Failed
}

// HasFailures reports whether any profile failed to build.
func (r PopulateResult) HasFailures() bool {
	return r.Failed > 0
}

// BuildAll rebuilds the profile of every category that has both a seed
// document and a keyword path, printing one status line per category to w.
// A failure on one category does not stop the rest.
func (b *Builder) BuildAll(categories []types.Category, w io.Writer) PopulateResult {
	var result PopulateResult
	for _, c := range categories {
		if c.Seed == "" || c.Keywords == "" {
			fmt.Fprintf(w, "skipped: %s (no seed document or keyword path)\n", c.Label())
			result.Skipped++
			continue
		}

		keywords, err := b.Build(c.Seed, c.Keywords)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", c.Label(), err)
			result.Failed++
			continue
		}
		if len(keywords) == 0 {
			fmt.Fprintf(w, "built:   %s -> %s (warning: no keywords of %d+ characters)\n",
				c.Label(), c.Keywords, b.cfg.MinLength)
		} else {
			fmt.Fprintf(w, "built:   %s -> %s (%d keywords)\n", c.Label(), c.Keywords, len(keywords))
		}
		result.Built++
	}

	fmt.Fprintf(w, "\nPopulate summary: %d built, %d skipped, %d failed (total: %d)\n",
		result.Built, result.Skipped, result.Failed, result.Total())
	return result
}
