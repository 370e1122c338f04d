// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify scores a document against category keyword profiles
// and picks the best category above a threshold.
package classify

import (
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/internal/extract"
	"github.com/pdiddy/download-manager/internal/profile"
	"github.com/pdiddy/download-manager/pkg/types"
)

// NoMatch is the Result.Index when no category reaches the threshold.
const NoMatch = -1

// Result is the outcome of one classification.
type Result struct {
	// Index is the position of the matched category in the list passed to
	// Classify, or NoMatch.
	Index int

	// Category is the matched category. Zero when Index is NoMatch.
	Category types.Category

	// Scores holds the similarity against every category, in input order.
	Scores []float64
}

// Matched reports whether a category was selected.
func (r Result) Matched() bool {
	return r.Index != NoMatch
}

// Best returns the index of the highest score, preferring the first on
// ties, if that score is at least threshold. Otherwise it returns NoMatch.
func Best(scores []float64, threshold float64) int {
	if len(scores) == 0 {
		return NoMatch
	}
	best := 0
	for i, s := range scores[1:] {
		if s > scores[best] {
			best = i + 1
		}
	}
	if scores[best] >= threshold {
		return best
	}
	return NoMatch
}

// JoinCandidate builds the string scored against each category document.
func JoinCandidate(tokens []string, mode types.JoinMode) string {
	if mode == types.JoinConcat {
		return strings.Join(tokens, "")
	}
	return strings.Join(tokens, " ")
}

// Classifier scores candidate documents against keyword profiles.
type Classifier struct {
	fs        afero.Fs
	source    extract.TokenSource
	threshold float64
	join      types.JoinMode
	log       *slog.Logger
}

// New returns a Classifier that reads profiles from fs and candidate
// documents through source, using cfg's threshold and join mode.
func New(fs afero.Fs, source extract.TokenSource, cfg types.Config, log *slog.Logger) *Classifier {
	return &Classifier{
		fs:        fs,
		source:    source,
		threshold: cfg.Threshold,
		join:      cfg.CandidateJoin,
		log:       log,
	}
}

// Classify scores tokens against every category's keyword profile and
// selects the best one. A missing profile fails the whole call with a
// configuration error rather than silently dropping that category.
func (c *Classifier) Classify(tokens []string, categories []types.Category) (Result, error) {
	docs, err := c.categoryDocuments(categories)
	if err != nil {
		return Result{Index: NoMatch}, err
	}
	return c.score(tokens, categories, docs), nil
}

// ClassifyFile extracts the document at path and classifies it. Profiles
// are loaded before the document is read.
func (c *Classifier) ClassifyFile(path string, categories []types.Category) (Result, error) {
	docs, err := c.categoryDocuments(categories)
	if err != nil {
		return Result{Index: NoMatch}, err
	}

	tokens, err := c.source.Tokens(path)
	if err != nil {
		return Result{Index: NoMatch}, err
	}
	return c.score(tokens, categories, docs), nil
}

func (c *Classifier) categoryDocuments(categories []types.Category) ([]string, error) {
	docs := make([]string, len(categories))
	for i, cat := range categories {
		keywords, err := profile.Load(c.fs, cat.Keywords)
		if err != nil {
			return nil, err
		}
		docs[i] = strings.Join(keywords, " ")
	}
	return docs, nil
}

func (c *Classifier) score(tokens []string, categories []types.Category, docs []string) Result {
	candidate := JoinCandidate(tokens, c.join)

	scores := make([]float64, len(docs))
	for i, doc := range docs {
		scores[i] = Similarity(doc, candidate)
	}

	idx := Best(scores, c.threshold)
	c.log.Debug("classified", "tokens", len(tokens), "scores", scores, "index", idx, "threshold", c.threshold)

	res := Result{Index: idx, Scores: scores}
	if idx != NoMatch {
		res.Category = categories[idx]
	}
	return res
}
