// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// termPattern matches runs of two or more word characters. Single
// characters are never terms. Same terms as scikit-learn's default
// token_pattern (?u)\b\w\w+\b: a maximal run of word characters is
// already bounded, so no \b anchors are needed.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Analyze lowercases doc and returns its terms in order.
func Analyze(doc string) []string {
	return termPattern.FindAllString(strings.ToLower(doc), -1)
}

// Vectorizer is a TF-IDF model fit on a fixed set of documents. Weights
// are raw term counts times smoothed idf, ln((1+n)/(1+df)) + 1, and
// vectors are L2-normalized.
type Vectorizer struct {
	vocab []string
	index map[string]int
	idf   []float64
}

// Fit learns the vocabulary and idf weights of docs. The vocabulary is
// sorted so vector layout and summation order never depend on map order.
func Fit(docs ...string) *Vectorizer {
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]bool)
		for _, term := range Analyze(d) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	v := &Vectorizer{
		vocab: vocab,
		index: make(map[string]int, len(vocab)),
		idf:   make([]float64, len(vocab)),
	}
	for i, term := range vocab {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// Vocabulary returns the learned terms in vector order.
func (v *Vectorizer) Vocabulary() []string {
	return v.vocab
}

// Transform returns the L2-normalized TF-IDF vector of doc. Terms outside
// the vocabulary are ignored; a document with no known terms yields the
// zero vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, term := range Analyze(doc) {
		if i, ok := v.index[term]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// Zero vectors have similarity 0.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, s))
}

// Similarity fits a fresh vectorizer on exactly a and b and returns the
// cosine similarity of their vectors. The vocabulary is never shared
// across pairs, so the same document can score differently against
// different partners.
func Similarity(a, b string) float64 {
	v := Fit(a, b)
	if len(v.vocab) == 0 {
		return 0
	}
	return Cosine(v.Transform(a), v.Transform(b))
}
