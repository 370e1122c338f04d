// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/download-manager/pkg/types"
)

// fakeSource implements extract.TokenSource with canned tokens per path.
type fakeSource struct {
	tokens map[string][]string
}

func (f *fakeSource) Tokens(path string) ([]string, error) {
	toks, ok := f.tokens[path]
	if !ok {
		return nil, types.NewError(types.KindExtraction, path, errors.New("unreadable"))
	}
	return toks, nil
}

var defaultKeywordConfig = types.KeywordConfig{MinLength: 5, TopStart: 1, TopEnd: 100}

func TestTopOccurrences(t *testing.T) {
	tokens := []string{"ab", "abcd", "alpha", "alpha", "beta", "beta", "beta"}

	tests := []struct {
		name       string
		start, end int
		minLen     int
		want       []WordCount
	}{
		{
			name: "ranked by frequency", start: 1, end: 3, minLen: 4,
			want: []WordCount{{"beta", 3}, {"alpha", 2}, {"abcd", 1}},
		},
		{
			name: "window inside ranking", start: 2, end: 2, minLen: 4,
			want: []WordCount{{"alpha", 2}},
		},
		{
			name: "window past the end is truncated", start: 2, end: 100, minLen: 4,
			want: []WordCount{{"alpha", 2}, {"abcd", 1}},
		},
		{
			name: "start past the end", start: 5, end: 10, minLen: 4,
			want: []WordCount{},
		},
		{
			name: "min length filters frequent short words", start: 1, end: 10, minLen: 5,
			want: []WordCount{{"alpha", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopOccurrences(tokens, tt.start, tt.end, tt.minLen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopOccurrences_TiesKeepFirstSeenOrder(t *testing.T) {
	tokens := []string{"zebra", "apple", "mango", "apple", "zebra", "mango", "kiwis"}
	got, err := TopOccurrences(tokens, 1, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango", "kiwis"}, Words(got))
}

func TestTopOccurrences_CountsRunesNotBytes(t *testing.T) {
	// "über" is 4 runes but 5 bytes.
	got, err := TopOccurrences([]string{"über", "größe"}, 1, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"größe"}, Words(got))
}

func TestTopOccurrences_InvalidWindow(t *testing.T) {
	for _, w := range [][2]int{{0, 10}, {5, 4}, {-1, -1}} {
		_, err := TopOccurrences([]string{"alpha"}, w[0], w[1], 1)
		assert.Error(t, err, "window %v", w)
	}
}

func TestSaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, Save(fs, "/meta/math.txt", []string{"matrix", "vector"}))

	raw, err := afero.ReadFile(fs, "/meta/math.txt")
	require.NoError(t, err)
	assert.Equal(t, "matrix\nvector\n", string(raw))

	got, err := Load(fs, "/meta/math.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"matrix", "vector"}, got)
}

func TestLoad_TrimsAndSkipsBlankLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p.txt", []byte("  entropy \r\n\nheat\n\n"), 0o644))

	got, err := Load(fs, "/p.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"entropy", "heat"}, got)
}

func TestLoad_MissingIsConfigurationError(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/meta/none.txt")
	require.Error(t, err)
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
	assert.Contains(t, err.Error(), "/meta/none.txt")
}

func TestBuilder_Build(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := &fakeSource{tokens: map[string][]string{
		"/seed.pdf": {"the", "entropy", "of", "entropy", "systems", "heat", "entropy", "systems"},
	}}
	b := NewBuilder(fs, src, defaultKeywordConfig)

	keywords, err := b.Build("/seed.pdf", "/meta/thermo.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"entropy", "systems"}, keywords)

	raw, err := afero.ReadFile(fs, "/meta/thermo.txt")
	require.NoError(t, err)
	assert.Equal(t, "entropy\nsystems\n", string(raw))
}

func TestBuilder_BuildIsIdempotentOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/meta", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/meta/p.txt", []byte("stale\nkeywords\nfrom\nbefore\n"), 0o644))

	src := &fakeSource{tokens: map[string][]string{"/seed.pdf": {"sorting", "algorithm", "sorting"}}}
	b := NewBuilder(fs, src, defaultKeywordConfig)

	_, err := b.Build("/seed.pdf", "/meta/p.txt")
	require.NoError(t, err)
	first, err := afero.ReadFile(fs, "/meta/p.txt")
	require.NoError(t, err)

	_, err = b.Build("/seed.pdf", "/meta/p.txt")
	require.NoError(t, err)
	second, err := afero.ReadFile(fs, "/meta/p.txt")
	require.NoError(t, err)

	assert.Equal(t, "sorting\nalgorithm\n", string(first))
	assert.Equal(t, first, second)
}

func TestBuilder_RespectsWindow(t *testing.T) {
	var tokens []string
	for i := 0; i < 150; i++ {
		word := fmt.Sprintf("word%03d", i)
		for j := 0; j <= i%3; j++ {
			tokens = append(tokens, word)
		}
	}
	src := &fakeSource{tokens: map[string][]string{"/seed.pdf": tokens}}
	b := NewBuilder(afero.NewMemMapFs(), src, defaultKeywordConfig)

	keywords, err := b.Build("/seed.pdf", "/p.txt")
	require.NoError(t, err)
	assert.Len(t, keywords, 100)
	assert.Equal(t, "word002", keywords[0])
}

func TestBuilder_BuildErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewBuilder(fs, &fakeSource{}, defaultKeywordConfig)

	_, err := b.Build("/missing.pdf", "/p.txt")
	require.Error(t, err)
	assert.Equal(t, types.KindExtraction, types.KindOf(err))

	exists, _ := afero.Exists(fs, "/p.txt")
	assert.False(t, exists, "failed build must not touch the profile")

	bad := NewBuilder(fs, &fakeSource{tokens: map[string][]string{"/s.pdf": {"alpha"}}},
		types.KeywordConfig{MinLength: 1, TopStart: 0, TopEnd: 1})
	_, err = bad.Build("/s.pdf", "/p.txt")
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
}

func TestBuilder_BuildAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := &fakeSource{tokens: map[string][]string{
		"/meta/math.pdf":   {"matrix", "matrix", "vector"},
		"/meta/thermo.pdf": {"heat", "gas"},
	}}
	b := NewBuilder(fs, src, defaultKeywordConfig)

	cats := []types.Category{
		{Name: "math", Path: "/uni/math", Keywords: "/meta/math.txt", Seed: "/meta/math.pdf"},
		{Name: "thermo", Path: "/uni/thermo", Keywords: "/meta/thermo.txt", Seed: "/meta/thermo.pdf"},
		{Name: "dsal", Path: "/uni/dsal", Keywords: "/meta/dsal.txt", Seed: "/meta/dsal.pdf"},
		{Name: "misc", Path: "/uni/misc"},
	}

	var out bytes.Buffer
	result := b.BuildAll(cats, &out)

	assert.Equal(t, PopulateResult{Built: 2, Skipped: 1, Failed: 1}, result)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 4, result.Total())

	log := out.String()
	assert.Contains(t, log, "built:   math -> /meta/math.txt (2 keywords)")
	assert.Contains(t, log, "built:   thermo -> /meta/thermo.txt (warning: no keywords of 5+ characters)")
	assert.Contains(t, log, "failed:  dsal")
	assert.Contains(t, log, "skipped: misc")
	assert.Contains(t, log, "Populate summary: 2 built, 1 skipped, 1 failed (total: 4)")

	got, err := Load(fs, "/meta/math.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"matrix", "vector"}, got)
}
