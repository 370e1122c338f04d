// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/download-manager/pkg/types"
)

const sampleYAML = `
source_dir: /data/downloads
archive_dir: /data/archives
pictures_dir: /data/pictures
archive_extensions: [tar, ".ZIP", " .xz "]
categories:
  - name: math
    path: /data/uni/math
    keywords: /data/meta/math.txt
    seed: /data/meta/math.pdf
  - name: thermo
    path: /data/uni/thermo
    keywords: /data/meta/thermo.txt
`

func newViper(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestLoad_DefaultsAndValues(t *testing.T) {
	cfg, err := Load(newViper(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "/data/downloads", cfg.SourceDir)
	assert.Equal(t, types.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, types.JoinSpace, cfg.CandidateJoin)
	assert.Equal(t, []string{".tar", ".zip", ".xz"}, cfg.ArchiveExtensions)
	assert.Equal(t, DefaultPictureExtensions, cfg.PictureExtensions)
	assert.Equal(t, types.KeywordConfig{MinLength: 5, TopStart: 1, TopEnd: 100}, cfg.Keywords)
	assert.Equal(t, "info", cfg.Log.Level)

	require.Len(t, cfg.Categories, 2)
	assert.Equal(t, types.Category{
		Name:     "math",
		Path:     "/data/uni/math",
		Keywords: "/data/meta/math.txt",
		Seed:     "/data/meta/math.pdf",
	}, cfg.Categories[0])
	assert.Empty(t, cfg.Categories[1].Seed)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOWNLOAD_MANAGER_THRESHOLD", "0.25")
	t.Setenv("DOWNLOAD_MANAGER_LOG_LEVEL", "debug")

	v := newViper(t, sampleYAML)
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	t.Setenv("DOWNLOAD_MANAGER_SOURCE_DIR", "/tmp/dl")
	t.Setenv("DOWNLOAD_MANAGER_ARCHIVE_DIR", "/tmp/archives")
	t.Setenv("DOWNLOAD_MANAGER_PICTURES_DIR", "/tmp/pictures")

	v := viper.New()
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dl", cfg.SourceDir)
	assert.Equal(t, "/tmp/archives", cfg.ArchiveDir)
	assert.Equal(t, "/tmp/pictures", cfg.PicturesDir)
	assert.Empty(t, cfg.Categories)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(newViper(t, `
source_dir: ~/Downloads
archive_dir: ~/Downloads/archives
pictures_dir: /abs/pictures
categories:
  - {name: dsal, path: ~/uni/dsal, keywords: ~/meta/dsal.txt}
`))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Downloads"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(home, "Downloads", "archives"), cfg.ArchiveDir)
	assert.Equal(t, "/abs/pictures", cfg.PicturesDir)
	assert.Equal(t, filepath.Join(home, "uni", "dsal"), cfg.Categories[0].Path)
	assert.Equal(t, filepath.Join(home, "meta", "dsal.txt"), cfg.Categories[0].Keywords)
}

func TestValidate(t *testing.T) {
	valid := func() types.Config {
		return types.Config{
			SourceDir:     "/src",
			ArchiveDir:    "/arc",
			PicturesDir:   "/pic",
			Threshold:     0.5,
			CandidateJoin: types.JoinConcat,
			Keywords:      types.KeywordConfig{MinLength: 5, TopStart: 1, TopEnd: 100},
			Categories:    []types.Category{{Name: "a", Path: "/a", Keywords: "/a.txt"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *types.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *types.Config) {}},
		{name: "missing source", mutate: func(c *types.Config) { c.SourceDir = "" }, wantErr: "source_dir is required"},
		{name: "missing archive", mutate: func(c *types.Config) { c.ArchiveDir = "" }, wantErr: "archive_dir is required"},
		{name: "missing pictures", mutate: func(c *types.Config) { c.PicturesDir = "" }, wantErr: "pictures_dir is required"},
		{name: "negative threshold", mutate: func(c *types.Config) { c.Threshold = -0.1 }, wantErr: "threshold"},
		{name: "threshold above one", mutate: func(c *types.Config) { c.Threshold = 1.5 }, wantErr: "threshold"},
		{name: "unknown join", mutate: func(c *types.Config) { c.CandidateJoin = "comma" }, wantErr: "candidate_join"},
		{name: "zero min length", mutate: func(c *types.Config) { c.Keywords.MinLength = 0 }, wantErr: "min_length"},
		{name: "start below one", mutate: func(c *types.Config) { c.Keywords.TopStart = 0 }, wantErr: "window"},
		{name: "end before start", mutate: func(c *types.Config) { c.Keywords.TopStart, c.Keywords.TopEnd = 10, 5 }, wantErr: "window"},
		{name: "category without path", mutate: func(c *types.Config) { c.Categories[0].Path = "" }, wantErr: "path is required"},
		{name: "duplicate category", mutate: func(c *types.Config) {
			c.Categories = append(c.Categories, types.Category{Name: "a", Path: "/b"})
		}, wantErr: "duplicate name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, types.IsKind(err, types.KindConfiguration))
		})
	}
}

func TestLoad_InvalidReportsAllProblems(t *testing.T) {
	_, err := Load(newViper(t, "threshold: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_dir is required")
	assert.Contains(t, err.Error(), "archive_dir is required")
	assert.Contains(t, err.Error(), "threshold 2 must be within")
}

func TestExpandHome_LeavesOtherPathsAlone(t *testing.T) {
	for _, p := range []string{"", "/abs", "rel/dir", "~user/x"} {
		got, err := ExpandHome(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
