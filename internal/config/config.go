// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config turns viper settings into the immutable types.Config that
// every component receives. Loading applies defaults, expands "~" in paths,
// normalizes extension lists, and validates the result before any command
// touches the filesystem.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/download-manager/pkg/types"
)

// EnvPrefix is the prefix for environment overrides
// (e.g. DOWNLOAD_MANAGER_THRESHOLD, DOWNLOAD_MANAGER_LOG_LEVEL).
const EnvPrefix = "DOWNLOAD_MANAGER"

// Defaults for keys that have one.
var (
	DefaultArchiveExtensions = []string{".tar", ".zip", ".xz"}
	DefaultPictureExtensions = []string{".svg", ".png", ".jpeg"}
)

const (
	defaultMinLength = 5
	defaultTopStart  = 1
	defaultTopEnd    = 100
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("threshold", types.DefaultThreshold)
	v.SetDefault("candidate_join", string(types.JoinSpace))
	v.SetDefault("archive_extensions", DefaultArchiveExtensions)
	v.SetDefault("picture_extensions", DefaultPictureExtensions)
	v.SetDefault("keywords.min_length", defaultMinLength)
	v.SetDefault("keywords.top_start", defaultTopStart)
	v.SetDefault("keywords.top_end", defaultTopEnd)
	v.SetDefault("extract.fallback_pdftotext", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// BindEnv enables DOWNLOAD_MANAGER_* overrides on v, mapping nested keys
// with underscores (log.level -> DOWNLOAD_MANAGER_LOG_LEVEL).
// Keys without a default are bound explicitly so Unmarshal picks up their
// environment values. Categories can only come from the config file.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range noDefaultKeys {
		_ = v.BindEnv(key)
	}
}

var noDefaultKeys = []string{"source_dir", "archive_dir", "pictures_dir"}

// Load decodes v into a Config, normalizes it, and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	SetDefaults(v)

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, types.NewError(types.KindConfiguration, v.ConfigFileUsed(),
			fmt.Errorf("decoding configuration: %w", err))
	}

	cfg, err := Normalize(cfg)
	if err != nil {
		return types.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Normalize expands "~" in every path and lowercases extensions, adding a
// leading dot where missing.
func Normalize(cfg types.Config) (types.Config, error) {
	var err error
	expand := func(p string) string {
		if err != nil {
			return p
		}
		var out string
		out, err = ExpandHome(p)
		return out
	}

	cfg.SourceDir = expand(cfg.SourceDir)
	cfg.ArchiveDir = expand(cfg.ArchiveDir)
	cfg.PicturesDir = expand(cfg.PicturesDir)

	cats := make([]types.Category, len(cfg.Categories))
	for i, c := range cfg.Categories {
		c.Path = expand(c.Path)
		c.Keywords = expand(c.Keywords)
		c.Seed = expand(c.Seed)
		cats[i] = c
	}
	cfg.Categories = cats

	if err != nil {
		return types.Config{}, types.NewError(types.KindConfiguration, "", err)
	}

	cfg.ArchiveExtensions = normalizeExtensions(cfg.ArchiveExtensions)
	cfg.PictureExtensions = normalizeExtensions(cfg.PictureExtensions)
	if cfg.CandidateJoin == "" {
		cfg.CandidateJoin = types.JoinSpace
	}
	return cfg, nil
}

// Validate checks cfg for problems that must stop a command before it
// starts. All problems are reported together.
func Validate(cfg types.Config) error {
	var errs []error

	if cfg.SourceDir == "" {
		errs = append(errs, errors.New("source_dir is required"))
	}
	if cfg.ArchiveDir == "" {
		errs = append(errs, errors.New("archive_dir is required"))
	}
	if cfg.PicturesDir == "" {
		errs = append(errs, errors.New("pictures_dir is required"))
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold %v must be within [0, 1]", cfg.Threshold))
	}
	switch cfg.CandidateJoin {
	case types.JoinSpace, types.JoinConcat:
	default:
		errs = append(errs, fmt.Errorf("candidate_join %q must be %q or %q",
			cfg.CandidateJoin, types.JoinSpace, types.JoinConcat))
	}
	if cfg.Keywords.MinLength < 1 {
		errs = append(errs, fmt.Errorf("keywords.min_length %d must be at least 1", cfg.Keywords.MinLength))
	}
	if cfg.Keywords.TopStart < 1 || cfg.Keywords.TopEnd < cfg.Keywords.TopStart {
		errs = append(errs, fmt.Errorf("keywords window [%d, %d] is invalid",
			cfg.Keywords.TopStart, cfg.Keywords.TopEnd))
	}

	seen := make(map[string]bool)
	for i, c := range cfg.Categories {
		if c.Path == "" {
			errs = append(errs, fmt.Errorf("categories[%d] (%s): path is required", i, c.Name))
		}
		if c.Name != "" {
			if seen[c.Name] {
				errs = append(errs, fmt.Errorf("categories[%d]: duplicate name %q", i, c.Name))
			}
			seen[c.Name] = true
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return types.NewError(types.KindConfiguration, "", errors.Join(errs...))
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
