// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultThreshold is the shipped classification threshold. It is very low:
// almost any non-zero similarity against the best category is accepted.
const DefaultThreshold = 0.00005

// JoinMode selects how a candidate document's tokens are joined into the
// string that is scored against each category.
type JoinMode string

const (
	// JoinSpace joins candidate tokens with single spaces, the same way
	// category keywords are joined.
	JoinSpace JoinMode = "space"

	// JoinConcat concatenates candidate tokens with no separator. Kept for
	// compatibility with profiles tuned against that behaviour.
	JoinConcat JoinMode = "concat"
)

// Category is a named classification target: the folder that receives
// matching documents and the keyword profile used to score them.
type Category struct {
	// Name identifies the category in reports (e.g. "math").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Path is the destination folder for documents classified here.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Keywords is the path of the keyword profile file. Categories with an
	// empty Keywords path never take part in classification.
	Keywords string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Seed is the optional reference document the profile is built from.
	Seed string `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
}

// Label returns the category name, or its folder when no name is set.
func (c Category) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Path
}

// KeywordConfig holds the Keyword Profile Builder parameters.
type KeywordConfig struct {
	// MinLength is the minimum token length, in runes, counted toward a
	// profile (default 5).
	MinLength int `json:"min_length" yaml:"min_length" mapstructure:"min_length"`

	// TopStart is the first rank kept, 1-based and inclusive (default 1).
	TopStart int `json:"top_start" yaml:"top_start" mapstructure:"top_start"`

	// TopEnd is the last rank kept, inclusive (default 100).
	TopEnd int `json:"top_end" yaml:"top_end" mapstructure:"top_end"`
}

// ExtractConfig holds Text Extractor settings.
type ExtractConfig struct {
	// FallbackPdftotext runs the pdftotext binary when the native parser
	// cannot read a document.
	FallbackPdftotext bool `json:"fallback_pdftotext" yaml:"fallback_pdftotext" mapstructure:"fallback_pdftotext"`
}

// LogConfig selects the diagnostic logger's level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config is the immutable configuration built once at startup and passed
// to every component.
type Config struct {
	// SourceDir is the folder scanned by the run command.
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// ArchiveDir receives archives regardless of content.
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir" mapstructure:"archive_dir"`

	// PicturesDir receives images regardless of content.
	PicturesDir string `json:"pictures_dir" yaml:"pictures_dir" mapstructure:"pictures_dir"`

	// Threshold is the minimum similarity for a classification to count
	// as a match. A score equal to Threshold matches.
	Threshold float64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`

	// CandidateJoin selects how candidate tokens are joined before scoring.
	CandidateJoin JoinMode `json:"candidate_join" yaml:"candidate_join" mapstructure:"candidate_join"`

	// ArchiveExtensions lists extensions routed to ArchiveDir.
	ArchiveExtensions []string `json:"archive_extensions" yaml:"archive_extensions" mapstructure:"archive_extensions"`

	// PictureExtensions lists extensions routed to PicturesDir.
	PictureExtensions []string `json:"picture_extensions" yaml:"picture_extensions" mapstructure:"picture_extensions"`

	Keywords KeywordConfig `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
	Extract  ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Log      LogConfig     `json:"log" yaml:"log" mapstructure:"log"`

	// Categories are the content-routing targets, in priority order for
	// tie-breaking.
	Categories []Category `json:"categories" yaml:"categories" mapstructure:"categories"`
}

// Classifiable returns the categories that take part in classification:
// those with a keyword profile path, in configuration order.
func (c Config) Classifiable() []Category {
	out := make([]Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Keywords != "" {
			out = append(out, cat)
		}
	}
	return out
}
