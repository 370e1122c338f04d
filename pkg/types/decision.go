// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Route identifies how the File Router handles a file.
type Route string

const (
	RouteContent Route = "content"
	RouteArchive Route = "archive"
	RoutePicture Route = "picture"
	RouteNone    Route = "none"
)

// Outcome is what happened to a routed file.
type Outcome string

const (
	OutcomeMoved        Outcome = "moved"
	OutcomeUnclassified Outcome = "unclassified"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeFailed       Outcome = "failed"
)

// Decision records the routing of one file.
type Decision struct {
	// Path is the file that was examined.
	Path string `json:"path" yaml:"path"`

	Route   Route   `json:"route" yaml:"route"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Destination is the folder the file was (or, in a dry run, would be)
	// moved into. Empty unless Outcome is OutcomeMoved.
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`

	// Category is the matched category for content routes.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Scores holds the similarity against each classifiable category, in
	// configuration order. Only set for content routes.
	Scores []float64 `json:"scores,omitempty" yaml:"scores,omitempty"`
}
