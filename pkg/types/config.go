// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the record and configuration structs shared across
// pipeline stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Some
	// recommendation wikis reject the default Go agent, so a browser-style
	// string is substituted when empty.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the source-scraping stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// IncludeHomebrew adds a "/Homebrew" variant of each source URL.
	IncludeHomebrew bool `json:"include_homebrew" yaml:"include_homebrew"`

	// IncludeJapan adds a "/Japan" variant of each source URL.
	IncludeJapan bool `json:"include_japan" yaml:"include_japan"`
}

// MatchConfig holds settings for the selection and review stages.
type MatchConfig struct {
	// Threshold is the inclusive primary-score cutoff (0-100) for automatic
	// matching (default 90).
	Threshold int `json:"threshold" yaml:"threshold"`

	// Review enables interactive review of unmatched reference titles.
	Review bool `json:"review" yaml:"review"`

	// ReviewThreshold is the inclusive cutoff applied to both scores during
	// review (default 51).
	ReviewThreshold int `json:"review_threshold" yaml:"review_threshold"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the console log level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// File is an optional path receiving all records at debug level.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Defaults mirrored by the CLI flags.
const (
	DefaultThreshold       = 90
	DefaultReviewThreshold = 51
	DefaultTimeout         = 30 * time.Second
)
