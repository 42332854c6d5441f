// Package config loads and merges the CLI configuration: defaults, a
// comply.yaml file, COMPLY_-prefixed environment variables and command-line
// flags, in increasing order of precedence.
package config

// Default configuration values.
const (
	DefaultFormat      = "auto"
	DefaultFailOn      = "error"
	DefaultHistoryPath = ".comply/history.db"
)

// Config holds all CLI configuration options.
type Config struct {
	Workers int    `koanf:"workers"` // 0 = one per CPU
	Format  string `koanf:"format"`  // auto, text, json
	FailOn  string `koanf:"fail_on"` // severity threshold for a failing exit
	Verbose bool   `koanf:"verbose"`

	Check   CheckConfig   `koanf:"check"`
	History HistoryConfig `koanf:"history"`
}

// CheckConfig controls the rule set.
type CheckConfig struct {
	// Enabled restricts the run to the listed rule ids; empty = all.
	Enabled []string `koanf:"enabled"`

	// Disabled lists rule ids to skip.
	Disabled []string `koanf:"disabled"`

	// Severity maps rule id to an overriding severity name.
	Severity map[string]string `koanf:"severity"`

	// Rules holds per-rule options, e.g.
	// complexity.function-too-long: {max_lines: 80}.
	Rules map[string]map[string]any `koanf:"rules"`
}

// HistoryConfig controls run-history persistence.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}
