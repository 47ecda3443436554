package config

import (
	"fmt"
	"strings"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var knownLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration and returns every finding.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateLogLevel()...)
	results = append(results, c.validateSearchPaths()...)
	results = append(results, c.validateProbe()...)
	return results
}

// Errors returns only error-level results.
func Errors(results []ValidationResult) []ValidationResult {
	var errs []ValidationResult
	for _, r := range results {
		if r.Level == "error" {
			errs = append(errs, r)
		}
	}
	return errs
}

func (c Config) validateLogLevel() []ValidationResult {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	for _, known := range knownLogLevels {
		if level == known {
			return nil
		}
	}
	return []ValidationResult{{
		Level:   "error",
		Message: fmt.Sprintf("log.level %q is not one of %s", c.Log.Level, strings.Join(knownLogLevels, ", ")),
	}}
}

func (c Config) validateSearchPaths() []ValidationResult {
	var results []ValidationResult
	seen := make(map[string]bool, len(c.SearchPaths))
	for i, p := range c.SearchPaths {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("search_paths[%d] is empty", i),
			})
			continue
		}
		if seen[trimmed] {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("search_paths lists %q more than once", trimmed),
			})
		}
		seen[trimmed] = true
	}
	return results
}

func (c Config) validateProbe() []ValidationResult {
	var results []ValidationResult
	if c.ProbeTimeout < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("probe_timeout %s must not be negative", c.ProbeTimeout),
		})
	}
	if len(c.SearchPaths) > 0 && c.Python != Default().Python {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("python %q is ignored because search_paths is set", c.Python),
		})
	}
	return results
}
