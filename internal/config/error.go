package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid matches every *ConfigError under errors.Is.
var ErrInvalid = errors.New("invalid config")

// ConfigError collects everything wrong with one config file so it can be
// reported in a single pass.
type ConfigError struct {
	Path    string
	Missing []string // unresolved ${VAR} references, "NAME" or "NAME: message"
	Errors  []string // Validate output, "field: problem"
}

// newConfigError reports each missing variable once, sorted by name, keeping
// the first entry seen for a name so a ${VAR:?message} hint survives.
func newConfigError(path string, missing, errs []string) *ConfigError {
	seen := make(map[string]bool, len(missing))
	var uniq []string
	for _, m := range missing {
		name := missingName(m)
		if seen[name] {
			continue
		}
		seen[name] = true
		uniq = append(uniq, m)
	}
	slices.SortFunc(uniq, func(a, b string) int {
		return strings.Compare(missingName(a), missingName(b))
	})
	return &ConfigError{Path: path, Missing: uniq, Errors: errs}
}

func missingName(entry string) string {
	name, _, _ := strings.Cut(entry, ":")
	return name
}

// MissingNames returns the variable names from Missing without their hints.
func (e *ConfigError) MissingNames() []string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = missingName(m)
	}
	return names
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, err := range e.Errors {
			b.WriteString("  - " + err + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalid
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
