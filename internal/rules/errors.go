package rules

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a rule table that cannot be used.
// It is returned before any text is scanned.
type ConfigurationError struct {
	Source   string // path or builtin name
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch len(e.Problems) {
	case 0:
		return fmt.Sprintf("rules %s: invalid configuration", e.Source)
	case 1:
		return fmt.Sprintf("rules %s: %s", e.Source, e.Problems[0])
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "rules %s: %d problems", e.Source, len(e.Problems))
		for _, p := range e.Problems {
			sb.WriteString("\n  - ")
			sb.WriteString(p)
		}
		return sb.String()
	}
}

func (e *ConfigurationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
