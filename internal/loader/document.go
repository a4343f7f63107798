package loader

import "strings"

// Document is one normalized text unit extracted from an input artifact.
// Immutable once created.
type Document struct {
	Content  string
	Source   string
	Metadata map[string]string
}

// SourceLabel returns the origin identifier for prompt attribution.
// Falls back to "unknown" so downstream prompts stay attributable.
func (d Document) SourceLabel() string {
	if strings.TrimSpace(d.Source) == "" {
		return "unknown"
	}
	return d.Source
}
