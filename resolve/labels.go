// ABOUTME: Placeholder labels for unresolvable references
// ABOUTME: One configurable default per entity kind
package resolve

// Labels holds per-kind fallback strings keyed by models.Kind name.
type Labels struct {
	// Unknown overrides the "Unknown <Kind>" placeholder.
	Unknown map[string]string
	// Missing is shown for a null reference instead of the placeholder.
	Missing map[string]string
}

// DefaultLabels distinguishes unassigned references from dangling ones.
func DefaultLabels() Labels {
	return Labels{
		Unknown: map[string]string{},
		Missing: map[string]string{
			"contact": "No contact",
			"deal":    "",
			"company": "",
		},
	}
}

// WithUnknown returns a copy of l with placeholder overrides applied.
func (l Labels) WithUnknown(overrides map[string]string) Labels {
	unknown := make(map[string]string, len(l.Unknown)+len(overrides))
	for k, v := range l.Unknown {
		unknown[k] = v
	}
	for k, v := range overrides {
		unknown[k] = v
	}
	l.Unknown = unknown
	return l
}

// UnknownFor returns the placeholder for kind, or fallback when none is set.
func (l Labels) UnknownFor(kind, fallback string) string {
	if label, ok := l.Unknown[kind]; ok && label != "" {
		return label
	}
	return fallback
}
