package warning

// FilterByType keeps only warnings of the given type. An empty type keeps
// everything.
func FilterByType(warnings []Warning, t Type) []Warning {
	if t == "" {
		return warnings
	}
	filtered := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		if w.Type == t {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// WithinThreshold reports whether the warning count is at or below limit.
// A negative limit means no threshold and always passes.
func WithinThreshold(warnings []Warning, limit int) bool {
	if limit < 0 {
		return true
	}
	return len(warnings) <= limit
}
