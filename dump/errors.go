package dump

import "fmt"

// FormatError reports a structural problem in a ProTrack II text dump:
// a missing or misplaced section marker, a non-numeric metadata field, or a
// profile whose sample count disagrees with the declared point count.
// It is always fatal; no numeric stage runs after one is returned.
type FormatError struct {
	// Line is the 0-based index of the offending line, or -1 when the
	// problem is not tied to a single line.
	Line int

	// Field names the metadata field being decoded, when applicable.
	Field string

	// Content is the offending line text.
	Content string

	// Reason describes what was expected.
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Field != "" && e.Line >= 0:
		return fmt.Sprintf("protrack dump: bad %s at line %d (%q): %s", e.Field, e.Line, e.Content, e.Reason)
	case e.Line >= 0:
		return fmt.Sprintf("protrack dump: line %d (%q): %s", e.Line, e.Content, e.Reason)
	default:
		return fmt.Sprintf("protrack dump: %s", e.Reason)
	}
}
