package config

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a configuration parse failure. Every failure is fatal
// to the parse; the kind identifies the rule that was violated so callers can
// react programmatically without matching message text.
type ErrorKind string

const (
	// KindMissingRequiredParameter indicates a required key is absent from
	// its section.
	KindMissingRequiredParameter ErrorKind = "missing_required_parameter"

	// KindInvalidBoolean indicates a logical parameter does not start with
	// 't' or 'f'.
	KindInvalidBoolean ErrorKind = "invalid_boolean"

	// KindInvalidNumber indicates a token could not be parsed as a number.
	KindInvalidNumber ErrorKind = "invalid_number"

	// KindRangeOrder indicates an ion range 'a..b' with a > b.
	KindRangeOrder ErrorKind = "range_order"

	// KindIndexRange indicates an ion index below the 1-based minimum.
	KindIndexRange ErrorKind = "index_range"

	// KindRaggedMatrix indicates transform-matrix rows of unequal length.
	KindRaggedMatrix ErrorKind = "ragged_matrix"

	// KindOddComplexColumns indicates a complex transform matrix with an odd
	// number of raw columns.
	KindOddComplexColumns ErrorKind = "odd_complex_columns"

	// KindSectionIndex indicates a shell or group section name without a
	// parseable numeric identifier.
	KindSectionIndex ErrorKind = "section_index"

	// KindDuplicateShellIndex indicates two shell sections declaring the
	// same index.
	KindDuplicateShellIndex ErrorKind = "duplicate_shell_index"

	// KindDuplicateGroupIndex indicates two group sections declaring the
	// same index.
	KindDuplicateGroupIndex ErrorKind = "duplicate_group_index"

	// KindNoShells indicates a document with no shell sections at all.
	KindNoShells ErrorKind = "no_shells"

	// KindAmbiguousGrouping indicates several shells without any explicit
	// group to assign them.
	KindAmbiguousGrouping ErrorKind = "ambiguous_grouping"

	// KindIncompleteImplicitGroup indicates the single shell lacks required
	// group parameters needed to synthesize the implicit group.
	KindIncompleteImplicitGroup ErrorKind = "incomplete_implicit_group"

	// KindUnknownShellReference indicates a group referencing a shell index
	// that no shell declares.
	KindUnknownShellReference ErrorKind = "unknown_shell_reference"

	// KindUnreferencedShell indicates shells not claimed by any group.
	KindUnreferencedShell ErrorKind = "unreferenced_shell"

	// KindNotImplemented indicates recognized but unsupported syntax, such
	// as element-name ion selection.
	KindNotImplemented ErrorKind = "not_implemented"
)

// ParseError is a classified configuration error with the offending
// section/key context attached.
type ParseError struct {
	// Kind is the violated rule.
	Kind ErrorKind

	// Section is the section the error originates from, if applicable.
	Section string

	// Key is the parameter key involved, if applicable.
	Key string

	// Message is the human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Section != "" && e.Key != "":
		return fmt.Sprintf("[%s] %s (section=%q, key=%q)%s", e.Kind, e.Message, e.Section, e.Key, e.unwrapSuffix())
	case e.Section != "":
		return fmt.Sprintf("[%s] %s (section=%q)%s", e.Kind, e.Message, e.Section, e.unwrapSuffix())
	default:
		return fmt.Sprintf("[%s] %s%s", e.Kind, e.Message, e.unwrapSuffix())
	}
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) unwrapSuffix() string {
	if e.Err != nil {
		return ": " + e.Err.Error()
	}
	return ""
}

// IsKind reports whether err is (or wraps) a ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

func newError(kind ErrorKind, section, key, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Section: section,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
	}
}

func wrapError(kind ErrorKind, section, key string, err error, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Section: section,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
