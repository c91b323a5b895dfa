package pego

import "fmt"

// MatchCode is the non-negative byte count or negative error kind returned
// in a Result's Matched field (spec.md §6.4).
type MatchCode int

const (
	// NoMatch means the grammar didn't match the input.
	NoMatch MatchCode = -1
	// NoStackMem means a state/action stack allocation failed.
	NoStackMem MatchCode = -2
	// MatchedError means one or more Error expressions fired; Result.Data
	// carries the first syntactic error code observed.
	MatchedError MatchCode = -3
	// NullInput means the caller passed no input buffer.
	NullInput MatchCode = -4
)

func (c MatchCode) String() string {
	switch c {
	case NoMatch:
		return "no match"
	case NoStackMem:
		return "no stack memory"
	case MatchedError:
		return "matched error"
	case NullInput:
		return "null input"
	default:
		return fmt.Sprintf("matched %d bytes", int(c))
	}
}

// ValidateStatus is a grammar well-formedness status code (spec.md §6.5).
type ValidateStatus uint8

const (
	ValidateSuccess ValidateStatus = iota
	ValidateNullGrammar
	ValidateEmptyGrammar
	ValidateNullPointer
	ValidateRangeBuffer
	ValidateInvalidRange
	ValidateOutOfBounds
	ValidateUndefinedRule
	ValidateLoopEmptyString
)

// validateStatusDescriptions mirrors pt_validate_codes_description from
// original_source/src/validate.c, extended with the two statuses (null and
// empty grammar) that source skips by crashing instead of reporting.
var validateStatusDescriptions = [...]string{
	ValidateSuccess:         "no errors on grammar",
	ValidateNullGrammar:     "grammar is nil",
	ValidateEmptyGrammar:    "grammar has no rules",
	ValidateNullPointer:     "expression holds a required nil payload",
	ValidateRangeBuffer:     "range buffer must have at least 2 characters",
	ValidateInvalidRange:    "range characters must be numerically ordered",
	ValidateOutOfBounds:     "non-terminal index is out of grammar bounds",
	ValidateUndefinedRule:   "rule undefined in given grammar",
	ValidateLoopEmptyString: "loop body may accept empty string",
}

func (s ValidateStatus) String() string {
	if int(s) < len(validateStatusDescriptions) {
		return validateStatusDescriptions[s]
	}
	return "unknown validate status"
}

// engineError is the internal error type for invariant violations the
// engine itself detects (as opposed to MatchCode, which is a result value,
// not a Go error). Mirrors the teacher's pegError/errorf pattern.
type engineError struct {
	msg string
}

func (e *engineError) Error() string {
	return "pego: " + e.msg
}

func errorf(format string, v ...interface{}) error {
	return &engineError{fmt.Sprintf(format, v...)}
}

var (
	// errNilGrammar is raised (via panic, not returned) when a NonTerminal
	// is dispatched without a Grammar to resolve it against — e.g. a
	// NonTerminal inside an Expression passed to MatchExpression, which
	// mirrors the original C library's documented crash on a NULL names
	// array rather than silently failing to match.
	errNilGrammar      = errorf("non-terminal dispatched with no grammar to resolve against")
	errUnknownOperator = errorf("internal error: unknown expression operator")
)
