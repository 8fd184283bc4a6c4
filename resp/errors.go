package resp

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error per spec.md §7's taxonomy, so callers
// (the assembler's "skip to next channel" boundary, the driver) can branch
// on policy without string-matching messages.
type Kind int

const (
	KindOutOfMemory Kind = iota
	KindOpenFileError
	KindParseError
	KindImproperDataType
	KindUnexpectedEOF
	KindUndefinedPrefix
	KindUndefinedSeparator
	KindRegexCompilationFailed
	KindUnrecognizedFilterType
	KindUnsupportedFilterType
	KindIllegalRespFormat
	KindArrayBoundsExceeded
	KindNoStageMatched
	KindBadOutUnits
	KindUnrecognizedUnits
	KindMergeError
)

func (k Kind) String() string {
	switch k {
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindOpenFileError:
		return "OpenFileError"
	case KindParseError:
		return "ParseError"
	case KindImproperDataType:
		return "ImproperDataType"
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindUndefinedPrefix:
		return "UndefinedPrefix"
	case KindUndefinedSeparator:
		return "UndefinedSeparator"
	case KindRegexCompilationFailed:
		return "RegexCompilationFailed"
	case KindUnrecognizedFilterType:
		return "UnrecognizedFilterType"
	case KindUnsupportedFilterType:
		return "UnsupportedFilterType"
	case KindIllegalRespFormat:
		return "IllegalRespFormat"
	case KindArrayBoundsExceeded:
		return "ArrayBoundsExceeded"
	case KindNoStageMatched:
		return "NoStageMatched"
	case KindBadOutUnits:
		return "BadOutUnits"
	case KindUnrecognizedUnits:
		return "UnrecognizedUnits"
	case KindMergeError:
		return "MergeError"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether an error of this kind means "drop the
// channel in progress, seek to the next B050 header" (true) as opposed to
// aborting the current file entirely (false). See spec.md §7.
func (k Kind) Recoverable() bool {
	switch k {
	case KindUndefinedPrefix, KindOutOfMemory, KindOpenFileError:
		return false
	default:
		return true
	}
}

// Error is the engine's error type. File and SNCL are best-effort context
// for logging; they may be empty when not yet known (e.g. a lexer error
// before a station header has been read).
type Error struct {
	Kind    Kind
	File    string
	SNCL    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	loc := e.File
	if e.SNCL != "" {
		if loc != "" {
			loc += " "
		}
		loc += e.SNCL
	}
	if loc != "" {
		loc = loc + ": "
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %s: %v", loc, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s%s: %s", loc, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an *Error, taking file/SNCL context from ctx when
// available.
func newErr(ctx *Context, kind Kind, message string, cause error) *Error {
	e := &Error{Kind: kind, Message: message, Err: cause}
	if ctx != nil {
		e.File = ctx.File
		e.SNCL = ctx.SNCL
	}
	return e
}

// kindOf extracts the Kind from err if it is (or wraps) an *Error,
// defaulting to KindParseError (recoverable) otherwise.
func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindParseError
}

// AsKind reports whether err (or something it wraps) is an *Error of the
// given kind.
func AsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ee, ok := err.(*Error); ok {
			e = ee
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
