// Package rerrors defines the error taxonomy surfaced by the config tree:
// a small set of kinds callers can switch on, each wrapping enough detail
// to render a diagnostic.
package rerrors

import (
	"errors"
	"fmt"
)

// Kind discriminates the handful of ways the tree can fail to answer a
// request. Batch operations accumulate many of these; single-point reads
// surface at most one.
type Kind int

const (
	// NonExistent means the operation addressed a file ID never introduced.
	NonExistent Kind = iota
	// Removed means the operation addressed a tombstoned node. A Delete
	// that only clears a node's input does not produce it.
	Removed
	// Utf8 means the file's bytes are not valid UTF-8.
	Utf8
	// TomlParse means the file's text is not syntactically valid TOML.
	TomlParse
	// TomlDeserialize means one field failed type validation.
	TomlDeserialize
	// Cycle means a reparent operation was rejected because it would have
	// made a node its own ancestor.
	Cycle
)

func (k Kind) String() string {
	switch k {
	case NonExistent:
		return "NonExistent"
	case Removed:
		return "Removed"
	case Utf8:
		return "Utf8"
	case TomlParse:
		return "TomlParse"
	case TomlDeserialize:
		return "TomlDeserialize"
	case Cycle:
		return "Cycle"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Path and Field are populated only for the kinds that have them.
type Error struct {
	Kind  Kind
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NonExistent:
		return fmt.Sprintf("no such file id")
	case Removed:
		return fmt.Sprintf("node removed")
	case Utf8:
		return fmt.Sprintf("%s: invalid utf-8: %v", e.Path, e.Err)
	case TomlParse:
		return fmt.Sprintf("%s: toml parse error: %v", e.Path, e.Err)
	case TomlDeserialize:
		return fmt.Sprintf("%s: field %q: %v", e.Path, e.Field, e.Err)
	case Cycle:
		return fmt.Sprintf("%s: reparent would create a cycle", e.Path)
	default:
		return fmt.Sprintf("config tree error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// WithPath returns a copy of e with Path set, for constructors like
// NonExistentErr that don't know the file's path until the caller does.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// Is allows errors.Is(err, rerrors.NonExistentErr()) style sentinel checks
// by comparing on Kind when the target is also an *Error.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// NonExistentErr constructs a NonExistent error for the given file id context.
func NonExistentErr() *Error { return &Error{Kind: NonExistent} }

// RemovedErr constructs a Removed error.
func RemovedErr() *Error { return &Error{Kind: Removed} }

// Utf8Err constructs a Utf8 error naming the offending path.
func Utf8Err(path string, err error) *Error {
	return &Error{Kind: Utf8, Path: path, Err: err}
}

// TomlParseErr constructs a TomlParse error naming the offending path.
func TomlParseErr(path string, err error) *Error {
	return &Error{Kind: TomlParse, Path: path, Err: err}
}

// TomlDeserializeErr constructs a TomlDeserialize error naming the path and field.
func TomlDeserializeErr(path, field string, err error) *Error {
	return &Error{Kind: TomlDeserialize, Path: path, Field: field, Err: err}
}

// CycleErr constructs a Cycle error naming the file whose reparent was rejected.
func CycleErr(path string, err error) *Error {
	return &Error{Kind: Cycle, Path: path, Err: err}
}

// Sink accumulates diagnostics without aborting the operation that
// produces them. The parser and the change-application pipeline both
// write into one; neither ever short-circuits on the first error.
type Sink interface {
	Add(err *Error)
}

// List is the default Sink: an ordered, growable collection of errors.
type List struct {
	errs []*Error
}

func (l *List) Add(err *Error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

// Errors returns the accumulated errors in the order they were added.
func (l *List) Errors() []*Error { return l.errs }

// Len reports how many diagnostics have been recorded so far.
func (l *List) Len() int { return len(l.errs) }
