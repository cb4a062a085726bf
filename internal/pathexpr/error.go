package pathexpr

import (
	"fmt"
	"strings"

	"github.com/jaathavan18/jot/internal/models"
)

// ErrorKind identifies the failure modes of parsing and resolution.
type ErrorKind string

const (
	// InvalidPathSyntax means the expression text is malformed.
	InvalidPathSyntax ErrorKind = "invalid_path_syntax"
	// KeyNotFound means an object lookup named a missing key.
	KeyNotFound ErrorKind = "key_not_found"
	// IndexOutOfRange means an array lookup was past the end.
	IndexOutOfRange ErrorKind = "index_out_of_range"
	// TypeMismatch means a segment was applied to the wrong variant.
	TypeMismatch ErrorKind = "type_mismatch"
)

// Error is the failure result of Parse, Resolve, or Eval. Path is the
// portion of the tree already resolved when the failure occurred, rendered
// in the same $-rooted form the differ uses.
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string // InvalidPathSyntax detail

	Key  string   // KeyNotFound
	Keys []string // KeyNotFound: keys available at Path

	Index  int // IndexOutOfRange
	Length int // IndexOutOfRange

	Expected models.Kind // TypeMismatch
	Actual   models.Kind // TypeMismatch
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case InvalidPathSyntax:
		return fmt.Sprintf("invalid path syntax: %s", e.Message)
	case KeyNotFound:
		if len(e.Keys) > 0 {
			return fmt.Sprintf("key %q not found at %s (available keys: %s)",
				e.Key, e.Path, strings.Join(e.Keys, ", "))
		}
		return fmt.Sprintf("key %q not found at %s", e.Key, e.Path)
	case IndexOutOfRange:
		return fmt.Sprintf("index %d out of range at %s (length %d)", e.Index, e.Path, e.Length)
	case TypeMismatch:
		return fmt.Sprintf("expected %s at %s, got %s", e.Expected, e.Path, e.Actual)
	}
	return "path error"
}

// Is reports kind equality, so callers can match against the exported kind
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Kind sentinels for use with errors.Is.
var (
	ErrInvalidPathSyntax = &Error{Kind: InvalidPathSyntax}
	ErrKeyNotFound       = &Error{Kind: KeyNotFound}
	ErrIndexOutOfRange   = &Error{Kind: IndexOutOfRange}
	ErrTypeMismatch      = &Error{Kind: TypeMismatch}
)
