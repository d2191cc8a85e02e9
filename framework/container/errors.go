package container

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Error kinds. Every error produced by this package is an *Error whose Kind
// is one of these sentinels, so callers can match with errors.Is.
var (
	// ErrNoProvider is returned when a token has no provider and is not a class.
	ErrNoProvider = errors.New("no provider registered")

	// ErrNotInjectable is returned when the injectable marker is applied to
	// something other than a class.
	ErrNotInjectable = errors.New("injectable target is not a class")

	// ErrCircularDependency is returned when a token is requested while it is
	// already being resolved.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrMaxDepth is returned when resolution nests deeper than the configured limit.
	ErrMaxDepth = errors.New("resolution depth exceeded")

	// ErrInvalidClass is returned by NewClass for unusable constructors.
	ErrInvalidClass = errors.New("invalid class")

	// ErrInvalidProvider is returned when a registered provider cannot produce a value.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrConstruction is returned when a class constructor cannot be called or fails.
	ErrConstruction = errors.New("construction failed")

	// ErrWrongType is returned by Resolve[T] when the value is not a T.
	ErrWrongType = errors.New("resolved value has wrong type")
)

// Error is the single error type surfaced by the container.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error

	// Token is the token being resolved or marked, when known.
	Token Token

	// Path is the chain of tokens under resolution, outermost first.
	// It is set for ErrCircularDependency and ErrMaxDepth.
	Path []Token

	// Msg is the human readable message.
	Msg string

	// Err is the underlying cause, e.g. the error a constructor returned.
	Err error
}

func (e *Error) Error() string { return "container: " + e.Msg }

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func noProviderError(token Token) *Error {
	return &Error{
		Kind:  ErrNoProvider,
		Token: token,
		Msg:   "no provider registered for token " + tokenString(token),
	}
}

func notInjectableError(target any) *Error {
	return &Error{
		Kind: ErrNotInjectable,
		Msg:  fmt.Sprintf("injectable can only be applied to a class, got %T", target),
	}
}

func circularError(path []Token) *Error {
	return &Error{
		Kind:  ErrCircularDependency,
		Token: path[len(path)-1],
		Path:  path,
		Msg:   "circular dependency: " + formatPath(path),
	}
}

func maxDepthError(path []Token, limit int) *Error {
	return &Error{
		Kind:  ErrMaxDepth,
		Token: path[len(path)-1],
		Path:  path,
		Msg:   fmt.Sprintf("resolution deeper than %d: %s", limit, formatPath(path)),
	}
}

func invalidClassError(name, reason string) *Error {
	return &Error{
		Kind: ErrInvalidClass,
		Msg:  fmt.Sprintf("class %q: %s", name, reason),
	}
}

func invalidProviderError(token Token, reason string) *Error {
	return &Error{
		Kind:  ErrInvalidProvider,
		Token: token,
		Msg:   fmt.Sprintf("provider for token %s: %s", tokenString(token), reason),
	}
}

func formatPath(path []Token) string {
	return strings.Join(lo.Map(path, func(t Token, _ int) string { return tokenString(t) }), " -> ")
}

func tokenString(t Token) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
