package harness

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/koda-lang/koda/internal/koda/translate"
)

// Kind classifies interpreter failures.
type Kind int

const (
	// KindOther covers failures that fit no other kind.
	KindOther Kind = iota
	// KindSyntax is a loader error in user code.
	KindSyntax
	// KindIncomplete is a syntax error caused by input that stops mid-construct.
	KindIncomplete
	// KindRuntime is an error raised while user code executes.
	KindRuntime
	// KindInternal means the interpreter state could not be prepared.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindIncomplete:
		return "incomplete"
	case KindRuntime:
		return "runtime"
	case KindInternal:
		return "internal"
	default:
		return "other"
	}
}

// Error is returned by every Harness operation that fails.
type Error struct {
	Kind    Kind
	Message string
	// Traceback is the interpreter stack at the point of a runtime error, if any.
	Traceback string
	Cause     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of err, or KindOther when err is not a *Error.
func KindOf(err error) Kind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return KindOther
}

// MarkIncomplete re-tags a syntax error as KindIncomplete when the loader ran
// out of input and the Koda source it was translated from stops in the middle
// of a construct. Other errors are returned unchanged.
func MarkIncomplete(err error, source string) error {
	var herr *Error
	if !errors.As(err, &herr) || herr.Kind != KindSyntax {
		return err
	}
	if !atEndOfInput(herr) || !translate.Incomplete(source) {
		return err
	}
	marked := *herr
	marked.Kind = KindIncomplete
	return &marked
}

// atEndOfInput reports whether the parser failed because the chunk ended.
func atEndOfInput(herr *Error) bool {
	var apiErr *lua.ApiError
	if !errors.As(herr.Cause, &apiErr) {
		return false
	}
	var parseErr *parse.Error
	if !errors.As(apiErr.Cause, &parseErr) {
		return false
	}
	return parseErr.Pos.Line == parse.EOF
}

func loadError(err error) *Error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return &Error{Kind: KindOther, Message: err.Error(), Cause: err}
	}
	kind := KindOther
	if apiErr.Type == lua.ApiErrorSyntax {
		kind = KindSyntax
	}
	return &Error{Kind: kind, Message: apiMessage(apiErr), Cause: err}
}

func callError(err error) *Error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return &Error{Kind: KindOther, Message: err.Error(), Cause: err}
	}
	kind := KindOther
	switch apiErr.Type {
	case lua.ApiErrorRun:
		kind = KindRuntime
	case lua.ApiErrorSyntax:
		kind = KindSyntax
	case lua.ApiErrorPanic:
		kind = KindInternal
	}
	return &Error{
		Kind:      kind,
		Message:   apiMessage(apiErr),
		Traceback: apiErr.StackTrace,
		Cause:     err,
	}
}

func internalError(step string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: fmt.Sprintf("%s: %v", step, err),
		Cause:   err,
	}
}

func apiMessage(apiErr *lua.ApiError) string {
	if apiErr.Object != nil && apiErr.Object != lua.LNil {
		return apiErr.Object.String()
	}
	if apiErr.Cause != nil {
		return apiErr.Cause.Error()
	}
	return apiErr.Error()
}
