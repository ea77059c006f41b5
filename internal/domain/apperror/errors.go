// Package apperror holds the typed errors shared by every layer. Each kind
// carries an HTTP status hint but knows nothing about transport.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"unicode"
	"unicode/utf8"
)

type Kind string

const (
	KindMissingParam      Kind = "MissingParamError"
	KindInvalidParam      Kind = "InvalidParamError"
	KindDuplicateResource Kind = "DuplicateResourceError"
	KindServer            Kind = "ServerError"
)

const unknownErrorMessage = "unknown error"

type Error struct {
	Kind   Kind
	Param  string
	Reason string

	msg   string
	cause error
	stack string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.cause }

// Stack is the goroutine stack captured when the error was created.
func (e *Error) Stack() string { return e.stack }

func (e *Error) Status() int {
	switch e.Kind {
	case KindMissingParam, KindInvalidParam:
		return http.StatusBadRequest
	case KindDuplicateResource:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func MissingParam(param string) *Error {
	return &Error{
		Kind:  KindMissingParam,
		Param: param,
		msg:   "Parâmetro obrigatório ausente: " + param,
		stack: string(debug.Stack()),
	}
}

func InvalidParam(param, reason string) *Error {
	msg := "Parâmetro inválido: " + param
	if reason != "" {
		msg += ". " + reason
	}

	return &Error{
		Kind:   KindInvalidParam,
		Param:  param,
		Reason: reason,
		msg:    msg,
		stack:  string(debug.Stack()),
	}
}

func DuplicateResource(resource string) *Error {
	return &Error{
		Kind:  KindDuplicateResource,
		Param: resource,
		msg:   "Recurso duplicado: " + resource + " já cadastrado",
		stack: string(debug.Stack()),
	}
}

// Server wraps an unexpected failure. The message is the cause's message
// with its first letter capitalized.
func Server(cause error) *Error {
	msg := unknownErrorMessage
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}

	return &Error{
		Kind:  KindServer,
		msg:   capitalize(msg),
		cause: cause,
		stack: string(debug.Stack()),
	}
}

func Serverf(format string, args ...any) *Error {
	return Server(fmt.Errorf(format, args...))
}

// Wrap returns typed errors unchanged and wraps anything else into a
// server error. A nil error stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	return Server(err)
}

// As reports whether err is, or wraps, a typed error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// StatusOf maps any error to an HTTP status; unknown shapes are 500.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status()
	}
	return http.StatusInternalServerError
}

// NameOf is the error kind for typed errors and the Go type otherwise.
func NameOf(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok {
		return string(appErr.Kind)
	}
	return fmt.Sprintf("%T", err)
}

func StackOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.stack
	}
	return ""
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
