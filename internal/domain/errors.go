package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP boundary can map them to a
// status code without inspecting message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindInsufficientStock
	KindNotFound
	KindTransactionFailure
	KindMalformedPayload
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStockf(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func MalformedPayload(msg string) *Error {
	return &Error{Kind: KindMalformedPayload, Message: msg}
}

func TransactionFailure(msg string, err error) *Error {
	return &Error{Kind: KindTransactionFailure, Message: msg, Err: err}
}

// KindOf returns the classification of err, or KindUnknown for errors
// that did not originate in this package.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
