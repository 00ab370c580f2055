package errors

import (
	"errors"
	"fmt"
)

// Basic error check functions from standard library
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

type appError struct {
	code    ErrorCode
	message string
	err     error
}

func (e *appError) Error() string {
	msg := e.message
	if msg == "" {
		msg = GetErrorMessage(e.code)
	}

	if e.err != nil {
		return fmt.Sprintf("%s: %v", msg, e.err)
	}

	return msg
}

func (e *appError) Code() ErrorCode {
	return e.code
}

func (e *appError) WithMessage(msg string) Error {
	return &appError{
		code:    e.code,
		message: msg,
		err:     e.err,
	}
}

func (e *appError) Unwrap() error {
	return e.err
}

// New creates an error carrying only a code.
func New(code ErrorCode) Error {
	return &appError{code: code}
}

// Newf creates an error with a code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) Error {
	return &appError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code to an underlying error. A nil err yields nil.
func Wrap(code ErrorCode, err error) Error {
	if err == nil {
		return nil
	}
	return &appError{code: code, err: err}
}

// Wrapf is Wrap with a custom message.
func Wrapf(code ErrorCode, err error, format string, args ...any) Error {
	if err == nil {
		return nil
	}
	return &appError{code: code, message: fmt.Sprintf(format, args...), err: err}
}

// CodeOf returns the code of the first coded error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var coded Error
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}

// IsCode reports whether err's chain carries the given code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if coded, ok := err.(Error); ok && coded.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
