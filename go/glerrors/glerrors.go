/*
Copyright 2026 The Gluten Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package glerrors provides coded errors for the plugin.
//
// Errors created here carry a Code that survives wrapping; Code() extracts
// it from anywhere in a chain built with Wrap/Wrapf or %w. Errors without a
// code report Unknown, mirroring the convention of the canonical RPC codes.
package glerrors

import (
	"errors"
	"fmt"
	"io"
)

// New returns an error with the supplied code and message.
func New(code Code, message string) error {
	return &codedError{
		code: code,
		msg:  message,
	}
}

// Errorf formats according to a format specifier and returns the string as
// an error carrying the given code. If the format string contains %w, the
// wrapped error's chain is preserved.
func Errorf(code Code, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &codedError{
		code:  code,
		msg:   err.Error(),
		cause: errors.Unwrap(err),
	}
}

// Wrap returns an error annotating err with the message. The original
// error's code is preserved. Wrapping nil returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		cause: err,
		msg:   message,
	}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		cause: err,
		msg:   fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the code of any error in err's chain, or Unknown when no
// coded error is present. A nil error is OK.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return Unknown
}

// RootCause follows the wrap chain to the innermost error.
func RootCause(err error) error {
	for {
		cause := errors.Unwrap(err)
		if cause == nil {
			return err
		}
		err = cause
	}
}

type codedError struct {
	code  Code
	msg   string
	cause error
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Unwrap() error { return e.cause }

func (e *codedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %s", e.code, e.msg)
		return
	}
	io.WriteString(s, e.msg)
}

type wrappedError struct {
	cause error
	msg   string
}

func (e *wrappedError) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrappedError) Unwrap() error { return e.cause }
