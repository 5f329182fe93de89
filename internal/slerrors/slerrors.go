// Package slerrors defines the SafeLoader error taxonomy (spec §7) and the
// wrapping helpers every other package in this module uses to report
// failures, in the same message+cause idiom the teacher's eMsg/checkWrap
// helpers build on top of errwrap.
package slerrors

import (
	"errors"
	"fmt"

	"github.com/hashicorp/errwrap"
)

// Sentinel causes. Every error returned by this module wraps exactly one of
// these, so callers can classify with errors.Is.
var (
	// ErrInvalidInput covers unknown board ids, missing CLI arguments,
	// malformed SOURCE_DATE_EPOCH, and bad input/output paths.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSizeOverflow covers a kernel larger than its firmware window, a
	// payload larger than its flash partition, or a partition table that
	// doesn't fit its fixed window.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrFormatError covers dialect classification failure, missing
	// expected embedded partitions, and truncated/malformed records.
	ErrFormatError = errors.New("format error")
	// ErrIoError covers any read/write/seek/open failure.
	ErrIoError = errors.New("i/o error")
)

// taggedError carries a taxonomy sentinel alongside an errwrap-built display
// message, so both errors.Is(err, slerrors.ErrXxx) and a human-readable
// "message: cause" string are available, the same two things the teacher's
// checkWrap unpacks from an errwrap.Wrapper.
type taggedError struct {
	sentinel error
	display  error
	cause    error
}

func (e *taggedError) Error() string { return e.display.Error() }
func (e *taggedError) Unwrap() error { return e.sentinel }

// WrappedErrors implements errwrap.Wrapper so callers that already know the
// teacher's unwrap idiom (display message, then cause) keep working.
func (e *taggedError) WrappedErrors() []error {
	if e.cause == nil {
		return []error{e.display}
	}
	return []error{e.display, e.cause}
}

// Wrap attaches msg (and, if non-nil, cause's description) to sentinel.
func Wrap(sentinel error, msg string, cause error) error {
	var display error
	if cause != nil {
		display = errwrap.Wrapf(msg+": {{err}}", cause)
	} else {
		display = errors.New(msg)
	}
	return &taggedError{sentinel: sentinel, display: display, cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(sentinel error, cause error, format string, args ...interface{}) error {
	return Wrap(sentinel, fmt.Sprintf(format, args...), cause)
}

// Invalid wraps cause (which may be nil) as ErrInvalidInput.
func Invalid(msg string, cause error) error { return Wrap(ErrInvalidInput, msg, cause) }

// Invalidf is Invalid with a formatted message.
func Invalidf(cause error, format string, args ...interface{}) error {
	return Wrapf(ErrInvalidInput, cause, format, args...)
}

// Overflow wraps cause (which may be nil) as ErrSizeOverflow.
func Overflow(msg string, cause error) error { return Wrap(ErrSizeOverflow, msg, cause) }

// Overflowf is Overflow with a formatted message.
func Overflowf(cause error, format string, args ...interface{}) error {
	return Wrapf(ErrSizeOverflow, cause, format, args...)
}

// Format wraps cause (which may be nil) as ErrFormatError.
func Format(msg string, cause error) error { return Wrap(ErrFormatError, msg, cause) }

// Formatf is Format with a formatted message.
func Formatf(cause error, format string, args ...interface{}) error {
	return Wrapf(ErrFormatError, cause, format, args...)
}

// Io wraps cause as ErrIoError, including the OS error description per
// spec.md §7.
func Io(msg string, cause error) error { return Wrap(ErrIoError, msg, cause) }

// Iof is Io with a formatted message.
func Iof(cause error, format string, args ...interface{}) error {
	return Wrapf(ErrIoError, cause, format, args...)
}
