// Package errwrap contains helpers for wrapping and collecting errors from
// the calculator front ends.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf annotates err with a formatted message. A nil err stays nil, so the
// result can be returned directly.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append adds err onto reterr. If either is nil, the other is returned
// unchanged, so Append works as a safe `reterr += err`.
func Append(reterr, err error) error {
	if reterr == nil {
		return err
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// Errors flattens an error built with Append into its parts. A nil error
// gives nil.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if m, ok := err.(*multierror.Error); ok {
		return m.WrappedErrors()
	}
	return []error{err}
}

// Cause returns the innermost error annotated by Wrapf.
func Cause(err error) error {
	return errors.Cause(err)
}

// String returns the error message, or the empty string for a nil error.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
