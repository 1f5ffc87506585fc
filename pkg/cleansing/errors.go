package cleansing

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the failure category of a processing error.
type Kind string

const (
	// KindNotFound indicates the source file does not exist.
	KindNotFound Kind = "not_found"
	// KindSheetNotFound indicates the designated sheet is absent from the workbook.
	KindSheetNotFound Kind = "sheet_not_found"
	// KindRequiredColumnMissing indicates the header row has no content-marker column.
	KindRequiredColumnMissing Kind = "required_column_missing"
	// KindMalformedInput indicates the source is not a parseable workbook container.
	KindMalformedInput Kind = "malformed_input"
	// KindWriteFailure indicates a destination workbook could not be written.
	KindWriteFailure Kind = "write_failure"
	// KindInternal indicates an unexpected fault during processing.
	KindInternal Kind = "internal"
)

// Error is a processing error carrying enough detail for a user-facing
// message: for sheet lookups the requested name and the names that exist,
// for the marker lookup the marker and the normalized headers found.
type Error struct {
	Kind      Kind
	Message   string
	Requested string
	Available []string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind of err, or KindInternal if err is not a
// processing error. Returns the empty Kind for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

func errNotFound(path string) *Error {
	return &Error{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("input file not found at %s", path),
		Requested: path,
	}
}

func errSheetNotFound(requested string, available []string) *Error {
	return &Error{
		Kind:      KindSheetNotFound,
		Message:   fmt.Sprintf("input sheet %q not found; available sheets are: %s", requested, strings.Join(available, ", ")),
		Requested: requested,
		Available: available,
	}
}

func errColumnMissing(marker, sheet string, headers []string) *Error {
	return &Error{
		Kind:      KindRequiredColumnMissing,
		Message:   fmt.Sprintf("%q column not found in sheet %q; columns in the first row are: %s", marker, sheet, strings.Join(headers, ", ")),
		Requested: marker,
		Available: headers,
	}
}

func errMalformed(path string, err error) *Error {
	return &Error{
		Kind:      KindMalformedInput,
		Message:   fmt.Sprintf("cannot read workbook %s", path),
		Requested: path,
		Err:       err,
	}
}

func errWriteFailure(path string, err error) *Error {
	return &Error{
		Kind:      KindWriteFailure,
		Message:   fmt.Sprintf("cannot write workbook %s", path),
		Requested: path,
		Err:       err,
	}
}

func errInternal(message string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}
