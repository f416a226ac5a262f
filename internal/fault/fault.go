// Package fault defines the error taxonomy shared by the scan, compare and copy paths.
package fault

import (
	"errors"
	"fmt"
)

// Code identifies the stage that failed.
type Code string

const (
	// CodeScan indicates an I/O failure while walking a root or reading metadata.
	CodeScan Code = "SCAN_FAILED"

	// CodeCompare indicates an I/O failure while reading file content for equality.
	CodeCompare Code = "COMPARE_FAILED"

	// CodeCopy indicates an I/O failure while copying or preserving attributes.
	CodeCopy Code = "COPY_FAILED"
)

// Error is a coded error carrying the operation and path that failed.
type Error struct {
	Code Code
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %q: %v", e.Code, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Scan wraps err as a ScanError.
func Scan(op, path string, err error) error {
	return &Error{Code: CodeScan, Op: op, Path: path, Err: err}
}

// Compare wraps err as a CompareError.
func Compare(op, path string, err error) error {
	return &Error{Code: CodeCompare, Op: op, Path: path, Err: err}
}

// Copy wraps err as a CopyError.
func Copy(op, path string, err error) error {
	return &Error{Code: CodeCopy, Op: op, Path: path, Err: err}
}

// HasCode reports whether any error in err's chain is a fault with the given code.
func HasCode(err error, code Code) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
