// elCheck: input sanity checks for genome-annotation pipelines.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://www.gnu.org/licenses/>.

package sanity

import (
	"errors"
	"fmt"
	"strings"
)

// MaxReported is the maximum number of identifiers listed in a
// single error message. Messages always state the full count.
const MaxReported = 100

// Kind classifies sanity check failures.
type Kind int

const (
	// FormatError reports input that does not have the expected
	// structure: wrong column count, non-numeric field, invalid
	// enumerated value, unreadable index.
	FormatError Kind = iota + 1

	// CompletenessError reports a violated cross-file relationship:
	// missing chromosomes or transcripts, empty files, nothing left
	// after filtering.
	CompletenessError

	// ConsistencyError reports two sources that agree on presence
	// but disagree on a value, such as a chromosome length.
	ConsistencyError
)

func (kind Kind) String() string {
	switch kind {
	case FormatError:
		return "format error"
	case CompletenessError:
		return "completeness error"
	case ConsistencyError:
		return "consistency error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(kind))
	}
}

// Error is the error type returned by all sanity checks.
type Error struct {
	Kind Kind
	// File is the input that failed the check.
	File string
	// Line is the 1-based line number in File, or 0.
	Line    int
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind returns true if err is or wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind Kind, file string, line int, cause error, format string, v ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, v...),
		Err:     cause,
	}
}

// sample returns the first MaxReported ids, one per line.
func sample(ids []string) string {
	if len(ids) > MaxReported {
		ids = ids[:MaxReported]
	}
	return strings.Join(ids, "\n")
}
