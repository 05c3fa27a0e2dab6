// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes carried by ParseError.
var (
	ErrEmpty             = errors.New("version string is empty")
	ErrTooLong           = errors.New("version string is too long")
	ErrWhitespace        = errors.New("version string has surrounding whitespace")
	ErrMultiplePrefix    = errors.New("version string has more than one prefix")
	ErrMissingComponent  = errors.New("version core component is missing")
	ErrTooManyComponents = errors.New("version core has more than 3 components")
	ErrNonNumeric        = errors.New("version core component is not numeric")
	ErrLeadingZero       = errors.New("numeric component has a leading zero")
	ErrInvalidIdentifier = errors.New("identifier is invalid")
	ErrOverflow          = errors.New("numeric component overflows")
)

var (
	// ErrInvalidDirective is the cause of every InvalidDirectiveError.
	ErrInvalidDirective = errors.New("invalid increment directive")

	// ErrInvalidPrereleaseType is returned when Options.PrereleaseType is not a
	// dot-separated list of valid identifiers.
	ErrInvalidPrereleaseType = errors.New("invalid prerelease type")

	// ErrNoFreeVersion is the cause of every ConflictResolutionError.
	ErrNoFreeVersion = errors.New("no free version found")

	// ErrInvalidFormatMode is returned by ParseFormatMode for unknown modes.
	ErrInvalidFormatMode = errors.New("invalid format mode")
)

// maxErrorInput caps how much of the input is echoed back in error messages.
const maxErrorInput = 64

// ParseError reports a tag that does not match the SemVer grammar.
type ParseError struct {
	// Input is the offending input, truncated for very long strings.
	Input string
	// Reason describes the failing part, e.g. `leading zero in minor "01"`.
	Reason string
	// Err is one of the sentinel causes above.
	Err error
}

func newParseError(input string, cause error, format string, args ...any) *ParseError {
	if len(input) > maxErrorInput {
		input = input[:maxErrorInput] + "..."
	}
	return &ParseError{
		Input:  input,
		Reason: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidDirectiveError reports an unknown increment directive.
type InvalidDirectiveError struct {
	Value string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("%v %q (supported values: %s)",
		ErrInvalidDirective, e.Value, strings.Join(SupportedDirectives(), ", "))
}

func (e *InvalidDirectiveError) Unwrap() error {
	return ErrInvalidDirective
}

// ConflictResolutionError reports that the bounded search for a version not
// present in the existing tag set was exhausted.
type ConflictResolutionError struct {
	Directive Directive
	// Start is the first candidate that was found to be taken.
	Start string
	// Attempts is the number of candidates tried.
	Attempts int
}

func (e *ConflictResolutionError) Error() string {
	return fmt.Sprintf("%v: %s increment from %s conflicts after %d attempts",
		ErrNoFreeVersion, e.Directive, e.Start, e.Attempts)
}

func (e *ConflictResolutionError) Unwrap() error {
	return ErrNoFreeVersion
}
