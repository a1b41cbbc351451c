// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package oxserr defines the tagged error kinds used throughout the core,
// wrapping github.com/cpmech/gosl/chk so messages keep its phrasing.
package oxserr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Code identifies one of the error kinds from the error-handling design (§7)
type Code int

const (
	// ConfigurationInvalid marks a bad or missing configuration field; fatal at construction
	ConfigurationInvalid Code = iota + 1

	// NumericOverflow marks a detected range/overflow condition; fatal
	NumericOverflow

	// StepTooSmall marks a step controller that could not find an accepted step at or above min_step
	StepTooSmall

	// FileIO marks a non-fatal file load/dump failure
	FileIO

	// InvalidAxis marks anisotropy axes that are not unit-length or not orthogonal
	InvalidAxis
)

func (c Code) String() string {
	switch c {
	case ConfigurationInvalid:
		return "ConfigurationInvalid"
	case NumericOverflow:
		return "NumericOverflow"
	case StepTooSmall:
		return "StepTooSmall"
	case FileIO:
		return "FileIO"
	case InvalidAxis:
		return "InvalidAxis"
	}
	return "Unknown"
}

// Error is a tagged core error
type Error struct {
	Kind Code
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("[%s] %s", e.Kind, e.Msg) }

// New creates a tagged core error with a chk.Err-formatted message
func New(kind Code, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// Is reports whether err is a tagged Error of the given kind
func Is(err error, kind Code) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Fatal reports whether the given kind is fatal by construction-time policy
func Fatal(kind Code) bool {
	switch kind {
	case ConfigurationInvalid, NumericOverflow, InvalidAxis:
		return true
	}
	return false
}
