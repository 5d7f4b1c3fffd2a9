// Copyright 2022 Colstream
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cserr is the coded error space of the engine. Errors in the
// internal group signal a wiring defect somewhere upstream; the enclosing
// query must abort, there is nothing to repair or retry at this level.
package cserr

import "fmt"

const (
	Ok uint16 = 0

	// Group 1: internal errors.
	ErrInternal uint16 = 20101
	// ErrAggWiring: a raw-input call reached a merge-only aggregator, or a
	// merge call reached a raw-input aggregator.
	ErrAggWiring uint16 = 20110
	// ErrAggStateKind: the merge operation received a vector that does not
	// carry aggregator state of the expected reduction.
	ErrAggStateKind uint16 = 20111

	// Group 3: invalid input.
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301
)

var errNames = map[uint16]string{
	ErrInternal:     "internal error",
	ErrAggWiring:    "aggregator wiring",
	ErrAggStateKind: "aggregator state kind",
	ErrBadConfig:    "invalid configuration",
	ErrInvalidInput: "invalid input",
}

type Error struct {
	code    uint16
	message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", errNames[e.code], e.message)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func newError(code uint16, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func NewInternal(format string, args ...any) *Error {
	return newError(ErrInternal, format, args...)
}

func NewAggWiring(format string, args ...any) *Error {
	return newError(ErrAggWiring, format, args...)
}

func NewAggStateKind(format string, args ...any) *Error {
	return newError(ErrAggStateKind, format, args...)
}

func NewBadConfig(format string, args ...any) *Error {
	return newError(ErrBadConfig, format, args...)
}

func NewInvalidInput(format string, args ...any) *Error {
	return newError(ErrInvalidInput, format, args...)
}

// IsErrCode reports whether e carries the given code.
func IsErrCode(e error, code uint16) bool {
	if e == nil {
		return code == Ok
	}
	cse, ok := e.(*Error)
	return ok && cse.code == code
}
