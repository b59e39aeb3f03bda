// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate block-sort errors.
//
// In idiomatic Go, it is an anti-pattern to use panics as a form of error
// reporting in the API. Instead, the expected way to transmit errors is by
// returning an error value. Unfortunately, the checking of "err != nil" in
// tight loops causes non-negligible performance degradation. While this may
// not be idiomatic, the internal code of this repository uses panics to convey
// errors from deep inside a transform. In order to ensure that these panics do
// not leak across the public API, the public packages must call Recover and
// present an error value.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// Missing indicates that a required argument was nil or absent.
	Missing

	// Length indicates that a block's declared length does not match the
	// number of symbols that it actually carries.
	Length

	// Range indicates that an origin or index fell outside of its interval.
	Range

	// Alphabet indicates that a rank or symbol fell outside of the alphabet.
	Alphabet

	// Corrupted indicates that the input stream is corrupted.
	Corrupted

	// Closed indicates that the handlers are closed.
	Closed
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Missing:   "missing input",
	Length:    "invalid length",
	Range:     "index out of range",
	Alphabet:  "malformed alphabet",
	Corrupted: "corrupted input",
	Closed:    "closed handler",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, ": ")
}

func (e Error) BlocksortError()       {}
func (e Error) IsInternal() bool      { return e.Code == Internal }
func (e Error) IsMissing() bool       { return e.Code == Missing }
func (e Error) IsInvalidLength() bool { return e.Code == Length }
func (e Error) IsOutOfRange() bool    { return e.Code == Range }
func (e Error) IsMalformed() bool     { return e.Code == Alphabet }
func (e Error) IsCorrupted() bool     { return e.Code == Corrupted }
func (e Error) IsClosed() bool        { return e.Code == Closed }

// New returns an Error with the given code, package name, and formatted message.
func New(code int, pkg, f string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(f, args...)}
}

// Panicf panics with an Error. The panic is expected to be caught by Recover.
func Panicf(code int, pkg, f string, args ...interface{}) {
	panic(New(code, pkg, f, args...))
}

// Recover converts a panic carrying an error value into a returned error.
// Runtime errors and non-error panics are re-raised since they indicate bugs.
// It must be called directly by a deferred statement.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

func IsInternal(err error) bool      { return isCode(err, Internal) }
func IsMissing(err error) bool       { return isCode(err, Missing) }
func IsInvalidLength(err error) bool { return isCode(err, Length) }
func IsOutOfRange(err error) bool    { return isCode(err, Range) }
func IsMalformed(err error) bool     { return isCode(err, Alphabet) }
func IsCorrupted(err error) bool     { return isCode(err, Corrupted) }
func IsClosed(err error) bool        { return isCode(err, Closed) }

func isCode(err error, code int) bool {
	var e Error
	return stderrors.As(err, &e) && e.Code == code
}
