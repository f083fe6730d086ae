// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CodingError GenericError
type ExistsError GenericError
type InvalidError GenericError
type KeyError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TemporaryError GenericError
type UnknownKeyError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrBatchMismatch        = InvalidError("write batch does not belong to this database")
	ErrDatabaseClosed       = ProcessError("database is closed")
	ErrEmptyKey             = KeyError("key has no segments")
	ErrEmptySegment         = KeyError("key segment is empty")
	ErrHistoryNotRetained   = ProcessError("database does not retain subspace history")
	ErrIncompatibleVersion  = InvalidError("incompatible database version")
	ErrInvalidAddress       = InvalidError("invalid address")
	ErrInvalidConfiguration = InvalidError("configuration file must return a table")
	ErrInvalidDigestLength  = CodingError("invalid digest length")
	ErrInvalidHashLength    = CodingError("invalid hash length")
	ErrInvalidHeight        = InvalidError("invalid block height")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidPath          = InvalidError("invalid path")
	ErrInvalidStoreType     = InvalidError("invalid merkle store type")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrMessageTruncated     = CodingError("message is truncated")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrRecordTruncated      = CodingError("record is truncated")
	ErrSegmentHasSeparator  = KeyError("key segment contains the separator")
	ErrTrailingData         = CodingError("record has trailing data")
	ErrUnknownEngine        = InvalidError("unknown database engine")
	ErrUnknownStoreEncoding = CodingError("unknown merkle store encoding")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CodingError) Error() string     { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e KeyError) Error() string        { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e TemporaryError) Error() string  { return string(e) }
func (e UnknownKeyError) Error() string { return string(e) }

// determine the class of an error
func IsErrCoding(e error) bool     { var t CodingError; return errors.As(e, &t) }
func IsErrExists(e error) bool     { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool    { var t InvalidError; return errors.As(e, &t) }
func IsErrKey(e error) bool        { var t KeyError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool   { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool    { var t ProcessError; return errors.As(e, &t) }
func IsErrTemporary(e error) bool  { var t TemporaryError; return errors.As(e, &t) }
func IsErrUnknownKey(e error) bool { var t UnknownKeyError; return errors.As(e, &t) }

// Coding - a stored value for the given key failed to decode
func Coding(key string, err error) error {
	return CodingError(fmt.Sprintf("decode %q: %s", key, err))
}

// UnknownKey - a well formed key under a recognised namespace whose
// sub-segment is not recognised
func UnknownKey(key string) error {
	return UnknownKeyError(fmt.Sprintf("unknown key: %q", key))
}

// Temporary - some but not all of a multi-field record was found
func Temporary(what string, missing string) error {
	return TemporaryError(fmt.Sprintf("%s: missing: %s", what, missing))
}
