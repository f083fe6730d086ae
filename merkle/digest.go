// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerdb/fault"
)

// DigestLength - number of bytes in a root digest
const DigestLength = 32

// Digest - committed root of one store type
//
// stored as its raw bytes, printed as hex in the same byte order
type Digest [DigestLength]byte

// NewDigest - SHA3-256 of a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// IsZero - true for an uninitialised digest
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// String - hex for the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - tagged hex for the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<root:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - hex to digest for the fmt scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		switch {
		case c >= '0' && c <= '9':
			return true
		case c >= 'A' && c <= 'F':
			return true
		case c >= 'a' && c <= 'f':
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DigestLength))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - hex text to digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidDigestLength
	}
	var d Digest
	if _, err := hex.Decode(d[:], s); nil != err {
		return err
	}
	*digest = d
	return nil
}

// DigestFromBytes - validate and copy a binary digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
