// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

// HashLength - number of bytes in a block hash
const HashLength = 32

// Hash - block hash
type Hash [HashLength]byte

// NewHash - SHA3-256 of a byte slice
func NewHash(data []byte) Hash {
	return sha3.Sum256(data)
}

// HashFromBytes - validate and copy a binary hash
func HashFromBytes(hash *Hash, buffer []byte) error {
	if HashLength != len(buffer) {
		return fault.ErrInvalidHashLength
	}
	copy(hash[:], buffer)
	return nil
}

// String - hex for the fmt package
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// MarshalText - hash to hex text
func (hash Hash) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(HashLength))
	hex.Encode(buffer, hash[:])
	return buffer, nil
}

// UnmarshalText - hex text to hash
func (hash *Hash) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	return HashFromBytes(hash, buffer)
}

// Pack - record form
func (hash Hash) Pack() []byte {
	return new(util.Packer).PutBytes(hash[:]).Bytes()
}

// Unpack - restore from record form
func (hash *Hash) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	hash.unpackFrom(u)
	return u.Done()
}

func (hash *Hash) unpackFrom(u *util.Unpacker) {
	copy(hash[:], u.Fixed(HashLength, fault.ErrInvalidHashLength))
}
