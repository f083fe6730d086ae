// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

// AddressLength - number of bytes in an address
const AddressLength = 20

// Address - an established account address
type Address [AddressLength]byte

// String - base58 text form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Raw - key segment form
func (a Address) Raw() string {
	return a.String()
}

// MarshalText - address to base58 text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - base58 text to address
func (a *Address) UnmarshalText(s []byte) error {
	address, err := ParseAddress(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}

// ParseAddress - convert base58 text to an address
func ParseAddress(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err || AddressLength != len(buffer) {
		return Address{}, fault.ErrInvalidAddress
	}
	var a Address
	copy(a[:], buffer)
	return a, nil
}

// AddressGen - deterministic generator of fresh addresses
//
// each generated address advances the chained hash, so replaying the
// same entropy from the same state gives the same addresses and a
// restored generator never repeats one
type AddressGen struct {
	LastHash Hash
}

// NewAddressGen - generator seeded from arbitrary bytes
func NewAddressGen(seed []byte) AddressGen {
	return AddressGen{
		LastHash: NewHash(seed),
	}
}

// Generate - a fresh address, advancing the generator
func (g *AddressGen) Generate(entropy []byte) Address {
	h := sha3.New256()
	h.Write(g.LastHash[:])
	h.Write(entropy)
	copy(g.LastHash[:], h.Sum(nil))

	var a Address
	copy(a[:], g.LastHash[:AddressLength])
	return a
}

// Pack - record form
func (g AddressGen) Pack() []byte {
	return new(util.Packer).PutBytes(g.LastHash[:]).Bytes()
}

// Unpack - restore from record form
func (g *AddressGen) Unpack(record []byte) error {
	return g.LastHash.Unpack(record)
}
