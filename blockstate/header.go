// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"time"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

// Header - block metadata, not needed to resume the ledger
//
// Time is reloaded in UTC
type Header struct {
	Hash               Hash      `json:"hash"`
	Time               time.Time `json:"time"`
	NextValidatorsHash Hash      `json:"nextValidatorsHash"`
}

// Pack - record form
func (header *Header) Pack() []byte {
	p := new(util.Packer)
	p.PutBytes(header.Hash[:])
	packTime(p, header.Time)
	p.PutBytes(header.NextValidatorsHash[:])
	return p.Bytes()
}

// Unpack - restore from record form
func (header *Header) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	var h Header
	copy(h.Hash[:], u.Fixed(HashLength, fault.ErrInvalidHashLength))
	h.Time = unpackTime(u)
	copy(h.NextValidatorsHash[:], u.Fixed(HashLength, fault.ErrInvalidHashLength))
	if err := u.Done(); nil != err {
		return err
	}
	*header = h
	return nil
}
