// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"github.com/bitmark-inc/ledgerdb/util"
)

// BlockResults - outcome of every transaction in a block
//
// a set bit marks a rejected transaction, so an empty vector accepts
// everything
type BlockResults struct {
	rejected []byte
}

// Accept - mark transaction i as accepted
func (r *BlockResults) Accept(i int) {
	byteIndex, mask := i/8, byte(1)<<uint(i%8)
	if byteIndex < len(r.rejected) {
		r.rejected[byteIndex] &^= mask
	}
}

// Reject - mark transaction i as rejected
func (r *BlockResults) Reject(i int) {
	byteIndex, mask := i/8, byte(1)<<uint(i%8)
	for len(r.rejected) <= byteIndex {
		r.rejected = append(r.rejected, 0)
	}
	r.rejected[byteIndex] |= mask
}

// IsAccepted - true unless transaction i was rejected
func (r *BlockResults) IsAccepted(i int) bool {
	byteIndex, mask := i/8, byte(1)<<uint(i%8)
	if byteIndex >= len(r.rejected) {
		return true
	}
	return 0 == r.rejected[byteIndex]&mask
}

// Pack - record form
func (r BlockResults) Pack() []byte {
	return new(util.Packer).PutBytes(r.rejected).Bytes()
}

// Unpack - restore from record form
func (r *BlockResults) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	rejected := u.Bytes()
	if err := u.Done(); nil != err {
		return err
	}
	if 0 == len(rejected) {
		rejected = nil
	}
	r.rejected = rejected
	return nil
}

// Rejected - indices of all rejected transactions in ascending order
func (r *BlockResults) Rejected() []int {
	rejected := []int{}
	for byteIndex, b := range r.rejected {
		for bit := 0; bit < 8; bit += 1 {
			if 0 != b&(byte(1)<<uint(bit)) {
				rejected = append(rejected, byteIndex*8+bit)
			}
		}
	}
	return rejected
}
