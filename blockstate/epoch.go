// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"strconv"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/ledgerdb/util"
)

// Epoch - a logical era spanning many blocks
type Epoch uint64

// Next - the following epoch
func (e Epoch) Next() Epoch {
	return e + 1
}

// Raw - decimal form
func (e Epoch) Raw() string {
	return strconv.FormatUint(uint64(e), 10)
}

// String - for the fmt package
func (e Epoch) String() string {
	return e.Raw()
}

// Pack - record form
func (e Epoch) Pack() []byte {
	return new(util.Packer).PutUint64(uint64(e)).Bytes()
}

// Unpack - restore from record form
func (e *Epoch) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	n := u.Uint64()
	if err := u.Done(); nil != err {
		return err
	}
	*e = Epoch(n)
	return nil
}

// Epochs - the predecessor epochs
//
// FirstBlockHeights[i] is the first height of epoch FirstKnownEpoch+i
type Epochs struct {
	FirstKnownEpoch   Epoch
	FirstBlockHeights []storagekey.BlockHeight
}

// NewEpochs - history starting with epoch 0 at height 0
func NewEpochs() Epochs {
	return Epochs{
		FirstKnownEpoch:   0,
		FirstBlockHeights: []storagekey.BlockHeight{0},
	}
}

// NewEpoch - record that a new epoch starts at height
func (e *Epochs) NewEpoch(height storagekey.BlockHeight) {
	e.FirstBlockHeights = append(e.FirstBlockHeights, height)
}

// Current - the most recent epoch
func (e *Epochs) Current() (Epoch, bool) {
	n := len(e.FirstBlockHeights)
	if 0 == n {
		return 0, false
	}
	return e.FirstKnownEpoch + Epoch(n-1), true
}

// EpochOf - the epoch containing a height, false if the height
// precedes the known history
func (e *Epochs) EpochOf(height storagekey.BlockHeight) (Epoch, bool) {
	for i := len(e.FirstBlockHeights) - 1; i >= 0; i -= 1 {
		if height >= e.FirstBlockHeights[i] {
			return e.FirstKnownEpoch + Epoch(i), true
		}
	}
	return 0, false
}

// Pack - record form
func (e Epochs) Pack() []byte {
	p := new(util.Packer)
	p.PutUint64(uint64(e.FirstKnownEpoch))
	p.PutUint64(uint64(len(e.FirstBlockHeights)))
	for _, h := range e.FirstBlockHeights {
		p.PutUint64(uint64(h))
	}
	return p.Bytes()
}

// Unpack - restore from record form
func (e *Epochs) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	first := u.Uint64()
	count := u.Uint64()

	// every height occupies at least one byte
	if nil == u.Err() && count > uint64(u.Remaining()) {
		return fault.ErrRecordTruncated
	}

	var heights []storagekey.BlockHeight
	for i := uint64(0); i < count && nil == u.Err(); i += 1 {
		heights = append(heights, storagekey.BlockHeight(u.Uint64()))
	}
	if err := u.Done(); nil != err {
		return err
	}
	e.FirstKnownEpoch = Epoch(first)
	e.FirstBlockHeights = heights
	return nil
}
