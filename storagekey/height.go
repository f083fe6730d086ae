// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"strconv"

	"github.com/bitmark-inc/ledgerdb/fault"
)

// BlockHeight - number of a committed block
type BlockHeight uint64

// Raw - decimal form used as a key segment
func (h BlockHeight) Raw() string {
	return strconv.FormatUint(uint64(h), 10)
}

// String - for the fmt package
func (h BlockHeight) String() string {
	return h.Raw()
}

// Next - the following height
func (h BlockHeight) Next() BlockHeight {
	return h + 1
}

// ParseBlockHeight - convert a key segment back to a height
func ParseBlockHeight(s string) (BlockHeight, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fault.ErrInvalidHeight
	}
	return BlockHeight(n), nil
}
