// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/ledgerdb/fault"
)

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append value as 7 bit groups, least significant
// group first, the high bit of each byte marking a continuation
//
// a ninth byte holds the remaining 8 bits with no continuation bit
func AppendVarint64(buffer []byte, value uint64) []byte {
	for n := 1; n < Varint64MaximumBytes; n += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ReadVarint64 - decode the varint at the start of buffer
//
// returns the value and the number of bytes it occupied
func ReadVarint64(buffer []byte) (uint64, int, error) {
	value := uint64(0)
	for i, b := range buffer {
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<56, i + 1, nil
		}
		value |= uint64(b&0x7f) << (7 * uint(i))
		if 0 == b&0x80 {
			return value, i + 1, nil
		}
	}
	return 0, 0, fault.ErrRecordTruncated
}
