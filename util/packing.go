// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/ledgerdb/fault"
)

// Packer - accumulate the fields of a stored record
//
// record layout is a plain concatenation of fields:
//   integer = Varint64
//   bytes   = Varint64(length) ++ data
//   boolean = single byte 0x00 or 0x01
type Packer struct {
	buffer []byte
}

// PutUint64 - append an integer field
func (p *Packer) PutUint64(value uint64) *Packer {
	p.buffer = AppendVarint64(p.buffer, value)
	return p
}

// PutInt64 - append a signed integer field (zig-zag encoded)
func (p *Packer) PutInt64(value int64) *Packer {
	return p.PutUint64(uint64(value<<1) ^ uint64(value>>63))
}

// PutBytes - append a length prefixed byte field
func (p *Packer) PutBytes(data []byte) *Packer {
	p.buffer = AppendVarint64(p.buffer, uint64(len(data)))
	p.buffer = append(p.buffer, data...)
	return p
}

// PutBool - append a boolean field
func (p *Packer) PutBool(flag bool) *Packer {
	if flag {
		p.buffer = append(p.buffer, 0x01)
	} else {
		p.buffer = append(p.buffer, 0x00)
	}
	return p
}

// Bytes - the packed record
func (p *Packer) Bytes() []byte {
	if nil == p.buffer {
		return []byte{}
	}
	return p.buffer
}

// Unpacker - read back the fields written by a Packer
//
// the first failure is latched, all later reads return zero values
// and the failure is reported by Done
type Unpacker struct {
	buffer []byte
	err    error
}

// NewUnpacker - start reading a packed record
func NewUnpacker(record []byte) *Unpacker {
	return &Unpacker{
		buffer: record,
	}
}

// Uint64 - read an integer field
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, n, err := ReadVarint64(u.buffer)
	if nil != err {
		u.err = err
		return 0
	}
	u.buffer = u.buffer[n:]
	return value
}

// Int64 - read a zig-zag encoded signed integer field
func (u *Unpacker) Int64() int64 {
	value := u.Uint64()
	return int64(value>>1) ^ -int64(value&1)
}

// Bytes - read a length prefixed byte field
//
// the result is a copy and is safe to retain
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if uint64(len(u.buffer)) < length {
		u.err = fault.ErrRecordTruncated
		return nil
	}
	data := make([]byte, length)
	copy(data, u.buffer[:length])
	u.buffer = u.buffer[length:]
	return data
}

// Fixed - read a length prefixed byte field that must hold exactly n
// bytes, any other length latches the invalid error
func (u *Unpacker) Fixed(n int, invalid error) []byte {
	data := u.Bytes()
	if nil == u.err && n != len(data) {
		u.err = invalid
		return nil
	}
	return data
}

// Bool - read a boolean field
func (u *Unpacker) Bool() bool {
	if nil != u.err {
		return false
	}
	if 0 == len(u.buffer) {
		u.err = fault.ErrRecordTruncated
		return false
	}
	flag := u.buffer[0]
	u.buffer = u.buffer[1:]
	switch flag {
	case 0x00:
		return false
	case 0x01:
		return true
	default:
		u.err = fault.CodingError("invalid boolean field")
		return false
	}
}

// Fail - latch an error found while interpreting a field
func (u *Unpacker) Fail(err error) {
	if nil == u.err {
		u.err = err
	}
}

// Err - the latched failure, if any
func (u *Unpacker) Err() error {
	return u.err
}

// Remaining - number of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer)
}

// Done - report the first failure or any unread trailing bytes
func (u *Unpacker) Done() error {
	if nil != u.err {
		return u.err
	}
	if 0 != len(u.buffer) {
		return fault.ErrTrailingData
	}
	return nil
}
