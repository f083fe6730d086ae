// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

func TestPackUnpack(t *testing.T) {
	p := util.Packer{}
	p.PutUint64(300).PutBytes([]byte("payload")).PutBool(true).PutInt64(-42).PutBytes(nil)

	u := util.NewUnpacker(p.Bytes())
	assert.Equal(t, uint64(300), u.Uint64(), "integer field")
	assert.Equal(t, []byte("payload"), u.Bytes(), "bytes field")
	assert.True(t, u.Bool(), "boolean field")
	assert.Equal(t, int64(-42), u.Int64(), "signed field")
	assert.Equal(t, []byte{}, u.Bytes(), "empty bytes field")
	assert.Nil(t, u.Done(), "record should be fully consumed")
}

func TestEmptyPacker(t *testing.T) {
	p := util.Packer{}
	assert.Equal(t, []byte{}, p.Bytes(), "empty record must not be nil")
}

func TestUnpackTruncated(t *testing.T) {
	p := util.Packer{}
	p.PutBytes([]byte("0123456789"))
	record := p.Bytes()

	u := util.NewUnpacker(record[:5])
	assert.Nil(t, u.Bytes(), "truncated field")
	assert.Equal(t, uint64(0), u.Uint64(), "reads after a failure return zero")
	assert.Equal(t, fault.ErrRecordTruncated, u.Done(), "wrong error")
}

func TestUnpackTrailingData(t *testing.T) {
	p := util.Packer{}
	p.PutUint64(7)
	record := append(p.Bytes(), 0x01)

	u := util.NewUnpacker(record)
	assert.Equal(t, uint64(7), u.Uint64(), "integer field")
	assert.Equal(t, 1, u.Remaining(), "remaining bytes")
	assert.Equal(t, fault.ErrTrailingData, u.Done(), "wrong error")
}

func TestUnpackInvalidBool(t *testing.T) {
	u := util.NewUnpacker([]byte{0x02})
	u.Bool()
	assert.True(t, fault.IsErrCoding(u.Done()), "invalid boolean must be a coding error")
}

func TestUnpackFixed(t *testing.T) {
	record := new(util.Packer).PutBytes([]byte{1, 2, 3}).PutBytes([]byte{4, 5}).Bytes()

	u := util.NewUnpacker(record)
	assert.Equal(t, []byte{1, 2, 3}, u.Fixed(3, fault.ErrInvalidHashLength), "first field")
	assert.Nil(t, u.Fixed(3, fault.ErrInvalidHashLength), "second field is short")
	assert.Equal(t, fault.ErrInvalidHashLength, u.Err(), "latched error")
	assert.Equal(t, fault.ErrInvalidHashLength, u.Done(), "done error")
}
