// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/klauspost/compress/zstd"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
)

// merkle store encodings, the first byte of a store record
const (
	storeRaw  byte = 0x00
	storeZstd byte = 0x01
)

// both are safe for concurrent use of EncodeAll and DecodeAll
var (
	storeEncoder = mustZstdEncoder()
	storeDecoder = mustZstdDecoder()
)

func mustZstdEncoder() *zstd.Encoder {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if nil != err {
		panic(err)
	}
	return encoder
}

func mustZstdDecoder() *zstd.Decoder {
	decoder, err := zstd.NewReader(nil)
	if nil != err {
		panic(err)
	}
	return decoder
}

func encodeStore(store merkle.Store, compress bool) []byte {
	data := store.Encode()
	if !compress {
		return append([]byte{storeRaw}, data...)
	}
	return storeEncoder.EncodeAll(data, []byte{storeZstd})
}

func decodeStore(buffer []byte) (merkle.Store, error) {
	if 0 == len(buffer) {
		return nil, fault.ErrRecordTruncated
	}
	switch buffer[0] {
	case storeRaw:
		return merkle.DecodeStore(buffer[1:]), nil
	case storeZstd:
		data, err := storeDecoder.DecodeAll(buffer[1:], nil)
		if nil != err {
			return nil, fault.CodingError(err.Error())
		}
		return merkle.DecodeStore(data), nil
	default:
		return nil, fault.ErrUnknownStoreEncoding
	}
}
