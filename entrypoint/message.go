// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entrypoint

import (
	"bytes"
	"sort"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/ledgerdb/util"
)

// VpMessage - decoded input of a validity predicate
//
// changed keys and verifiers are sets: sorted with duplicates removed
type VpMessage struct {
	Address     blockstate.Address
	Data        []byte
	KeysChanged []storagekey.Key
	Verifiers   []blockstate.Address
}

// EncodeTxMessage - build the message for a transaction handler
func EncodeTxMessage(data []byte) []byte {
	return new(util.Packer).PutBytes(data).Bytes()
}

// EncodeVpMessage - build the message for a validity predicate handler
func EncodeVpMessage(address blockstate.Address, data []byte, keysChanged []storagekey.Key, verifiers []blockstate.Address) []byte {
	p := new(util.Packer).
		PutBytes(address[:]).
		PutBytes(data).
		PutUint64(uint64(len(keysChanged)))
	for _, k := range keysChanged {
		p.PutBytes([]byte(k.String()))
	}
	p.PutUint64(uint64(len(verifiers)))
	for _, v := range verifiers {
		p.PutBytes(v[:])
	}
	return p.Bytes()
}

// DecodeTxMessage - extract the transaction data
func DecodeTxMessage(message []byte) ([]byte, error) {
	u := util.NewUnpacker(message)
	data := u.Bytes()
	if err := messageError(u.Done()); nil != err {
		return nil, err
	}
	return data, nil
}

// DecodeVpMessage - extract the validity predicate inputs
func DecodeVpMessage(message []byte) (*VpMessage, error) {
	u := util.NewUnpacker(message)

	m := &VpMessage{}
	m.Address = unpackAddress(u)
	m.Data = u.Bytes()

	keys := map[string]storagekey.Key{}
	n := listLength(u)
	for i := uint64(0); i < n; i += 1 {
		k, err := storagekey.Parse(string(u.Bytes()))
		if nil == err && k.IsEmpty() {
			err = fault.ErrEmptyKey
		}
		if nil != err {
			u.Fail(err)
			break
		}
		keys[k.String()] = k
	}

	verifiers := map[blockstate.Address]struct{}{}
	n = listLength(u)
	for i := uint64(0); i < n; i += 1 {
		verifiers[unpackAddress(u)] = struct{}{}
	}

	if err := messageError(u.Done()); nil != err {
		return nil, err
	}

	m.KeysChanged = make([]storagekey.Key, 0, len(keys))
	for _, k := range keys {
		m.KeysChanged = append(m.KeysChanged, k)
	}
	sort.Slice(m.KeysChanged, func(i, j int) bool {
		return m.KeysChanged[i].String() < m.KeysChanged[j].String()
	})

	m.Verifiers = make([]blockstate.Address, 0, len(verifiers))
	for v := range verifiers {
		m.Verifiers = append(m.Verifiers, v)
	}
	sort.Slice(m.Verifiers, func(i, j int) bool {
		return bytes.Compare(m.Verifiers[i][:], m.Verifiers[j][:]) < 0
	})

	return m, nil
}

func unpackAddress(u *util.Unpacker) blockstate.Address {
	var a blockstate.Address
	copy(a[:], u.Fixed(blockstate.AddressLength, fault.ErrInvalidAddress))
	return a
}

// a count can never exceed the bytes left, every element takes at
// least one
func listLength(u *util.Unpacker) uint64 {
	n := u.Uint64()
	if n > uint64(u.Remaining()) {
		u.Fail(fault.ErrMessageTruncated)
		return 0
	}
	return n
}

func messageError(err error) error {
	if fault.ErrRecordTruncated == err {
		return fault.ErrMessageTruncated
	}
	return err
}
