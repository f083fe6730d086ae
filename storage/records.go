// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"
	"time"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/ledgerdb/util"
)

// read access shared by the block state decoder
//
// get returns nil for an absent key, scan visits keys with the prefix
// in ascending order
type kvReader interface {
	get(key string) ([]byte, error)
	scan(prefix string, f func(key string, value []byte) error) error
}

// a single physical write
type record struct {
	key   string
	value []byte
}

type unpacker interface {
	Unpack(record []byte) error
}

type keyedUnpacker struct {
	key    string
	target unpacker
}

type unpackFunc func(record []byte) error

func (f unpackFunc) Unpack(record []byte) error {
	return f(record)
}

func packHeight(height storagekey.BlockHeight) []byte {
	return new(util.Packer).PutUint64(uint64(height)).Bytes()
}

func heightField(height *storagekey.BlockHeight) unpacker {
	return unpackFunc(func(record []byte) error {
		u := util.NewUnpacker(record)
		n := u.Uint64()
		if err := u.Done(); nil != err {
			return err
		}
		*height = storagekey.BlockHeight(n)
		return nil
	})
}

func timeField(t *time.Time) unpacker {
	return unpackFunc(func(record []byte) error {
		value, err := blockstate.UnpackTime(record)
		if nil != err {
			return err
		}
		*t = value
		return nil
	})
}

func packRoot(root merkle.Digest) []byte {
	return new(util.Packer).PutBytes(root[:]).Bytes()
}

func unpackRoot(record []byte) (merkle.Digest, error) {
	var root merkle.Digest
	u := util.NewUnpacker(record)
	copy(root[:], u.Fixed(merkle.DigestLength, fault.ErrInvalidDigestLength))
	return root, u.Done()
}

// the complete set of writes for a block, the height marker last
func blockRecords(state *BlockStateWrite, o options) ([]record, error) {
	records := []record{
		{nextEpochMinStartHeightKey, packHeight(state.NextEpochMinStartHeight)},
		{nextEpochMinStartTimeKey, blockstate.PackTime(state.NextEpochMinStartTime.UTC())},
	}
	if o.txQueue {
		records = append(records, record{txQueueKey, state.TxQueue.Pack()})
	}

	for _, st := range merkle.AllStoreTypes() {
		rootKey, err := treeKey(state.Height, st, rootSegment)
		if nil != err {
			return nil, err
		}
		storeKey, err := treeKey(state.Height, st, storeSegment)
		if nil != err {
			return nil, err
		}
		records = append(records,
			record{rootKey, packRoot(state.MerkleTreeStores.Root(st))},
			record{storeKey, encodeStore(state.MerkleTreeStores.Store(st), o.compressStores)},
		)
	}

	fields := []record{
		{hashSegment, state.Hash.Pack()},
		{epochSegment, state.Epoch.Pack()},
		{predEpochsSegment, state.PredEpochs.Pack()},
		{addressGenSegment, state.AddressGen.Pack()},
	}
	if nil != state.Header {
		fields = append(fields, record{headerSegment, state.Header.Pack()})
	}
	for _, f := range fields {
		key, err := blockFieldKey(state.Height, f.key)
		if nil != err {
			return nil, err
		}
		records = append(records, record{key, f.value})
	}

	rk, err := resultsKey(state.Height)
	if nil != err {
		return nil, err
	}
	records = append(records,
		record{rk, state.Results.Pack()},
		record{heightKey, packHeight(state.Height)},
	)
	return records, nil
}

// reconstruct the state of the last committed block
//
// nil without error when no block was ever committed
func readLastBlock(r kvReader, o options) (*BlockStateRead, error) {
	buffer, err := r.get(heightKey)
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, nil
	}

	state := &BlockStateRead{}
	if err := heightField(&state.Height).Unpack(buffer); nil != err {
		return nil, fault.Coding(heightKey, err)
	}

	missing := []string{}
	fetch := func(key string, target unpacker) error {
		buffer, err := r.get(key)
		if nil != err {
			return err
		}
		if nil == buffer {
			missing = append(missing, key)
			return nil
		}
		if err := target.Unpack(buffer); nil != err {
			return fault.Coding(key, err)
		}
		return nil
	}

	rk, err := resultsKey(state.Height)
	if nil != err {
		return nil, err
	}
	singletons := []keyedUnpacker{
		{rk, &state.Results},
		{nextEpochMinStartHeightKey, heightField(&state.NextEpochMinStartHeight)},
		{nextEpochMinStartTimeKey, timeField(&state.NextEpochMinStartTime)},
	}
	if o.txQueue {
		singletons = append(singletons, keyedUnpacker{txQueueKey, &state.TxQueue})
	}
	for _, s := range singletons {
		if err := fetch(s.key, s.target); nil != err {
			return nil, err
		}
	}

	// per-height scalars, in the order they are reported when missing
	scalars := []struct {
		segment string
		target  unpacker
		found   bool
	}{
		{hashSegment, &state.Hash, false},
		{epochSegment, &state.Epoch, false},
		{predEpochsSegment, &state.PredEpochs, false},
		{addressGenSegment, &state.AddressGen, false},
	}

	err = r.scan(heightPrefix(state.Height), func(key string, value []byte) error {
		segments := strings.Split(key, storagekey.Separator)
		if treeSegment == segments[1] {
			return readTreeEntry(&state.MerkleTreeStores, key, segments, value)
		}
		if 2 != len(segments) {
			return fault.UnknownKey(key)
		}
		if headerSegment == segments[1] {
			return nil
		}
		for i := range scalars {
			if scalars[i].segment == segments[1] {
				if err := scalars[i].target.Unpack(value); nil != err {
					return fault.Coding(key, err)
				}
				scalars[i].found = true
				return nil
			}
		}
		return fault.UnknownKey(key)
	})
	if nil != err {
		return nil, err
	}

	for _, s := range scalars {
		if !s.found {
			key, err := blockFieldKey(state.Height, s.segment)
			if nil != err {
				return nil, err
			}
			missing = append(missing, key)
		}
	}
	if st, incomplete := state.MerkleTreeStores.Missing(); incomplete {
		missing = append(missing, heightPrefix(state.Height)+treeSegment+storagekey.Separator+st.Raw())
	}

	if 0 != len(missing) {
		return nil, fault.Temporary("block state at height "+state.Height.Raw(), strings.Join(missing, ", "))
	}
	return state, nil
}

// h/tree/st/root or h/tree/st/store
func readTreeEntry(stores *merkle.StoresRead, key string, segments []string, value []byte) error {
	if 4 != len(segments) {
		return fault.UnknownKey(key)
	}
	st, err := merkle.ParseStoreType(segments[2])
	if nil != err {
		return fault.UnknownKey(key)
	}
	switch segments[3] {
	case rootSegment:
		root, err := unpackRoot(value)
		if nil != err {
			return fault.Coding(key, err)
		}
		stores.SetRoot(st, root)
	case storeSegment:
		store, err := decodeStore(value)
		if nil != err {
			return fault.Coding(key, err)
		}
		stores.SetStore(st, store)
	default:
		return fault.UnknownKey(key)
	}
	return nil
}

// all-or-nothing reload of the merkle stores of a height
func readMerkleTreeStores(r kvReader, height storagekey.BlockHeight) (*merkle.StoresRead, error) {
	stores := &merkle.StoresRead{}
	for _, st := range merkle.AllStoreTypes() {
		rootKey, err := treeKey(height, st, rootSegment)
		if nil != err {
			return nil, err
		}
		buffer, err := r.get(rootKey)
		if nil != err {
			return nil, err
		}
		if nil == buffer {
			return nil, nil
		}
		root, err := unpackRoot(buffer)
		if nil != err {
			return nil, fault.Coding(rootKey, err)
		}
		stores.SetRoot(st, root)

		storeKey, err := treeKey(height, st, storeSegment)
		if nil != err {
			return nil, err
		}
		buffer, err = r.get(storeKey)
		if nil != err {
			return nil, err
		}
		if nil == buffer {
			return nil, nil
		}
		store, err := decodeStore(buffer)
		if nil != err {
			return nil, fault.Coding(storeKey, err)
		}
		stores.SetStore(st, store)
	}
	return stores, nil
}

func readBlockHeader(r kvReader, height storagekey.BlockHeight) (*blockstate.Header, error) {
	key, err := blockFieldKey(height, headerSegment)
	if nil != err {
		return nil, err
	}
	buffer, err := r.get(key)
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, nil
	}
	header := &blockstate.Header{}
	if err := header.Unpack(buffer); nil != err {
		return nil, fault.Coding(key, err)
	}
	return header, nil
}

// byte length difference of a replaced value
func delta(value []byte, previous []byte) int64 {
	return int64(len(value)) - int64(len(previous))
}
