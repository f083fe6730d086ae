// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

// DB - operations every storage backend provides
//
// reads may run concurrently with each other, writes and batch
// execution are exclusive
type DB interface {
	Flush(wait bool) error
	ReadLastBlock() (*BlockStateRead, error)
	WriteBlock(state *BlockStateWrite) error
	ReadBlockHeader(height storagekey.BlockHeight) (*blockstate.Header, error)
	ReadMerkleTreeStores(height storagekey.BlockHeight) (*merkle.StoresRead, error)

	ReadSubspaceVal(key storagekey.Key) ([]byte, error)
	ReadSubspaceValWithHeight(key storagekey.Key, height storagekey.BlockHeight, lastHeight storagekey.BlockHeight) ([]byte, error)
	WriteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error)
	DeleteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key) (int64, error)

	Batch() WriteBatch
	ExecBatch(batch WriteBatch) error
	BatchWriteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error)
	BatchDeleteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key) (int64, error)

	IterPrefix(prefix storagekey.Key) *PrefixIterator
	IterResults() *PrefixIterator

	Close() error
}

// WriteBatch - staged raw mutations committed by DB.ExecBatch
type WriteBatch interface {
	Put(key []byte, value []byte)
	Delete(key []byte)
	Len() int
}

// BlockStateWrite - everything persisted when a block is committed
//
// times are stored as instants and always read back in UTC, so a
// state given with UTC times reads back identical
type BlockStateWrite struct {
	MerkleTreeStores        merkle.StoresWrite
	Header                  *blockstate.Header
	Hash                    blockstate.Hash
	Height                  storagekey.BlockHeight
	Epoch                   blockstate.Epoch
	PredEpochs              blockstate.Epochs
	NextEpochMinStartHeight storagekey.BlockHeight
	NextEpochMinStartTime   time.Time
	AddressGen              blockstate.AddressGen
	Results                 blockstate.BlockResults
	TxQueue                 blockstate.TxQueue
}

// BlockStateRead - everything needed to resume after a restart
type BlockStateRead struct {
	MerkleTreeStores        merkle.StoresRead
	Hash                    blockstate.Hash
	Height                  storagekey.BlockHeight
	Epoch                   blockstate.Epoch
	PredEpochs              blockstate.Epochs
	NextEpochMinStartHeight storagekey.BlockHeight
	NextEpochMinStartTime   time.Time
	AddressGen              blockstate.AddressGen
	Results                 blockstate.BlockResults
	TxQueue                 blockstate.TxQueue
}

// ToWrite - the write record that reproduces this state, header omitted
func (r *BlockStateRead) ToWrite() *BlockStateWrite {
	return &BlockStateWrite{
		MerkleTreeStores:        *r.MerkleTreeStores.ToWrite(),
		Header:                  nil,
		Hash:                    r.Hash,
		Height:                  r.Height,
		Epoch:                   r.Epoch,
		PredEpochs:              r.PredEpochs,
		NextEpochMinStartHeight: r.NextEpochMinStartHeight,
		NextEpochMinStartTime:   r.NextEpochMinStartTime,
		AddressGen:              r.AddressGen,
		Results:                 r.Results,
		TxQueue:                 r.TxQueue,
	}
}

// Cache - LevelDB memory settings
type Cache struct {
	BlockCacheSize int // bytes of decoded leveldb blocks, 0 for the leveldb default
	ValueCacheSize int // number of subspace values, 0 to disable
}
