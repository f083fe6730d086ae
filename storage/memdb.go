// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"
	"sync"

	"github.com/google/btree"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

const memTreeDegree = 32

// an ordered key/value pair
type item struct {
	key   string
	value []byte
}

func itemLess(a item, b item) bool {
	return a.key < b.key
}

// MemDB - in-memory reference backend
//
// nothing survives Close, historical reads are not supported and
// batched writes are applied immediately
type MemDB struct {
	sync.RWMutex
	tree    *btree.BTreeG[item]
	options options
	metrics *metrics
}

// ensure the interface is satisfied
var _ DB = (*MemDB)(nil)

// NewMemDB - create an empty in-memory database
func NewMemDB(opts ...Option) (*MemDB, error) {
	o := applyOptions(opts)
	m, err := newMetrics("memory", o.registerer)
	if nil != err {
		return nil, err
	}
	return &MemDB{
		tree:    btree.NewG(memTreeDegree, itemLess),
		options: o,
		metrics: m,
	}, nil
}

// caller holds a lock
func (db *MemDB) get(key string) ([]byte, error) {
	if nil == db.tree {
		return nil, fault.ErrDatabaseClosed
	}
	i, ok := db.tree.Get(item{key: key})
	if !ok {
		return nil, nil
	}
	value := make([]byte, len(i.value))
	copy(value, i.value)
	return value, nil
}

// caller holds a lock
func (db *MemDB) scan(prefix string, f func(key string, value []byte) error) error {
	if nil == db.tree {
		return fault.ErrDatabaseClosed
	}
	var err error
	db.tree.AscendGreaterOrEqual(item{key: prefix}, func(i item) bool {
		if !strings.HasPrefix(i.key, prefix) {
			return false
		}
		err = f(i.key, i.value)
		return nil == err
	})
	return err
}

// caller holds the write lock
func (db *MemDB) put(key string, value []byte) ([]byte, error) {
	if nil == db.tree {
		return nil, fault.ErrDatabaseClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	previous, _ := db.tree.ReplaceOrInsert(item{key: key, value: stored})
	return previous.value, nil
}

// caller holds the write lock
func (db *MemDB) remove(key string) ([]byte, error) {
	if nil == db.tree {
		return nil, fault.ErrDatabaseClosed
	}
	previous, _ := db.tree.Delete(item{key: key})
	return previous.value, nil
}

// Flush - nothing to do
func (db *MemDB) Flush(wait bool) error {
	db.RLock()
	defer db.RUnlock()

	if nil == db.tree {
		return fault.ErrDatabaseClosed
	}
	return nil
}

// ReadLastBlock - reconstruct the last committed block state
func (db *MemDB) ReadLastBlock() (*BlockStateRead, error) {
	db.RLock()
	defer db.RUnlock()

	return readLastBlock(db, db.options)
}

// WriteBlock - store the state of a committed block
func (db *MemDB) WriteBlock(state *BlockStateWrite) error {
	records, err := blockRecords(state, db.options)
	if nil != err {
		return err
	}

	db.Lock()
	defer db.Unlock()

	for _, r := range records {
		if _, err := db.put(r.key, r.value); nil != err {
			return err
		}
	}
	db.metrics.recordBlock(records)
	db.metrics.height.Set(float64(state.Height))
	return nil
}

// ReadBlockHeader - header of a height, nil if none was stored
func (db *MemDB) ReadBlockHeader(height storagekey.BlockHeight) (*blockstate.Header, error) {
	db.RLock()
	defer db.RUnlock()

	return readBlockHeader(db, height)
}

// ReadMerkleTreeStores - merkle stores of a height, nil unless complete
func (db *MemDB) ReadMerkleTreeStores(height storagekey.BlockHeight) (*merkle.StoresRead, error) {
	db.RLock()
	defer db.RUnlock()

	return readMerkleTreeStores(db, height)
}

// ReadSubspaceVal - latest value of a key, nil if absent
func (db *MemDB) ReadSubspaceVal(key storagekey.Key) ([]byte, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return nil, err
	}

	db.RLock()
	defer db.RUnlock()

	db.metrics.reads.Inc()
	return db.get(k)
}

// ReadSubspaceValWithHeight - not supported, history is not kept
func (db *MemDB) ReadSubspaceValWithHeight(key storagekey.Key, height storagekey.BlockHeight, lastHeight storagekey.BlockHeight) ([]byte, error) {
	return nil, fault.ErrHistoryNotRetained
}

// WriteSubspaceVal - store a value, returning the change in length
func (db *MemDB) WriteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return 0, err
	}

	db.Lock()
	defer db.Unlock()

	previous, err := db.put(k, value)
	if nil != err {
		return 0, err
	}
	db.metrics.recordWrite(len(value))
	return delta(value, previous), nil
}

// DeleteSubspaceVal - remove a value, returning the length freed
func (db *MemDB) DeleteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key) (int64, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return 0, err
	}

	db.Lock()
	defer db.Unlock()

	previous, err := db.remove(k)
	if nil != err {
		return 0, err
	}
	db.metrics.deletes.Inc()
	return int64(len(previous)), nil
}

// Batch - a batch whose writes take effect immediately
func (db *MemDB) Batch() WriteBatch {
	return &memBatch{
		db: db,
	}
}

// ExecBatch - nothing left to apply
func (db *MemDB) ExecBatch(batch WriteBatch) error {
	if _, err := db.ownBatch(batch); nil != err {
		return err
	}

	db.RLock()
	defer db.RUnlock()

	if nil == db.tree {
		return fault.ErrDatabaseClosed
	}
	return nil
}

// BatchWriteSubspaceVal - same as WriteSubspaceVal
func (db *MemDB) BatchWriteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error) {
	b, err := db.ownBatch(batch)
	if nil != err {
		return 0, err
	}
	n, err := db.WriteSubspaceVal(height, key, value)
	if nil == err {
		b.count += 1
	}
	return n, err
}

// BatchDeleteSubspaceVal - same as DeleteSubspaceVal
func (db *MemDB) BatchDeleteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key) (int64, error) {
	b, err := db.ownBatch(batch)
	if nil != err {
		return 0, err
	}
	n, err := db.DeleteSubspaceVal(height, key)
	if nil == err {
		b.count += 1
	}
	return n, err
}

func (db *MemDB) ownBatch(batch WriteBatch) (*memBatch, error) {
	b, ok := batch.(*memBatch)
	if !ok || db != b.db {
		return nil, fault.ErrBatchMismatch
	}
	return b, nil
}

// IterPrefix - subspace entries whose key starts with prefix
func (db *MemDB) IterPrefix(prefix storagekey.Key) *PrefixIterator {
	return db.iterate(subspacePrefix+prefix.String(), subspacePrefix)
}

// IterResults - block results of every height
func (db *MemDB) IterResults() *PrefixIterator {
	return db.iterate(resultsSegment, resultsPrefix)
}

// take a copy of the matching entries so the iterator is unaffected
// by later writes
func (db *MemDB) iterate(prefix string, dbPrefix string) *PrefixIterator {
	db.RLock()
	defer db.RUnlock()

	items := []item{}
	err := db.scan(prefix, func(key string, value []byte) error {
		v := make([]byte, len(value))
		copy(v, value)
		items = append(items, item{key: key, value: v})
		return nil
	})
	if nil != err {
		return failedIterator(err)
	}
	return newPrefixIterator(&sliceIterator{items: items}, prefix, dbPrefix, db.metrics.chargeGas)
}

// Close - discard all data
func (db *MemDB) Close() error {
	db.Lock()
	defer db.Unlock()

	if nil == db.tree {
		return fault.ErrDatabaseClosed
	}
	db.tree = nil
	db.metrics.unregister()
	return nil
}

// memBatch - raw writes go straight to the database
type memBatch struct {
	db    *MemDB
	count int
}

func (b *memBatch) Put(key []byte, value []byte) {
	b.db.Lock()
	defer b.db.Unlock()

	if _, err := b.db.put(string(key), value); nil == err {
		b.count += 1
	}
}

func (b *memBatch) Delete(key []byte) {
	b.db.Lock()
	defer b.db.Unlock()

	if _, err := b.db.remove(string(key)); nil == err {
		b.count += 1
	}
}

// Len - number of writes applied through this batch
func (b *memBatch) Len() int {
	return b.count
}
