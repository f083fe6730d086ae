// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
)

// levelBatch - a leveldb batch plus the overlay that lets later
// operations of the same batch see its earlier ones
type levelBatch struct {
	owner   *LevelDB
	batch   *leveldb.Batch
	overlay stagingCache
}

func newLevelBatch(owner *LevelDB) *levelBatch {
	return &levelBatch{
		owner:   owner,
		batch:   new(leveldb.Batch),
		overlay: newOverlay(),
	}
}

// Put - stage a raw write
func (b *levelBatch) Put(key []byte, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	b.overlay.Set(dbPut, string(key), stored)
	b.batch.Put(key, value)
}

// Delete - stage a raw delete
func (b *levelBatch) Delete(key []byte) {
	b.overlay.Set(dbDelete, string(key), nil)
	b.batch.Delete(key)
}

// Len - number of staged records
func (b *levelBatch) Len() int {
	return b.batch.Len()
}

// staged value of a key, falling back to the database
func (b *levelBatch) get(key string) ([]byte, error) {
	if value, staged := b.overlay.Get(key); staged {
		return value, nil
	}
	return b.owner.get(key)
}

func (b *levelBatch) reset() {
	b.batch.Reset()
	b.overlay.Clear()
}
