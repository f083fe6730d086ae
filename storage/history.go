// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

// stage the history records for a change of key at height
//
// old holds the value before the first change at the height and is
// only written if the key existed then; new holds the value after the
// last change and is removed when that change is a delete (value nil)
func recordDiff(b *levelBatch, height storagekey.BlockHeight, key storagekey.Key, previous []byte, value []byte) error {
	oldKey, err := diffKey(height, oldSegment, key)
	if nil != err {
		return err
	}
	newKey, err := diffKey(height, newSegment, key)
	if nil != err {
		return err
	}

	oldValue, err := b.get(oldKey)
	if nil != err {
		return err
	}
	newValue, err := b.get(newKey)
	if nil != err {
		return err
	}

	firstChange := nil == oldValue && nil == newValue
	if firstChange && nil != previous {
		b.Put([]byte(oldKey), previous)
	}

	if nil != value {
		b.Put([]byte(newKey), value)
	} else if nil != newValue {
		b.Delete([]byte(newKey))
	}
	return nil
}

// ReadSubspaceValWithHeight - value of a key as of the end of block
// height, where lastHeight is the last committed block
//
// nil if the key did not exist then
func (l *LevelDB) ReadSubspaceValWithHeight(key storagekey.Key, height storagekey.BlockHeight, lastHeight storagekey.BlockHeight) ([]byte, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	r, err := l.snapshot()
	if nil != err {
		return nil, err
	}
	defer r.snap.Release()

	l.metrics.reads.Inc()

	// changed at the requested height
	value, err := readDiff(r, height, newSegment, key)
	if nil != err || nil != value {
		return value, err
	}
	deleted, err := readDiff(r, height, oldSegment, key)
	if nil != err {
		return nil, err
	}
	if nil != deleted {
		return nil, nil
	}

	// first later change tells what the value was
	for h := height + 1; h > height && h <= lastHeight; h += 1 {
		old, err := readDiff(r, h, oldSegment, key)
		if nil != err || nil != old {
			return old, err
		}
		created, err := readDiff(r, h, newSegment, key)
		if nil != err {
			return nil, err
		}
		if nil != created {
			return nil, nil
		}
	}

	// unchanged since
	return r.get(k)
}

func readDiff(r snapshotReader, height storagekey.BlockHeight, kind string, key storagekey.Key) ([]byte, error) {
	k, err := diffKey(height, kind, key)
	if nil != err {
		return nil, err
	}
	return r.get(k)
}
