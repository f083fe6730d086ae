// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/logger"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// block commits reach the disk before WriteBlock returns
var syncWrite = &ldb_opt.WriteOptions{Sync: true}

// LevelDB - durable backend
type LevelDB struct {
	sync.RWMutex
	db      *leveldb.DB
	values  *lru.Cache
	options options
	metrics *metrics
	log     *logger.L
}

// ensure the interface is satisfied
var _ DB = (*LevelDB)(nil)

// OpenLevelDB - open or create the database in the directory path
//
// a nil cache selects the leveldb defaults and no value cache
func OpenLevelDB(path string, cache *Cache, opts ...Option) (*LevelDB, error) {
	if nil == cache {
		cache = &Cache{}
	}
	o := applyOptions(opts)

	log := logger.New("storage")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	ok := false

	db, version, err := getDB(path, cache, o.readOnly)
	if nil != err {
		log.Errorf("open: %q  error: %s", path, err)
		return nil, err
	}
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleVersion
	}

	// prevent readOnly from modifying the database
	if o.readOnly && version != currentDBVersion {
		log.Criticalf("database is inconsistent: version: %d  current: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleVersion
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion, nil)
		if nil != err {
			return nil, err
		}
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return nil, fault.ErrIncompatibleVersion
	}

	var values *lru.Cache
	if cache.ValueCacheSize > 0 {
		values, err = lru.New(cache.ValueCacheSize)
		if nil != err {
			return nil, err
		}
	}

	m, err := newMetrics("leveldb", o.registerer)
	if nil != err {
		return nil, err
	}

	log.Infof("opened: %q  version: %d  block cache: %d  value cache: %d", path, version, cache.BlockCacheSize, cache.ValueCacheSize)

	ok = true // prevent db close
	return &LevelDB{
		db:      db,
		values:  values,
		options: o,
		metrics: m,
		log:     log,
	}, nil
}

// return:
//   database handle
//   version number
func getDB(name string, cache *Cache, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:       false,
		ErrorIfMissing:     readOnly,
		ReadOnly:           readOnly,
		BlockCacheCapacity: cache.BlockCacheSize,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fault.ErrIncompatibleVersion
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int, wo *ldb_opt.WriteOptions) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, wo)
}

// caller holds a lock
//
// subspace values are served from the value cache when possible
func (l *LevelDB) get(key string) ([]byte, error) {
	if nil == l.db {
		return nil, fault.ErrDatabaseClosed
	}

	cacheable := nil != l.values && strings.HasPrefix(key, subspacePrefix)
	if cacheable {
		if cached, ok := l.values.Get(key); ok {
			return copyBytes(cached.([]byte)), nil
		}
	}

	value, err := l.db.Get([]byte(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	if nil == value {
		value = []byte{}
	}
	if cacheable {
		l.values.Add(key, copyBytes(value))
	}
	return value, nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// a consistent read view for multi-record reads
type snapshotReader struct {
	snap *leveldb.Snapshot
}

func (r snapshotReader) get(key string) ([]byte, error) {
	value, err := r.snap.Get([]byte(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	if nil == value {
		value = []byte{}
	}
	return value, nil
}

func (r snapshotReader) scan(prefix string, f func(key string, value []byte) error) error {
	iter := r.snap.NewIterator(ldb_util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	for iter.Next() {
		if err := f(string(iter.Key()), iter.Value()); nil != err {
			return err
		}
	}
	return iter.Error()
}

// caller holds a lock
func (l *LevelDB) snapshot() (snapshotReader, error) {
	if nil == l.db {
		return snapshotReader{}, fault.ErrDatabaseClosed
	}
	snap, err := l.db.GetSnapshot()
	if nil != err {
		return snapshotReader{}, err
	}
	return snapshotReader{snap: snap}, nil
}

// Flush - with wait, force the journal to disk
func (l *LevelDB) Flush(wait bool) error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return fault.ErrDatabaseClosed
	}
	if !wait || l.options.readOnly {
		return nil
	}
	return putVersion(l.db, currentDBVersion, syncWrite)
}

// ReadLastBlock - reconstruct the last committed block state
func (l *LevelDB) ReadLastBlock() (*BlockStateRead, error) {
	l.RLock()
	defer l.RUnlock()

	r, err := l.snapshot()
	if nil != err {
		return nil, err
	}
	defer r.snap.Release()

	return readLastBlock(r, l.options)
}

// WriteBlock - store the state of a committed block as one atomic
// batch, the height marker last
func (l *LevelDB) WriteBlock(state *BlockStateWrite) error {
	records, err := blockRecords(state, l.options)
	if nil != err {
		return err
	}

	batch := new(leveldb.Batch)
	for _, r := range records {
		batch.Put([]byte(r.key), r.value)
	}

	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return fault.ErrDatabaseClosed
	}
	err = l.db.Write(batch, syncWrite)
	if nil != err {
		l.log.Errorf("write block: %d  error: %s", state.Height, err)
		return err
	}
	l.metrics.recordBlock(records)
	l.metrics.height.Set(float64(state.Height))
	l.log.Debugf("write block: %d  records: %d", state.Height, len(records))
	return nil
}

// ReadBlockHeader - header of a height, nil if none was stored
func (l *LevelDB) ReadBlockHeader(height storagekey.BlockHeight) (*blockstate.Header, error) {
	l.RLock()
	defer l.RUnlock()

	r, err := l.snapshot()
	if nil != err {
		return nil, err
	}
	defer r.snap.Release()

	return readBlockHeader(r, height)
}

// ReadMerkleTreeStores - merkle stores of a height, nil unless complete
func (l *LevelDB) ReadMerkleTreeStores(height storagekey.BlockHeight) (*merkle.StoresRead, error) {
	l.RLock()
	defer l.RUnlock()

	r, err := l.snapshot()
	if nil != err {
		return nil, err
	}
	defer r.snap.Release()

	return readMerkleTreeStores(r, height)
}

// ReadSubspaceVal - latest value of a key, nil if absent
func (l *LevelDB) ReadSubspaceVal(key storagekey.Key) ([]byte, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	l.metrics.reads.Inc()
	return l.get(k)
}

// WriteSubspaceVal - store a value, returning the change in length
func (l *LevelDB) WriteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error) {
	b := newLevelBatch(l)

	l.Lock()
	defer l.Unlock()

	n, err := l.stageWrite(b, height, key, value)
	if nil != err {
		return 0, err
	}
	return n, l.write(b)
}

// DeleteSubspaceVal - remove a value, returning the length freed
func (l *LevelDB) DeleteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key) (int64, error) {
	b := newLevelBatch(l)

	l.Lock()
	defer l.Unlock()

	n, err := l.stageDelete(b, height, key)
	if nil != err {
		return 0, err
	}
	return n, l.write(b)
}

// Batch - an empty batch for this database
func (l *LevelDB) Batch() WriteBatch {
	return newLevelBatch(l)
}

// ExecBatch - atomically commit everything staged in the batch
func (l *LevelDB) ExecBatch(batch WriteBatch) error {
	b, err := l.ownBatch(batch)
	if nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	count := b.Len()
	err = l.write(b)
	if nil != err {
		l.log.Errorf("exec batch: records: %d  error: %s", count, err)
		return err
	}
	l.log.Debugf("exec batch: records: %d", count)
	return nil
}

// BatchWriteSubspaceVal - stage a value, returning the change in length
// relative to the value the key has with earlier staged writes applied
func (l *LevelDB) BatchWriteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error) {
	b, err := l.ownBatch(batch)
	if nil != err {
		return 0, err
	}

	l.RLock()
	defer l.RUnlock()

	return l.stageWrite(b, height, key, value)
}

// BatchDeleteSubspaceVal - stage a delete, returning the length freed
func (l *LevelDB) BatchDeleteSubspaceVal(batch WriteBatch, height storagekey.BlockHeight, key storagekey.Key) (int64, error) {
	b, err := l.ownBatch(batch)
	if nil != err {
		return 0, err
	}

	l.RLock()
	defer l.RUnlock()

	return l.stageDelete(b, height, key)
}

func (l *LevelDB) ownBatch(batch WriteBatch) (*levelBatch, error) {
	b, ok := batch.(*levelBatch)
	if !ok || l != b.owner {
		return nil, fault.ErrBatchMismatch
	}
	return b, nil
}

// caller holds a lock
func (l *LevelDB) stageWrite(b *levelBatch, height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return 0, err
	}
	if nil == value {
		value = []byte{}
	}
	previous, err := b.get(k)
	if nil != err {
		return 0, err
	}
	err = recordDiff(b, height, key, previous, value)
	if nil != err {
		return 0, err
	}
	b.Put([]byte(k), value)
	l.metrics.recordWrite(len(value))
	return delta(value, previous), nil
}

// caller holds a lock
func (l *LevelDB) stageDelete(b *levelBatch, height storagekey.BlockHeight, key storagekey.Key) (int64, error) {
	k, err := subspaceKey(key)
	if nil != err {
		return 0, err
	}
	previous, err := b.get(k)
	if nil != err {
		return 0, err
	}
	if nil == previous {
		return 0, nil
	}
	err = recordDiff(b, height, key, previous, nil)
	if nil != err {
		return 0, err
	}
	b.Delete([]byte(k))
	l.metrics.deletes.Inc()
	return int64(len(previous)), nil
}

// caller holds the write lock
//
// on success the value cache is brought up to date and the batch is
// emptied for reuse
func (l *LevelDB) write(b *levelBatch) error {
	if nil == l.db {
		return fault.ErrDatabaseClosed
	}
	if 0 == b.Len() {
		return nil
	}
	err := l.db.Write(b.batch, nil)
	if nil != err {
		return err
	}
	if nil != l.values {
		b.overlay.Each(func(op dbOperation, key string, value []byte) {
			if !strings.HasPrefix(key, subspacePrefix) {
				return
			}
			if dbPut == op {
				l.values.Add(key, copyBytes(value))
			} else {
				l.values.Remove(key)
			}
		})
	}
	b.reset()
	return nil
}

// IterPrefix - subspace entries whose key starts with prefix
func (l *LevelDB) IterPrefix(prefix storagekey.Key) *PrefixIterator {
	return l.iterate(subspacePrefix+prefix.String(), subspacePrefix)
}

// IterResults - block results of every height
func (l *LevelDB) IterResults() *PrefixIterator {
	return l.iterate(resultsSegment, resultsPrefix)
}

// a leveldb iterator that also owns its snapshot
type snapshotIterator struct {
	iterator.Iterator
	snap *leveldb.Snapshot
}

func (s *snapshotIterator) Release() {
	s.Iterator.Release()
	s.snap.Release()
}

func (l *LevelDB) iterate(prefix string, dbPrefix string) *PrefixIterator {
	l.RLock()
	defer l.RUnlock()

	r, err := l.snapshot()
	if nil != err {
		return failedIterator(err)
	}
	source := &snapshotIterator{
		Iterator: r.snap.NewIterator(ldb_util.BytesPrefix([]byte(prefix)), nil),
		snap:     r.snap,
	}
	return newPrefixIterator(source, prefix, dbPrefix, l.metrics.chargeGas)
}

// Close - close the database, the handle cannot be reused
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return fault.ErrDatabaseClosed
	}
	err := l.db.Close()
	l.db = nil
	if nil != l.values {
		l.values.Purge()
	}
	l.metrics.unregister()
	l.log.Info("closed")
	l.log.Flush()
	return err
}
