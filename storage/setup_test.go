// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storage"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/logger"
)

const (
	logDirectory = "testing"
	logFile      = "test.log"
)

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(logDirectory)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      logFile,
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

// a backend under test
type backend struct {
	name string
	open func(t *testing.T, opts ...storage.Option) storage.DB
}

func openMemDB(t *testing.T, opts ...storage.Option) storage.DB {
	db, err := storage.NewMemDB(opts...)
	require.Nil(t, err, "create memory database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openLevelDB(t *testing.T, opts ...storage.Option) storage.DB {
	return openLevelDBAt(t, filepath.Join(t.TempDir(), "test.leveldb"), opts...)
}

func openLevelDBAt(t *testing.T, path string, opts ...storage.Option) *storage.LevelDB {
	cache := &storage.Cache{
		BlockCacheSize: 1 << 20,
		ValueCacheSize: 16,
	}
	db, err := storage.OpenLevelDB(path, cache, opts...)
	require.Nil(t, err, "open leveldb: %s", path)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var backends = []backend{
	{"memory", openMemDB},
	{"leveldb", openLevelDB},
}

// run a test against every backend
func forEachBackend(t *testing.T, f func(t *testing.T, open func(t *testing.T, opts ...storage.Option) storage.DB)) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			f(t, b.open)
		})
	}
}

// a complete block state for height
func sampleState(height storagekey.BlockHeight, epoch blockstate.Epoch) *storage.BlockStateWrite {
	stores := merkle.StoresWrite{}
	for _, st := range merkle.AllStoreTypes() {
		stores.SetRoot(st, merkle.NewDigest([]byte(fmt.Sprintf("root-%s-%d", st, height))))
		stores.SetStore(st, merkle.Store(fmt.Sprintf("blob-%s-%d", st, height)))
	}

	epochs := blockstate.NewEpochs()
	for e := blockstate.Epoch(1); e <= epoch; e += 1 {
		epochs.NewEpoch(storagekey.BlockHeight(e) * 2)
	}

	results := blockstate.BlockResults{}
	results.Reject(int(height) % 5)

	gen := blockstate.NewAddressGen([]byte("ledger-test"))
	gen.Generate([]byte(fmt.Sprintf("block-%d", height)))

	return &storage.BlockStateWrite{
		MerkleTreeStores:        stores,
		Header:                  nil,
		Hash:                    blockstate.NewHash([]byte(fmt.Sprintf("block-%d", height))),
		Height:                  height,
		Epoch:                   epoch,
		PredEpochs:              epochs,
		NextEpochMinStartHeight: height + 10,
		NextEpochMinStartTime:   time.Unix(1600000000+int64(height), 500).UTC(),
		AddressGen:              gen,
		Results:                 results,
	}
}

func sampleHeader(height storagekey.BlockHeight) *blockstate.Header {
	return &blockstate.Header{
		Hash:               blockstate.NewHash([]byte(fmt.Sprintf("header-%d", height))),
		Time:               time.Unix(1600000000+int64(height), 0).UTC(),
		NextValidatorsHash: blockstate.NewHash([]byte("validators")),
	}
}

// the state read back must equal the state written, header aside
func expectedRead(state *storage.BlockStateWrite) *storage.BlockStateWrite {
	expected := *state
	expected.Header = nil
	return &expected
}

// write raw records bypassing the subspace namespace
func putRaw(t *testing.T, db storage.DB, key string, value []byte) {
	batch := db.Batch()
	batch.Put([]byte(key), value)
	require.Nil(t, db.ExecBatch(batch), "exec batch")
}

func deleteRaw(t *testing.T, db storage.DB, key string) {
	batch := db.Batch()
	batch.Delete([]byte(key))
	require.Nil(t, db.ExecBatch(batch), "exec batch")
}

func mustKey(t *testing.T, s string) storagekey.Key {
	k, err := storagekey.Parse(s)
	require.Nil(t, err, "parse key: %q", s)
	return k
}
