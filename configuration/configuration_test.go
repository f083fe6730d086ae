// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerdb/configuration"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/logger"
)

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, content string) (string, string) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ledgerdb.conf")
	require.Nil(t, os.WriteFile(file, []byte(content), 0600), "write configuration")
	return dir, file
}

func copyTestData(t *testing.T) (string, string) {
	content, err := os.ReadFile(filepath.Join("testdata", "ledgerdb.conf"))
	require.Nil(t, err, "read test data")
	return writeConfiguration(t, string(content))
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, file := writeConfiguration(t, `return { data_directory = "." }`)

	conf, err := configuration.GetConfiguration(file, nil)
	require.Nil(t, err, "get configuration")

	assert.Equal(t, filepath.Clean(dir), conf.DataDirectory, "data directory")
	assert.Equal(t, filepath.Join(dir, "data"), conf.Database.Directory, "database directory")
	assert.Equal(t, "ledger.leveldb", conf.Database.Name, "database name")
	assert.Equal(t, filepath.Join(dir, "data", "ledger.leveldb"), conf.Database.Path(), "database path")
	assert.Equal(t, configuration.EngineLevelDB, conf.Database.Engine, "engine")
	assert.Equal(t, 8*1024*1024, conf.Database.BlockCacheSize, "block cache")
	assert.Equal(t, 4096, conf.Database.ValueCacheSize, "value cache")
	assert.False(t, conf.Database.TxQueue, "tx queue")
	assert.False(t, conf.Database.CompressStores, "compression")

	assert.Equal(t, filepath.Join(dir, "log"), conf.Logging.Directory, "log directory")
	assert.Equal(t, "ledgerdb.log", conf.Logging.File, "log file")
	assert.Equal(t, 1024*1024, conf.Logging.Size, "log size")
	assert.Equal(t, 10, conf.Logging.Count, "log count")
	assert.Equal(t, "critical", conf.Logging.Levels[logger.DefaultTag], "default level")

	for _, d := range []string{conf.Database.Directory, conf.Logging.Directory} {
		info, err := os.Stat(d)
		assert.Nil(t, err, "stat: %s", d)
		assert.True(t, info.IsDir(), "directory created: %s", d)
	}
}

func TestGetConfigurationOverrides(t *testing.T) {
	dir, file := copyTestData(t)

	conf, err := configuration.GetConfiguration(file, map[string]string{
		"ledger_name": "testing",
	})
	require.Nil(t, err, "get configuration")

	assert.Equal(t, filepath.Join(dir, "chain"), conf.Database.Directory, "database directory")
	assert.Equal(t, "testing.leveldb", conf.Database.Name, "name from variable")
	assert.Equal(t, configuration.EngineLevelDB, conf.Database.Engine, "engine is case insensitive")
	assert.Equal(t, 1048576, conf.Database.BlockCacheSize, "block cache")
	assert.Equal(t, 128, conf.Database.ValueCacheSize, "value cache")
	assert.True(t, conf.Database.TxQueue, "tx queue")
	assert.True(t, conf.Database.CompressStores, "compression")

	assert.Equal(t, filepath.Join(dir, "logs"), conf.Logging.Directory, "log directory")
	assert.Equal(t, "ledger.log", conf.Logging.File, "log file")
	assert.Equal(t, 65536, conf.Logging.Size, "log size")
	assert.Equal(t, 5, conf.Logging.Count, "log count")
	assert.Equal(t, "warn", conf.Logging.Levels["DEFAULT"], "default level")
	assert.Equal(t, "debug", conf.Logging.Levels["storage"], "storage level")

	conf, err = configuration.GetConfiguration(file, nil)
	require.Nil(t, err, "get configuration without variables")
	assert.Equal(t, "ledger.leveldb", conf.Database.Name, "name without variable")
}

func TestGetConfigurationMemoryEngine(t *testing.T) {
	dir, file := writeConfiguration(t, `
return {
    data_directory = ".",
    database = { engine = "memory" },
}`)

	conf, err := configuration.GetConfiguration(file, nil)
	require.Nil(t, err, "get configuration")
	assert.Equal(t, configuration.EngineMemory, conf.Database.Engine, "engine")

	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(err), "no database directory for the memory engine")
}

func TestGetConfigurationErrors(t *testing.T) {
	_, file := writeConfiguration(t, `return { data_directory = ".", database = { engine = "rocksdb" } }`)
	_, err := configuration.GetConfiguration(file, nil)
	assert.Equal(t, fault.ErrUnknownEngine, err, "unknown engine")

	_, file = writeConfiguration(t, `return { database = { engine = "leveldb" } }`)
	_, err = configuration.GetConfiguration(file, nil)
	assert.NotNil(t, err, "missing data directory")

	_, file = writeConfiguration(t, `return { data_directory = "does-not-exist" }`)
	_, err = configuration.GetConfiguration(file, nil)
	assert.NotNil(t, err, "data directory must exist")

	_, file = writeConfiguration(t, `return { data_directory = ".", database = { name = "sub/ledger.leveldb" } }`)
	_, err = configuration.GetConfiguration(file, nil)
	assert.True(t, fault.IsErrInvalid(err), "database name with a directory: %v", err)

	_, file = writeConfiguration(t, `local x = 1`)
	_, err = configuration.GetConfiguration(file, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "no table returned")

	_, file = writeConfiguration(t, `return {`)
	_, err = configuration.GetConfiguration(file, nil)
	assert.NotNil(t, err, "syntax error")

	_, err = configuration.GetConfiguration(filepath.Join(t.TempDir(), "missing.conf"), nil)
	assert.NotNil(t, err, "missing file")
}

func TestParseConfigurationFileNeedsStructPointer(t *testing.T) {
	_, file := writeConfiguration(t, `return { data_directory = "." }`)

	var conf configuration.Configuration
	err := configuration.ParseConfigurationFile(file, conf, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "struct value")

	n := 0
	err = configuration.ParseConfigurationFile(file, &n, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "pointer to int")

	err = configuration.ParseConfigurationFile(file, &conf, nil)
	assert.Nil(t, err, "pointer to struct")
	assert.Equal(t, ".", conf.DataDirectory, "data directory")
}
