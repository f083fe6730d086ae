// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
	"github.com/bitmark-inc/logger"
)

// database engines
const (
	EngineLevelDB = "leveldb"
	EngineMemory  = "memory"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "ledger.leveldb"
	defaultEngine            = EngineLevelDB
	defaultBlockCacheSize    = 8 * 1024 * 1024 // bytes of decoded leveldb blocks
	defaultValueCacheSize    = 4096            // number of subspace values

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerdb.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		"storage":         "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - storage backend settings
type DatabaseType struct {
	Directory      string `gluamapper:"directory" json:"directory"`
	Name           string `gluamapper:"name" json:"name"`
	Engine         string `gluamapper:"engine" json:"engine"`
	BlockCacheSize int    `gluamapper:"block_cache_size" json:"block_cache_size"`
	ValueCacheSize int    `gluamapper:"value_cache_size" json:"value_cache_size"`
	TxQueue        bool   `gluamapper:"tx_queue" json:"tx_queue"`
	CompressStores bool   `gluamapper:"compress_stores" json:"compress_stores"`
}

// Configuration - the ledger database configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Path - absolute location of the durable database
func (d DatabaseType) Path() string {
	return filepath.Join(d.Directory, d.Name)
}

// GetConfiguration - read decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory:      defaultDatabaseDirectory,
			Name:           defaultDatabaseName,
			Engine:         defaultEngine,
			BlockCacheSize: defaultBlockCacheSize,
			ValueCacheSize: defaultValueCacheSize,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    map[string]string{},
		},
	}

	for tag, level := range defaultLogLevels {
		options.Logging.Levels[tag] = level
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	options.Database.Engine = strings.ToLower(options.Database.Engine)
	switch options.Database.Engine {
	case EngineLevelDB, EngineMemory:
	default:
		return nil, fault.ErrUnknownEngine
	}

	if options.Database.BlockCacheSize < 0 {
		options.Database.BlockCacheSize = defaultBlockCacheSize
	}
	if options.Database.ValueCacheSize < 0 {
		options.Database.ValueCacheSize = 0
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	for _, f := range []string{
		options.Database.Name,
		options.Logging.File,
	} {
		if !util.IsPlainName(f) {
			return nil, fmt.Errorf("%w: %q is not plain name", fault.ErrInvalidPath, f)
		}
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// create directories if they do not already exist
	directories := []string{
		options.Logging.Directory,
	}
	if EngineLevelDB == options.Database.Engine {
		directories = append(directories, options.Database.Directory)
	}
	for _, d := range directories {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
