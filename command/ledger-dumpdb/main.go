// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerdb/configuration"
	"github.com/bitmark-inc/ledgerdb/storage"
)

type metadata struct {
	db      storage.DB
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "ledger-dumpdb"
	app.Usage = "inspect a ledger database"
	app.Version = version
	app.HideVersion = true
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " read database settings from Lua configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: " leveldb database `DIRECTORY`, overrides the configuration",
		},
		cli.BoolFlag{
			Name:  "tx-queue, t",
			Usage: " database was written with the pending transaction queue",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "last-block",
			Usage:     "state of the last committed block",
			ArgsUsage: " ",
			Action:    runLastBlock,
		},
		{
			Name:      "header",
			Usage:     "block header stored at a height",
			ArgsUsage: "HEIGHT",
			Action:    runHeader,
		},
		{
			Name:      "stores",
			Usage:     "merkle tree stores of a height",
			ArgsUsage: "HEIGHT",
			Action:    runStores,
		},
		{
			Name:      "subspace",
			Usage:     "list subspace entries under a key prefix",
			ArgsUsage: "[PREFIX]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` entries, 0 for all",
				},
			},
			Action: runSubspace,
		},
		{
			Name:      "value",
			Usage:     "value of a subspace key",
			ArgsUsage: "KEY",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "height, H",
					Usage: " value as of the end of block `HEIGHT`",
				},
			},
			Action: runValue,
		},
		{
			Name:      "results",
			Usage:     "rejected transactions of every block",
			ArgsUsage: " ",
			Action:    runResults,
		},
		{
			Name:      "version",
			Usage:     "display ledger-dumpdb version",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// open the database
	app.Before = func(c *cli.Context) error {

		command := c.Args().Get(0)
		if "" == command || "version" == command || "help" == command || "h" == command {
			return nil
		}

		verbose := c.GlobalBool("verbose")

		logging := logger.Configuration{
			Directory: ".",
			File:      "ledger-dumpdb.log",
			Size:      1048576,
			Count:     10,
			Console:   true,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		}
		path := c.GlobalString("file")
		cache := &storage.Cache{}
		opts := []storage.Option{
			storage.WithReadOnly(),
		}
		txQueue := c.GlobalBool("tx-queue")

		if file := c.GlobalString("config"); "" != file {
			if verbose {
				fmt.Fprintf(c.App.ErrWriter, "reading config file: %s\n", file)
			}
			conf, err := configuration.GetConfiguration(file, nil)
			if nil != err {
				return err
			}
			if configuration.EngineLevelDB != conf.Database.Engine {
				return fmt.Errorf("engine: %q keeps nothing to dump", conf.Database.Engine)
			}
			logging = conf.Logging
			if "" == path {
				path = conf.Database.Path()
			}
			cache.BlockCacheSize = conf.Database.BlockCacheSize
			cache.ValueCacheSize = conf.Database.ValueCacheSize
			txQueue = txQueue || conf.Database.TxQueue
		}
		if "" == path {
			return fmt.Errorf("no database: use --file or --config")
		}
		if txQueue {
			opts = append(opts, storage.WithTxQueue())
		}

		// start logging
		if err := logger.Initialise(logging); nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(c.App.ErrWriter, "database: %q\n", path)
		}
		db, err := storage.OpenLevelDB(path, cache, opts...)
		if nil != err {
			logger.Finalise()
			return err
		}

		c.App.Metadata["config"] = &metadata{
			db:      db,
			verbose: verbose,
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	// close the database
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		err := m.db.Close()
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}
