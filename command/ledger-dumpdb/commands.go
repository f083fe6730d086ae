// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

type storeView struct {
	Type string        `json:"type"`
	Root merkle.Digest `json:"root"`
	Size int           `json:"size"`
	Data string        `json:"data,omitempty"`
}

type blockView struct {
	Height                  storagekey.BlockHeight   `json:"height"`
	Hash                    blockstate.Hash          `json:"hash"`
	Epoch                   blockstate.Epoch         `json:"epoch"`
	FirstKnownEpoch         blockstate.Epoch         `json:"firstKnownEpoch"`
	EpochStartHeights       []storagekey.BlockHeight `json:"epochStartHeights"`
	NextEpochMinStartHeight storagekey.BlockHeight   `json:"nextEpochMinStartHeight"`
	NextEpochMinStartTime   time.Time                `json:"nextEpochMinStartTime"`
	AddressGenLastHash      blockstate.Hash          `json:"addressGenLastHash"`
	Rejected                []int                    `json:"rejected"`
	TxQueue                 int                      `json:"txQueue"`
	Stores                  []storeView              `json:"stores"`
}

type entryView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Gas   uint64 `json:"gas"`
}

type subspaceView struct {
	Prefix  string      `json:"prefix"`
	Entries []entryView `json:"entries"`
	Gas     uint64      `json:"gas"`
}

type resultView struct {
	Height   string `json:"height"`
	Rejected []int  `json:"rejected"`
}

func runLastBlock(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	state, err := m.db.ReadLastBlock()
	if nil != err {
		return err
	}
	if nil == state {
		return fmt.Errorf("no block has been committed")
	}

	v := blockView{
		Height:                  state.Height,
		Hash:                    state.Hash,
		Epoch:                   state.Epoch,
		FirstKnownEpoch:         state.PredEpochs.FirstKnownEpoch,
		EpochStartHeights:       state.PredEpochs.FirstBlockHeights,
		NextEpochMinStartHeight: state.NextEpochMinStartHeight,
		NextEpochMinStartTime:   state.NextEpochMinStartTime,
		AddressGenLastHash:      state.AddressGen.LastHash,
		Rejected:                state.Results.Rejected(),
		TxQueue:                 state.TxQueue.Len(),
		Stores:                  storeViews(&state.MerkleTreeStores, m.verbose),
	}
	return printJson(m.w, v)
}

func runHeader(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	height, err := heightArgument(c)
	if nil != err {
		return err
	}
	header, err := m.db.ReadBlockHeader(height)
	if nil != err {
		return err
	}
	if nil == header {
		return fmt.Errorf("no header at height: %s", height)
	}
	return printJson(m.w, header)
}

func runStores(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	height, err := heightArgument(c)
	if nil != err {
		return err
	}
	stores, err := m.db.ReadMerkleTreeStores(height)
	if nil != err {
		return err
	}
	if nil == stores {
		return fmt.Errorf("no merkle stores at height: %s", height)
	}
	return printJson(m.w, storeViews(stores, m.verbose))
}

func runSubspace(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	prefix := storagekey.Key{}
	if s := c.Args().Get(0); "" != s {
		k, err := storagekey.Parse(s)
		if nil != err {
			return err
		}
		prefix = k
	}
	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	v := subspaceView{
		Prefix:  prefix.String(),
		Entries: []entryView{},
	}

	it := m.db.IterPrefix(prefix)
	defer it.Release()
	for it.Next() {
		v.Entries = append(v.Entries, entryView{
			Key:   it.Key(),
			Value: hex.EncodeToString(it.Value()),
			Gas:   it.Gas(),
		})
		v.Gas += it.Gas()
		if 0 != count && len(v.Entries) >= count {
			break
		}
	}
	if err := it.Err(); nil != err {
		return err
	}
	return printJson(m.w, v)
}

func runValue(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().Get(0)
	if "" == s {
		return fmt.Errorf("missing key")
	}
	key, err := storagekey.Parse(s)
	if nil != err {
		return err
	}

	var value []byte
	if c.IsSet("height") {
		state, err := m.db.ReadLastBlock()
		if nil != err {
			return err
		}
		if nil == state {
			return fmt.Errorf("no block has been committed")
		}
		height := storagekey.BlockHeight(c.Uint64("height"))
		value, err = m.db.ReadSubspaceValWithHeight(key, height, state.Height)
		if nil != err {
			return err
		}
	} else {
		value, err = m.db.ReadSubspaceVal(key)
		if nil != err {
			return err
		}
	}
	if nil == value {
		return fmt.Errorf("key not found: %s", key)
	}
	return printJson(m.w, entryView{
		Key:   key.String(),
		Value: hex.EncodeToString(value),
	})
}

func runResults(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	entries, _, err := m.db.IterResults().Collect()
	if nil != err {
		return err
	}

	results := make([]resultView, 0, len(entries))
	for _, e := range entries {
		r := blockstate.BlockResults{}
		if err := r.Unpack(e.Value); nil != err {
			return fmt.Errorf("results: %s: %w", e.Key, err)
		}
		results = append(results, resultView{
			Height:   strings.TrimPrefix(e.Key, storagekey.Separator),
			Rejected: r.Rejected(),
		})
	}
	return printJson(m.w, results)
}

func heightArgument(c *cli.Context) (storagekey.BlockHeight, error) {
	s := c.Args().Get(0)
	if "" == s {
		return 0, fmt.Errorf("missing height")
	}
	return storagekey.ParseBlockHeight(s)
}

func storeViews(stores *merkle.StoresRead, verbose bool) []storeView {
	views := make([]storeView, 0, len(merkle.AllStoreTypes()))
	for _, st := range merkle.AllStoreTypes() {
		v := storeView{
			Type: st.String(),
			Root: stores.Root(st),
			Size: len(stores.Store(st)),
		}
		if verbose {
			v.Data = hex.EncodeToString(stores.Store(st))
		}
		views = append(views, v)
	}
	return views
}
