// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

// global singletons
const (
	heightKey                  = "height"
	nextEpochMinStartHeightKey = "next_epoch_min_start_height"
	nextEpochMinStartTimeKey   = "next_epoch_min_start_time"
	txQueueKey                 = "tx_queue"
)

// namespace and field segments
const (
	subspaceSegment   = "subspace"
	resultsSegment    = "results"
	diffsSegment      = "diffs"
	treeSegment       = "tree"
	rootSegment       = "root"
	storeSegment      = "store"
	headerSegment     = "header"
	hashSegment       = "hash"
	epochSegment      = "epoch"
	predEpochsSegment = "pred_epochs"
	addressGenSegment = "address_gen"
	oldSegment        = "old"
	newSegment        = "new"
)

var (
	subspaceNamespace = storagekey.Must(subspaceSegment)
	resultsNamespace  = storagekey.Must(resultsSegment)
	diffsNamespace    = storagekey.Must(diffsSegment)

	subspacePrefix = subspaceSegment + storagekey.Separator
	resultsPrefix  = resultsSegment + storagekey.Separator
)

// prefix of every per-height key, the trailing separator keeps
// height 5 apart from height 50
func heightPrefix(height storagekey.BlockHeight) string {
	return height.Raw() + storagekey.Separator
}

// h/field
func blockFieldKey(height storagekey.BlockHeight, field string) (string, error) {
	k, err := storagekey.FromSegment(height)
	if nil != err {
		return "", err
	}
	k, err = k.Push(field)
	if nil != err {
		return "", err
	}
	return k.String(), nil
}

// h/tree/st/part
func treeKey(height storagekey.BlockHeight, st merkle.StoreType, part string) (string, error) {
	k, err := storagekey.FromSegment(height)
	if nil != err {
		return "", err
	}
	for _, s := range []string{treeSegment, st.Raw(), part} {
		k, err = k.Push(s)
		if nil != err {
			return "", err
		}
	}
	return k.String(), nil
}

// results/h
func resultsKey(height storagekey.BlockHeight) (string, error) {
	k, err := resultsNamespace.PushSegment(height)
	if nil != err {
		return "", err
	}
	return k.String(), nil
}

// subspace/key
func subspaceKey(key storagekey.Key) (string, error) {
	if key.IsEmpty() {
		return "", fault.ErrEmptyKey
	}
	return subspaceNamespace.Join(key).String(), nil
}

// diffs/h/kind/key
func diffKey(height storagekey.BlockHeight, kind string, key storagekey.Key) (string, error) {
	k, err := diffsNamespace.PushSegment(height)
	if nil != err {
		return "", err
	}
	k, err = k.Push(kind)
	if nil != err {
		return "", err
	}
	return k.Join(key).String(), nil
}
