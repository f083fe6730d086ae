// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entrypoint

import (
	"github.com/bitmark-inc/ledgerdb/storage"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

//go:generate mockgen -destination=mocks/storage_access.go -package=mocks github.com/bitmark-inc/ledgerdb/entrypoint StorageAccess

// StorageAccess - the part of a storage backend a handler may reach
type StorageAccess interface {
	ReadSubspaceVal(key storagekey.Key) ([]byte, error)
	ReadSubspaceValWithHeight(key storagekey.Key, height storagekey.BlockHeight, lastHeight storagekey.BlockHeight) ([]byte, error)
	WriteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key, value []byte) (int64, error)
	DeleteSubspaceVal(height storagekey.BlockHeight, key storagekey.Key) (int64, error)
	IterPrefix(prefix storagekey.Key) *storage.PrefixIterator
}

// Ctx - storage access for one handler run at a block height
//
// every access is charged: the length of the key plus the length of
// the value read or written
type Ctx struct {
	store  StorageAccess
	height storagekey.BlockHeight
	gas    uint64
}

// NewCtx - a context executing in the block at height
func NewCtx(store StorageAccess, height storagekey.BlockHeight) *Ctx {
	return &Ctx{
		store:  store,
		height: height,
	}
}

// Height - block being executed
func (c *Ctx) Height() storagekey.BlockHeight {
	return c.height
}

// Gas - total charged so far
func (c *Ctx) Gas() uint64 {
	return c.gas
}

func (c *Ctx) charge(key storagekey.Key, n int) {
	c.gas += uint64(len(key.String()) + n)
}

// Read - current value of a key, nil if absent
func (c *Ctx) Read(key storagekey.Key) ([]byte, error) {
	value, err := c.store.ReadSubspaceVal(key)
	if nil != err {
		return nil, err
	}
	c.charge(key, len(value))
	return value, nil
}

// ReadPre - value of a key before the block being executed
func (c *Ctx) ReadPre(key storagekey.Key) ([]byte, error) {
	if 0 == c.height {
		c.charge(key, 0)
		return nil, nil
	}
	value, err := c.store.ReadSubspaceValWithHeight(key, c.height-1, c.height)
	if nil != err {
		return nil, err
	}
	c.charge(key, len(value))
	return value, nil
}

// Has - true if the key currently has a value
func (c *Ctx) Has(key storagekey.Key) (bool, error) {
	value, err := c.Read(key)
	return nil != value, err
}

// Write - set the value of a key, returning the change in length
func (c *Ctx) Write(key storagekey.Key, value []byte) (int64, error) {
	n, err := c.store.WriteSubspaceVal(c.height, key, value)
	if nil != err {
		return 0, err
	}
	c.charge(key, len(value))
	return n, nil
}

// Delete - remove a key, returning the length freed
func (c *Ctx) Delete(key storagekey.Key) (int64, error) {
	n, err := c.store.DeleteSubspaceVal(c.height, key)
	if nil != err {
		return 0, err
	}
	c.charge(key, 0)
	return n, nil
}

// Iter - every entry under a prefix, charged at the iterator rate
func (c *Ctx) Iter(prefix storagekey.Key) ([]storage.Entry, error) {
	entries, gas, err := c.store.IterPrefix(prefix).Collect()
	c.gas += gas
	if nil != err {
		return nil, err
	}
	return entries, nil
}
