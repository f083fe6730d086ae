// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// staged writes of a batch not yet committed
type stagingCache interface {
	Get(string) ([]byte, bool)
	Set(dbOperation, string, []byte)
	Each(func(dbOperation, string, []byte))
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type dbOverlay struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

// staged entries must live until the batch is executed or dropped
func newOverlay() *dbOverlay {
	return &dbOverlay{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - staged value of a key
//
// the second result is false if the key was not staged; a staged
// delete returns nil, true
func (c *dbOverlay) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true
	}
	return data.value, true
}

// Set - stage an operation, replacing any earlier one on the key
func (c *dbOverlay) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

// Each - visit every staged operation
func (c *dbOverlay) Each(f func(dbOperation, string, []byte)) {
	for key, item := range c.cache.Items() {
		data := item.Object.(cacheData)
		f(data.op, key, data.value)
	}
}

// Clear - drop everything staged
func (c *dbOverlay) Clear() {
	c.cache.Flush()
}
