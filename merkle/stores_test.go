// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
)

func TestStoreTypeNames(t *testing.T) {
	all := merkle.AllStoreTypes()
	assert.Equal(t, []merkle.StoreType{merkle.Base, merkle.Account, merkle.Ibc, merkle.PoS}, all, "store types")

	for _, st := range all {
		parsed, err := merkle.ParseStoreType(st.String())
		assert.Nil(t, err, "parse %s", st)
		assert.Equal(t, st, parsed, "parse %s", st)
	}

	_, err := merkle.ParseStoreType("tree")
	assert.Equal(t, fault.ErrInvalidStoreType, err, "unknown store type")

	assert.Equal(t, "unknown", merkle.StoreType(200).String(), "out of range")
}

func TestStoresReadCompleteness(t *testing.T) {
	var r merkle.StoresRead
	assert.False(t, r.Complete(), "empty read must be incomplete")

	for _, st := range merkle.AllStoreTypes() {
		r.SetRoot(st, merkle.NewDigest([]byte(st.String())))
	}
	missing, ok := r.Missing()
	assert.True(t, ok, "roots only must be incomplete")
	assert.Equal(t, merkle.Base, missing, "first missing store")

	for _, st := range merkle.AllStoreTypes() {
		r.SetStore(st, merkle.Store(st.String()))
	}
	assert.True(t, r.Complete(), "all parts present")

	w := r.ToWrite()
	for _, st := range merkle.AllStoreTypes() {
		assert.Equal(t, r.Root(st), w.Root(st), "root of %s", st)
		assert.Equal(t, r.Store(st), w.Store(st), "store of %s", st)
	}
}

func TestDecodeStoreCopies(t *testing.T) {
	buffer := []byte{1, 2, 3}
	s := merkle.DecodeStore(buffer)
	buffer[0] = 9
	assert.Equal(t, merkle.Store{1, 2, 3}, s, "decoded store must not alias the buffer")
	assert.Equal(t, []byte{1, 2, 3}, s.Encode(), "encode")
}

func TestDecodeEmptyStore(t *testing.T) {
	assert.Nil(t, merkle.DecodeStore(nil), "nil buffer")
	assert.Nil(t, merkle.DecodeStore([]byte{}), "empty buffer")
	assert.Equal(t, []byte{}, merkle.Store(nil).Encode(), "nil store encodes empty")
}

func TestInvalidStoreType(t *testing.T) {
	invalid := merkle.StoreType(9)

	w := merkle.StoresWrite{}
	assert.NotPanics(t, func() {
		w.SetRoot(invalid, merkle.NewDigest([]byte("root")))
		w.SetStore(invalid, merkle.Store("blob"))
	}, "set on an invalid type")
	assert.Equal(t, merkle.Digest{}, w.Root(invalid), "no root")
	assert.Nil(t, w.Store(invalid), "no store")

	r := merkle.StoresRead{}
	assert.NotPanics(t, func() {
		r.SetRoot(invalid, merkle.NewDigest([]byte("root")))
		r.SetStore(invalid, merkle.Store("blob"))
	}, "set on an invalid type")
	assert.Equal(t, merkle.Digest{}, r.Root(invalid), "no root")
	assert.Nil(t, r.Store(invalid), "no store")
	assert.False(t, r.Complete(), "invalid types do not complete a snapshot")
}
