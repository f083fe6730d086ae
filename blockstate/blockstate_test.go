// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

func TestEpochRecord(t *testing.T) {
	e := blockstate.Epoch(2)
	var back blockstate.Epoch
	err := back.Unpack(e.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, e, back, "epoch")
	assert.Equal(t, blockstate.Epoch(3), e.Next(), "next epoch")

	err = back.Unpack(append(e.Pack(), 0x00))
	assert.Equal(t, fault.ErrTrailingData, err, "trailing data")
}

func TestEpochs(t *testing.T) {
	epochs := blockstate.NewEpochs()
	epochs.NewEpoch(10)
	epochs.NewEpoch(25)

	items := []struct {
		height storagekey.BlockHeight
		epoch  blockstate.Epoch
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{24, 1},
		{25, 2},
		{1000, 2},
	}
	for i, item := range items {
		e, ok := epochs.EpochOf(item.height)
		assert.True(t, ok, "%d: epoch of height %d", i, item.height)
		assert.Equal(t, item.epoch, e, "%d: epoch of height %d", i, item.height)
	}

	current, ok := epochs.Current()
	assert.True(t, ok, "current epoch")
	assert.Equal(t, blockstate.Epoch(2), current, "current epoch")

	var back blockstate.Epochs
	err := back.Unpack(epochs.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, epochs, back, "epochs round trip")
}

func TestEpochsBeforeHistory(t *testing.T) {
	epochs := blockstate.Epochs{
		FirstKnownEpoch:   5,
		FirstBlockHeights: []storagekey.BlockHeight{100, 200},
	}
	_, ok := epochs.EpochOf(99)
	assert.False(t, ok, "height precedes history")

	e, ok := epochs.EpochOf(150)
	assert.True(t, ok, "height inside history")
	assert.Equal(t, blockstate.Epoch(5), e, "first known epoch")
}

func TestEpochsTruncated(t *testing.T) {
	epochs := blockstate.NewEpochs()
	epochs.NewEpoch(300)
	record := epochs.Pack()

	var back blockstate.Epochs
	err := back.Unpack(record[:len(record)-1])
	assert.True(t, fault.IsErrCoding(err), "truncated record: %v", err)
}

func TestHeader(t *testing.T) {
	header := blockstate.Header{
		Hash:               blockstate.NewHash([]byte("block")),
		Time:               time.Unix(1600000000, 123456789).UTC(),
		NextValidatorsHash: blockstate.NewHash([]byte("validators")),
	}

	var back blockstate.Header
	err := back.Unpack(header.Pack())
	require.Nil(t, err, "unpack error")
	assert.Equal(t, header, back, "header round trip")

	err = back.Unpack([]byte{0x01, 0x00})
	assert.Equal(t, fault.ErrInvalidHashLength, err, "short hash")
}

func TestTime(t *testing.T) {
	items := []time.Time{
		time.Unix(0, 0).UTC(),
		time.Unix(1600000000, 999999999).UTC(),
		time.Unix(-86400, 1).UTC(),
	}
	for i, item := range items {
		back, err := blockstate.UnpackTime(blockstate.PackTime(item))
		assert.Nil(t, err, "%d: unpack error", i)
		assert.Equal(t, item, back, "%d: time stamp", i)
	}
}

func TestHashRecord(t *testing.T) {
	h := blockstate.NewHash([]byte("hello world"))
	assert.Equal(t, "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938", h.String(), "sha3-256")

	var back blockstate.Hash
	err := back.Unpack(h.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, h, back, "hash round trip")

	text, err := h.MarshalText()
	assert.Nil(t, err, "marshal error")
	var parsed blockstate.Hash
	assert.Nil(t, parsed.UnmarshalText(text), "unmarshal error")
	assert.Equal(t, h, parsed, "text round trip")

	assert.Equal(t, fault.ErrInvalidHashLength, parsed.UnmarshalText([]byte("abcd")), "short text")
	assert.NotNil(t, parsed.UnmarshalText([]byte("not hex")), "invalid hex")
}

func TestHashFromBytes(t *testing.T) {
	h := blockstate.NewHash([]byte("block"))

	var copied blockstate.Hash
	assert.Nil(t, blockstate.HashFromBytes(&copied, h[:]), "exact length")
	assert.Equal(t, h, copied, "copied hash")

	var short blockstate.Hash
	assert.Equal(t, fault.ErrInvalidHashLength, blockstate.HashFromBytes(&short, h[:31]), "short buffer")
	assert.Equal(t, blockstate.Hash{}, short, "unchanged on error")

	assert.Equal(t, fault.ErrInvalidHashLength, blockstate.HashFromBytes(&short, append(h[:], 0x00)), "long buffer")
}

func TestBlockResults(t *testing.T) {
	var results blockstate.BlockResults
	assert.True(t, results.IsAccepted(7), "empty results accept everything")

	results.Reject(3)
	results.Reject(12)
	results.Accept(12)
	results.Accept(40)

	assert.False(t, results.IsAccepted(3), "rejected transaction")
	assert.True(t, results.IsAccepted(12), "accepted after rejection")
	assert.True(t, results.IsAccepted(40), "accepted beyond vector")

	results.Reject(9)
	assert.Equal(t, []int{3, 9}, results.Rejected(), "rejected indices")

	var back blockstate.BlockResults
	err := back.Unpack(results.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, results, back, "results round trip")

	var empty blockstate.BlockResults
	err = back.Unpack(empty.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, empty, back, "empty results round trip")
}

func TestAddressGen(t *testing.T) {
	g1 := blockstate.NewAddressGen([]byte("chain-id"))
	g2 := blockstate.NewAddressGen([]byte("chain-id"))

	a1 := g1.Generate([]byte("entropy"))
	a2 := g1.Generate([]byte("entropy"))
	assert.NotEqual(t, a1, a2, "generator must advance")

	assert.Equal(t, a1, g2.Generate([]byte("entropy")), "deterministic generation")

	var restored blockstate.AddressGen
	err := restored.Unpack(g1.Pack())
	require.Nil(t, err, "unpack error")
	assert.Equal(t, g1, restored, "generator round trip")
	assert.Equal(t, g1.Generate([]byte("x")), restored.Generate([]byte("x")), "restored generator continues the sequence")
}

func TestAddressText(t *testing.T) {
	g := blockstate.NewAddressGen(nil)
	a := g.Generate([]byte("entropy"))

	parsed, err := blockstate.ParseAddress(a.String())
	assert.Nil(t, err, "parse error")
	assert.Equal(t, a, parsed, "address round trip")

	_, err = blockstate.ParseAddress("0OIl")
	assert.Equal(t, fault.ErrInvalidAddress, err, "invalid base58")

	_, err = blockstate.ParseAddress("2")
	assert.Equal(t, fault.ErrInvalidAddress, err, "wrong length")
}

func TestTxQueue(t *testing.T) {
	var q blockstate.TxQueue
	q.Push([]byte("tx-1"))
	q.Push([]byte{})
	q.Push([]byte("tx-3"))
	assert.Equal(t, 3, q.Len(), "queue length")

	var back blockstate.TxQueue
	err := back.Unpack(q.Pack())
	require.Nil(t, err, "unpack error")
	assert.Equal(t, q, back, "queue round trip")

	tx, ok := back.Pop()
	assert.True(t, ok, "pop")
	assert.Equal(t, []byte("tx-1"), tx, "head of queue")

	var empty blockstate.TxQueue
	err = back.Unpack(empty.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, empty, back, "empty queue round trip")

	_, ok = empty.Pop()
	assert.False(t, ok, "pop of empty queue")
}
