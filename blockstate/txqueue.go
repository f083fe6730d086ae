// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

// TxQueue - wrapped transactions waiting for a later block
type TxQueue struct {
	items [][]byte
}

// Push - append a transaction to the tail
func (q *TxQueue) Push(tx []byte) {
	item := make([]byte, len(tx))
	copy(item, tx)
	q.items = append(q.items, item)
}

// Pop - remove the transaction at the head
func (q *TxQueue) Pop() ([]byte, bool) {
	if 0 == len(q.items) {
		return nil, false
	}
	tx := q.items[0]
	q.items = q.items[1:]
	if 0 == len(q.items) {
		q.items = nil
	}
	return tx, true
}

// Len - number of queued transactions
func (q *TxQueue) Len() int {
	return len(q.items)
}

// Pack - record form
func (q TxQueue) Pack() []byte {
	p := new(util.Packer)
	p.PutUint64(uint64(len(q.items)))
	for _, tx := range q.items {
		p.PutBytes(tx)
	}
	return p.Bytes()
}

// Unpack - restore from record form
func (q *TxQueue) Unpack(record []byte) error {
	u := util.NewUnpacker(record)
	count := u.Uint64()

	// every item occupies at least its length byte
	if nil == u.Err() && count > uint64(u.Remaining()) {
		return fault.ErrRecordTruncated
	}

	var items [][]byte
	for i := uint64(0); i < count && nil == u.Err(); i += 1 {
		items = append(items, u.Bytes())
	}
	if err := u.Done(); nil != err {
		return err
	}
	q.items = items
	return nil
}
