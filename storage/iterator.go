// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
)

// ascending key order source of raw entries, the method set of a
// goleveldb iterator
type rawIterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Entry - one item yielded by a prefix iterator
type Entry struct {
	Key   string
	Value []byte
	Gas   uint64
}

// PrefixIterator - lazy traversal of one namespace
//
// every yielded entry costs the length of its logical key plus the
// length of its value; entries outside the namespace are skipped
// without cost
type PrefixIterator struct {
	source   rawIterator
	prefix   []byte
	dbPrefix []byte
	charge   func(gas uint64)

	key   string
	value []byte
	gas   uint64
	err   error
}

func newPrefixIterator(source rawIterator, prefix string, dbPrefix string, charge func(uint64)) *PrefixIterator {
	return &PrefixIterator{
		source:   source,
		prefix:   []byte(prefix),
		dbPrefix: []byte(dbPrefix),
		charge:   charge,
	}
}

// an iterator that yields nothing and reports err
func failedIterator(err error) *PrefixIterator {
	return &PrefixIterator{
		err: err,
	}
}

// Next - advance to the next entry, false at the end or on error
func (it *PrefixIterator) Next() bool {
	if nil == it.source {
		return false
	}
	for it.source.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := it.source.Key()
		if !bytes.HasPrefix(key, it.prefix) || !bytes.HasPrefix(key, it.dbPrefix) {
			continue
		}
		value := it.source.Value()

		it.key = string(key[len(it.dbPrefix):])
		it.value = make([]byte, len(value))
		copy(it.value, value)
		it.gas = uint64(len(it.key) + len(it.value))
		if nil != it.charge {
			it.charge(it.gas)
		}
		return true
	}
	it.err = it.source.Error()
	it.key = ""
	it.value = nil
	it.gas = 0
	return false
}

// Key - logical key of the current entry, namespace stripped
func (it *PrefixIterator) Key() string {
	return it.key
}

// Value - value of the current entry, safe to retain
func (it *PrefixIterator) Value() []byte {
	return it.value
}

// Gas - cost of the current entry
func (it *PrefixIterator) Gas() uint64 {
	return it.gas
}

// Err - failure that ended the traversal
func (it *PrefixIterator) Err() error {
	return it.err
}

// Release - free the underlying iterator, must be called once done
func (it *PrefixIterator) Release() {
	if nil != it.source {
		it.source.Release()
		it.source = nil
	}
}

// Collect - drain the iterator, releasing it
//
// returns all entries and their total gas
func (it *PrefixIterator) Collect() ([]Entry, uint64, error) {
	defer it.Release()

	entries := []Entry{}
	total := uint64(0)
	for it.Next() {
		entries = append(entries, Entry{
			Key:   it.key,
			Value: it.value,
			Gas:   it.gas,
		})
		total += it.gas
	}
	return entries, total, it.err
}

// in-memory source over a copy of the matching entries
type sliceIterator struct {
	items []item
	index int
}

func (s *sliceIterator) Next() bool {
	if s.index >= len(s.items) {
		return false
	}
	s.index += 1
	return true
}

func (s *sliceIterator) Key() []byte {
	return []byte(s.items[s.index-1].key)
}

func (s *sliceIterator) Value() []byte {
	return s.items[s.index-1].value
}

func (s *sliceIterator) Release() {
	s.items = nil
	s.index = 0
}

func (s *sliceIterator) Error() error {
	return nil
}
