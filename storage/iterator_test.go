// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixIteratorSkipsForeignKeys(t *testing.T) {
	source := &sliceIterator{
		items: []item{
			{"results", []byte("x")},
			{"results/1", []byte("ab")},
			{"results/2", []byte{}},
			{"resultsX", []byte("y")},
		},
	}

	charged := uint64(0)
	it := newPrefixIterator(source, resultsSegment, resultsPrefix, func(gas uint64) {
		charged += gas
	})
	entries, gas, err := it.Collect()
	assert.Nil(t, err, "collect")

	expected := []Entry{
		{Key: "1", Value: []byte("ab"), Gas: 3},
		{Key: "2", Value: []byte{}, Gas: 1},
	}
	assert.Equal(t, expected, entries, "entries")
	assert.Equal(t, uint64(4), gas, "total gas")
	assert.Equal(t, gas, charged, "charged gas")
	assert.Nil(t, source.items, "source released")
}

func TestPrefixIteratorValueIsCopied(t *testing.T) {
	value := []byte("abc")
	source := &sliceIterator{
		items: []item{{"subspace/k", value}},
	}

	it := newPrefixIterator(source, subspacePrefix, subspacePrefix, nil)
	assert.True(t, it.Next(), "first entry")
	v := it.Value()
	value[0] = 'X'
	assert.Equal(t, []byte("abc"), v, "retained value")

	assert.False(t, it.Next(), "end")
	assert.Equal(t, "", it.Key(), "no key after end")
	assert.Equal(t, uint64(0), it.Gas(), "no gas after end")
	it.Release()
	it.Release()
}

func TestFailedIterator(t *testing.T) {
	it := failedIterator(errTest)
	assert.False(t, it.Next(), "no entries")
	assert.Equal(t, errTest, it.Err(), "error")

	entries, gas, err := it.Collect()
	assert.Equal(t, 0, len(entries), "entries")
	assert.Equal(t, uint64(0), gas, "gas")
	assert.Equal(t, errTest, err, "collect error")
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("test failure")
