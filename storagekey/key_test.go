// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/storagekey"
)

func TestParseAndString(t *testing.T) {
	items := []struct {
		text     string
		segments []string
	}{
		{"", []string{}},
		{"balance", []string{"balance"}},
		{"balance/token/owner", []string{"balance", "token", "owner"}},
		{"a/b/c/d/e", []string{"a", "b", "c", "d", "e"}},
	}
	for i, item := range items {
		k, err := storagekey.Parse(item.text)
		assert.Nil(t, err, "%d: parse error", i)
		assert.Equal(t, item.text, k.String(), "%d: string form", i)
		assert.Equal(t, item.segments, k.Segments(), "%d: segments", i)
		assert.Equal(t, len(item.segments), k.Len(), "%d: length", i)
	}
}

func TestSegmentsAreACopy(t *testing.T) {
	k := storagekey.Must("a", "b")
	segments := k.Segments()
	segments[0] = "z"
	assert.Equal(t, "a/b", k.String(), "key must not change")
}

func TestParseInvalid(t *testing.T) {
	for i, s := range []string{"/", "a//b", "a/", "/a"} {
		_, err := storagekey.Parse(s)
		assert.True(t, fault.IsErrKey(err), "%d: %q expected key error, got: %v", i, s, err)
	}
}

func TestPush(t *testing.T) {
	base := storagekey.Must("tree")

	k, err := base.Push("root")
	assert.Nil(t, err, "push error")
	assert.Equal(t, "tree/root", k.String(), "pushed key")
	assert.Equal(t, "tree", base.String(), "push must not modify the original key")

	_, err = base.Push("a/b")
	assert.Equal(t, fault.ErrSegmentHasSeparator, err, "separator in segment")

	_, err = base.Push("")
	assert.Equal(t, fault.ErrEmptySegment, err, "empty segment")
}

func TestPushDoesNotAlias(t *testing.T) {
	base := storagekey.Must("a", "b")
	k1, _ := base.Push("c")
	k2, _ := base.Push("d")
	assert.Equal(t, "a/b/c", k1.String(), "first push")
	assert.Equal(t, "a/b/d", k2.String(), "second push")
}

func TestJoin(t *testing.T) {
	ns := storagekey.Must("subspace")
	k := storagekey.Must("balance", "owner")

	joined := ns.Join(k)
	assert.Equal(t, "subspace/balance/owner", joined.String(), "joined key")
	assert.Equal(t, 3, joined.Len(), "segment count")
	assert.True(t, joined.HasPrefix(ns), "namespace prefix")
	assert.False(t, k.HasPrefix(ns), "not a prefix")

	assert.Equal(t, "subspace", ns.Join(storagekey.Key{}).String(), "join empty key")
}

func TestDistinctKeysHaveDistinctStrings(t *testing.T) {
	k1 := storagekey.Must("ab", "c")
	k2 := storagekey.Must("a", "bc")
	assert.NotEqual(t, k1.String(), k2.String(), "string forms must differ")
	assert.False(t, k1.Equal(k2), "keys must differ")
	assert.True(t, k1.Equal(storagekey.Must("ab", "c")), "equal keys")
}

func TestLast(t *testing.T) {
	_, ok := storagekey.Key{}.Last()
	assert.False(t, ok, "empty key has no last segment")

	last, ok := storagekey.Must("x", "y").Last()
	assert.True(t, ok, "last segment")
	assert.Equal(t, "y", last, "last segment value")
}

func TestBlockHeight(t *testing.T) {
	h := storagekey.BlockHeight(42)
	assert.Equal(t, "42", h.Raw(), "raw form")
	assert.Equal(t, storagekey.BlockHeight(43), h.Next(), "next height")

	k, err := storagekey.FromSegment(h)
	assert.Nil(t, err, "from segment")
	assert.Equal(t, "42", k.String(), "height key")

	parsed, err := storagekey.ParseBlockHeight("42")
	assert.Nil(t, err, "parse height")
	assert.Equal(t, h, parsed, "parsed height")

	_, err = storagekey.ParseBlockHeight("tree")
	assert.Equal(t, fault.ErrInvalidHeight, err, "invalid height")
}
