// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/merkle"
)

func TestScanFmt(t *testing.T) {

	stringDigest := "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"

	var d merkle.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}

	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	expected := merkle.Digest{
		0x64, 0x4b, 0xcc, 0x7e,
		0x56, 0x43, 0x73, 0x04,
		0x09, 0x99, 0xaa, 0xc8,
		0x9e, 0x76, 0x22, 0xf3,
		0xca, 0x71, 0xfb, 0xa1,
		0xd9, 0x72, 0xfd, 0x94,
		0xa3, 0x1c, 0x3b, 0xfb,
		0xf2, 0x4e, 0x39, 0x38,
	}

	if d != expected {
		t.Errorf("digest = %#v expected %#v", d, expected)
	}

	s := fmt.Sprintf("%s", d)
	if s != stringDigest {
		t.Errorf("string: digest = %s expected %s", s, stringDigest)
	}

	s = fmt.Sprintf("%#v", d)
	if s != "<root:"+stringDigest+">" {
		t.Errorf("hash-v: digest = %s expected %s", s, stringDigest)
	}
}

func TestDigest(t *testing.T) {
	s := []byte("hello world")
	d := merkle.NewDigest(s)

	// printf '%s' 'hello world' | sha3sum -a 256
	stringDigest := "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"

	var expected merkle.Digest
	n, err := fmt.Sscan(stringDigest, &expected)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}

	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	if d != expected {
		t.Errorf("digest = %#v expected %#v", d, expected)
	}
}

func TestDigestFromBytes(t *testing.T) {
	var d merkle.Digest
	err := merkle.DigestFromBytes(&d, make([]byte, merkle.DigestLength-1))
	if fault.ErrInvalidDigestLength != err {
		t.Errorf("short buffer: error: %v expected: %v", err, fault.ErrInvalidDigestLength)
	}

	buffer := make([]byte, merkle.DigestLength)
	buffer[0] = 0x5a
	err = merkle.DigestFromBytes(&d, buffer)
	if nil != err {
		t.Fatalf("digest from bytes error: %v", err)
	}
	if 0x5a != d[0] || d.IsZero() {
		t.Errorf("digest = %#v not copied from buffer", d)
	}
}

func TestTextRoundTrip(t *testing.T) {
	d := merkle.NewDigest([]byte("root"))
	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %v", err)
	}

	var back merkle.Digest
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %v", err)
	}
	if back != d {
		t.Errorf("digest = %#v expected %#v", back, d)
	}

	err = back.UnmarshalText([]byte("abcd"))
	if fault.ErrInvalidDigestLength != err {
		t.Errorf("short text: error: %v expected: %v", err, fault.ErrInvalidDigestLength)
	}
}
