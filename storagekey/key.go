// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"strings"

	"github.com/bitmark-inc/ledgerdb/fault"
)

// Separator - joins the segments of a key
const Separator = "/"

// KeySeg - anything that can be rendered as a single key segment
type KeySeg interface {
	Raw() string
}

// Key - an ordered sequence of segments
//
// the zero value is the empty key
type Key struct {
	segments []string
}

// New - create a key from a list of segments
func New(segments ...string) (Key, error) {
	for _, s := range segments {
		if err := validSegment(s); nil != err {
			return Key{}, err
		}
	}
	k := make([]string, len(segments))
	copy(k, segments)
	return Key{segments: k}, nil
}

// Must - like New but panics on an invalid segment, only for
// constant keys built at initialisation
func Must(segments ...string) Key {
	k, err := New(segments...)
	if nil != err {
		panic(err)
	}
	return k
}

// Parse - split the string form of a key into its segments
//
// the empty string is the empty key
func Parse(s string) (Key, error) {
	if "" == s {
		return Key{}, nil
	}
	return New(strings.Split(s, Separator)...)
}

// FromSegment - a single segment key
func FromSegment(seg KeySeg) (Key, error) {
	return New(seg.Raw())
}

func validSegment(s string) error {
	if "" == s {
		return fault.ErrEmptySegment
	}
	if strings.Contains(s, Separator) {
		return fault.ErrSegmentHasSeparator
	}
	return nil
}

// Push - a new key with one more segment appended
func (k Key) Push(s string) (Key, error) {
	if err := validSegment(s); nil != err {
		return Key{}, err
	}
	segments := make([]string, len(k.segments), len(k.segments)+1)
	copy(segments, k.segments)
	return Key{segments: append(segments, s)}, nil
}

// PushSegment - Push the raw form of seg
func (k Key) PushSegment(seg KeySeg) (Key, error) {
	return k.Push(seg.Raw())
}

// Join - a new key consisting of k followed by all segments of other
func (k Key) Join(other Key) Key {
	segments := make([]string, 0, len(k.segments)+len(other.segments))
	segments = append(segments, k.segments...)
	return Key{segments: append(segments, other.segments...)}
}

// Segments - a copy of the segments
func (k Key) Segments() []string {
	segments := make([]string, len(k.segments))
	copy(segments, k.segments)
	return segments
}

// Len - number of segments
func (k Key) Len() int {
	return len(k.segments)
}

// IsEmpty - true for a key without segments
func (k Key) IsEmpty() bool {
	return 0 == len(k.segments)
}

// Last - the final segment
func (k Key) Last() (string, bool) {
	if k.IsEmpty() {
		return "", false
	}
	return k.segments[len(k.segments)-1], true
}

// HasPrefix - true if all segments of prefix lead this key
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.segments) > len(k.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if k.segments[i] != s {
			return false
		}
	}
	return true
}

// Equal - same segments in the same order
func (k Key) Equal(other Key) bool {
	return len(k.segments) == len(other.segments) && k.HasPrefix(other)
}

// String - the canonical storage form
func (k Key) String() string {
	return strings.Join(k.segments, Separator)
}
