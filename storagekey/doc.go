// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storagekey - hierarchical storage keys
//
// A key is an ordered list of non-empty string segments.  Its string
// form joins the segments with the separator "/", which is never
// permitted inside a segment, so the mapping between keys and their
// string form is one to one.  The string form is the on-disk
// identifier used by every database backend.
package storagekey
