// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - the persisted face of the authenticated state tree
//
// The tree algorithm itself lives elsewhere; this package only
// describes what is stored for each committed height: for every
// store type a root digest and an opaque serialised store blob that
// must be reloaded bit for bit.
package merkle
