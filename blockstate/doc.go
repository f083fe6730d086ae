// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockstate - chain metadata persisted with every block
//
// Each type has a packed record form built from util.Packer fields:
// Pack produces the record and Unpack restores it, failing with a
// fault.CodingError on truncated, malformed or over-long input.
package blockstate
