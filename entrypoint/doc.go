// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entrypoint - host side glue for transaction and validity
// predicate handlers
//
// the host passes each handler one length-prefixed message:
//
//   transaction:        data
//   validity predicate: address, data, changed keys, verifiers
//
// every field is a varint length followed by that many bytes, lists
// are a varint count followed by their elements
//
// a failing transaction aborts the host; a failing validity predicate
// simply rejects
package entrypoint
