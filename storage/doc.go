// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persistence of ledger block state and subspace data
//
// Two backends implement the DB interface: LevelDB is the durable
// database, MemDB is an in-memory reference used by tests and tools.
//
// All keys are the string form of a storagekey.Key, segments joined
// by "/".  Numbers inside keys are plain decimal.
//
// Notes:
// 1. h            = block height (decimal)
// 2. st           = merkle store type name (base, account, ibc, pos)
// 3. key          = application key (one or more segments)
// 4. integer      = util.Packer varint record
// 5. *others*     = packed blockstate records
//
// Global singletons:
//
//   height                       - last committed block height
//                                  data: integer
//   next_epoch_min_start_height  - height the next epoch may start at
//                                  data: integer
//   next_epoch_min_start_time    - time the next epoch may start at
//                                  data: seconds(zig-zag) ++ nanoseconds
//   tx_queue                     - pending transactions (when enabled)
//                                  data: count ++ [ length ++ tx ]
//
// Per height:
//
//   h/tree/st/root               - committed merkle root
//                                  data: length ++ 32 byte digest
//   h/tree/st/store              - serialised merkle store
//                                  data: encoding ++ blob (0x00 = raw, 0x01 = zstd)
//   h/header                     - block header (optional)
//   h/hash                       - block hash
//   h/epoch                      - epoch of the block
//   h/pred_epochs                - predecessor epochs
//   h/address_gen                - address generator state
//
//   results/h                    - block results
//
// Application state:
//
//   subspace/key                 - latest value, raw bytes
//
// LevelDB only:
//
//   diffs/h/old/key              - value before the first change at h
//   diffs/h/new/key              - value after the last change at h
//   0x00 ++ "VERSION"            - database version (big endian uint32)
//
// The height record is the commit marker of a block: it is written
// last, in the same atomic batch as the rest of the block.
package storage
