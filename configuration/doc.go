// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.  The file must
// return a single table, e.g.:
//
//   local M = {}
//   M.data_directory = "."
//   M.database = {
//       directory = "data",
//       name = "ledger.leveldb",
//       engine = "leveldb",
//       value_cache_size = 10000,
//       compress_stores = true,
//   }
//   M.logging = {
//       size = 1048576,
//       count = 10,
//       levels = {
//           DEFAULT = "info",
//           storage = "debug",
//       },
//   }
//   return M
package configuration
