// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors are grouped in classes, each class is a distinct string
// type, so a caller can ask "was this a decode failure" or "was this
// a partially written block" with the IsErrXXX functions even when
// the message carries context such as the offending storage key.
package fault
