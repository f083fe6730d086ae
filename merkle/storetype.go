// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/ledgerdb/fault"
)

// StoreType - one of the sub-trees making up the state commitment
type StoreType uint8

// the store types, in the order they are persisted
const (
	Base StoreType = iota
	Account
	Ibc
	PoS

	storeTypeCount = iota
)

// key segment names, indexed by store type
var storeTypeNames = [storeTypeCount]string{
	Base:    "base",
	Account: "account",
	Ibc:     "ibc",
	PoS:     "pos",
}

// AllStoreTypes - every store type in persisted order
func AllStoreTypes() []StoreType {
	all := make([]StoreType, storeTypeCount)
	for i := range all {
		all[i] = StoreType(i)
	}
	return all
}

// String - key segment name of the store type
func (st StoreType) String() string {
	if !st.Valid() {
		return "unknown"
	}
	return storeTypeNames[st]
}

// Raw - key segment form
func (st StoreType) Raw() string {
	return st.String()
}

// Valid - true for a known store type
func (st StoreType) Valid() bool {
	return st < storeTypeCount
}

// ParseStoreType - convert a key segment back to a store type
func ParseStoreType(s string) (StoreType, error) {
	for i, name := range storeTypeNames {
		if name == s {
			return StoreType(i), nil
		}
	}
	return 0, fault.ErrInvalidStoreType
}
