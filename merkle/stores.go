// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Store - serialised content of one sub-tree
type Store []byte

// Encode - bytes to persist
func (s Store) Encode() []byte {
	return []byte(s)
}

// DecodeStore - reload a persisted store blob, the result does not
// share memory with the buffer
//
// an empty blob reloads as a nil store
func DecodeStore(buffer []byte) Store {
	if 0 == len(buffer) {
		return nil
	}
	s := make(Store, len(buffer))
	copy(s, buffer)
	return s
}

// StoresWrite - the snapshot handed to the database on commit
type StoresWrite struct {
	roots  [storeTypeCount]Digest
	stores [storeTypeCount]Store
}

// Root - committed root of a store type, zero for an invalid type
func (w *StoresWrite) Root(st StoreType) Digest {
	if !st.Valid() {
		return Digest{}
	}
	return w.roots[st]
}

// SetRoot - set the committed root of a store type
//
// an invalid type is ignored
func (w *StoresWrite) SetRoot(st StoreType, root Digest) {
	if st.Valid() {
		w.roots[st] = root
	}
}

// Store - serialised blob of a store type, nil for an invalid type
func (w *StoresWrite) Store(st StoreType) Store {
	if !st.Valid() {
		return nil
	}
	return w.stores[st]
}

// SetStore - set the serialised blob of a store type
//
// an invalid type is ignored
func (w *StoresWrite) SetStore(st StoreType, store Store) {
	if st.Valid() {
		w.stores[st] = store
	}
}

// StoresRead - a snapshot reloaded from the database
//
// only ever returned by the database once every store type has both
// its root and its blob
type StoresRead struct {
	roots  [storeTypeCount]Digest
	stores [storeTypeCount]Store
	seen   [storeTypeCount]uint8
}

const (
	seenRoot  = 1 << iota
	seenStore = 1 << iota
)

// Root - committed root of a store type
func (r *StoresRead) Root(st StoreType) Digest {
	if !st.Valid() {
		return Digest{}
	}
	return r.roots[st]
}

// SetRoot - record a reloaded root
func (r *StoresRead) SetRoot(st StoreType, root Digest) {
	if st.Valid() {
		r.roots[st] = root
		r.seen[st] |= seenRoot
	}
}

// Store - serialised blob of a store type
func (r *StoresRead) Store(st StoreType) Store {
	if !st.Valid() {
		return nil
	}
	return r.stores[st]
}

// SetStore - record a reloaded blob
func (r *StoresRead) SetStore(st StoreType, store Store) {
	if st.Valid() {
		r.stores[st] = store
		r.seen[st] |= seenStore
	}
}

// Missing - the first store type lacking its root or its blob
func (r *StoresRead) Missing() (StoreType, bool) {
	for i, s := range r.seen {
		if seenRoot|seenStore != s {
			return StoreType(i), true
		}
	}
	return 0, false
}

// Complete - true when every store type has been fully reloaded
func (r *StoresRead) Complete() bool {
	_, missing := r.Missing()
	return !missing
}

// ToWrite - the write snapshot holding the same content
func (r *StoresRead) ToWrite() *StoresWrite {
	return &StoresWrite{
		roots:  r.roots,
		stores: r.stores,
	}
}
