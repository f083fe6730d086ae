// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entrypoint

import (
	"sync"

	"github.com/bitmark-inc/ledgerdb/blockstate"
	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/storagekey"
	"github.com/bitmark-inc/logger"
)

// TxHandler - application transaction
type TxHandler func(ctx *Ctx, data []byte) error

// VpHandler - application validity predicate for the account at addr
type VpHandler func(ctx *Ctx, data []byte, addr blockstate.Address, keysChanged []storagekey.Key, verifiers []blockstate.Address) (bool, error)

// results returned to the host by ValidateTx
const (
	VpReject uint64 = 0
	VpAccept uint64 = 1
)

type entrypointData struct {
	sync.RWMutex

	log *logger.L

	// set once during initialise
	initialised bool
}

var globalData entrypointData

// Initialise - open the log channel
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("entrypoint")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - flush the log channel
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

func debugf(format string, arguments ...interface{}) {
	globalData.RLock()
	defer globalData.RUnlock()

	if globalData.initialised {
		globalData.log.Debugf(format, arguments...)
	}
}

// ApplyTx - run a transaction handler on a host message
//
// any failure aborts: the panic value is a fault.ProcessError
func ApplyTx(handler TxHandler, ctx *Ctx, message []byte) {
	data, err := DecodeTxMessage(message)
	if nil != err {
		fault.Abort("decode transaction message", err)
	}

	err = handler(ctx, data)
	if nil != err {
		debugf("transaction at height: %d  gas: %d  error: %s", ctx.Height(), ctx.Gas(), err)
		fault.Abort("transaction", err)
	}
}

// ValidateTx - run a validity predicate handler on a host message
//
// returns VpAccept only if the handler accepted without error
func ValidateTx(handler VpHandler, ctx *Ctx, message []byte) uint64 {
	m, err := DecodeVpMessage(message)
	if nil != err {
		debugf("validity predicate message error: %s", err)
		return VpReject
	}

	accept, err := handler(ctx, m.Data, m.Address, m.KeysChanged, m.Verifiers)
	if nil != err {
		debugf("validity predicate: %s  error: %s", m.Address, err)
		return VpReject
	}
	if !accept {
		return VpReject
	}
	return VpAccept
}
