// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel for abort messages
var abortLog struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	abortLog.Lock()
	defer abortLog.Unlock()

	if nil != abortLog.log {
		return ErrAlreadyInitialised
	}
	abortLog.log = logger.New("ABORT")
	if nil == abortLog.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	abortLog.Lock()
	defer abortLog.Unlock()

	if nil != abortLog.log {
		abortLog.log.Flush()
		abortLog.log = nil
	}
}

// Abort - log the failure of an unrecoverable operation then panic
//
// the panic value is a ProcessError
func Abort(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	if _, file, line, ok := runtime.Caller(1); ok {
		criticalf("(%q:%d) %s", file, line, s)
	} else {
		criticalf("%s", s)
	}
	panic(ProcessError(s))
}

// internal routine to handle an uninitialised logger channel
func criticalf(format string, arguments ...interface{}) {
	abortLog.Lock()
	defer abortLog.Unlock()

	if nil == abortLog.log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	abortLog.log.Criticalf(format, arguments...)
	abortLog.log.Flush()
}
