// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option - backend setting
type Option func(*options)

type options struct {
	readOnly       bool
	txQueue        bool
	compressStores bool
	registerer     prometheus.Registerer
}

// WithReadOnly - open an existing LevelDB without modifying it
func WithReadOnly() Option {
	return func(o *options) {
		o.readOnly = true
	}
}

// WithTxQueue - persist and require the pending transaction queue
func WithTxQueue() Option {
	return func(o *options) {
		o.txQueue = true
	}
}

// WithStoreCompression - zstd compress merkle store blobs when writing
//
// reading always accepts both forms
func WithStoreCompression() Option {
	return func(o *options) {
		o.compressStores = true
	}
}

// WithMetrics - register the backend counters
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
