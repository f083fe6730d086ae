// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ledgerdb"

// counters kept by each backend instance
type metrics struct {
	registerer prometheus.Registerer

	reads        prometheus.Counter
	writes       prometheus.Counter
	deletes      prometheus.Counter
	bytesWritten prometheus.Counter
	iteratorGas  prometheus.Counter
	height       prometheus.Gauge
}

func newMetrics(engine string, registerer prometheus.Registerer) (*metrics, error) {
	labels := prometheus.Labels{"engine": engine}
	counter := func(name string, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "storage",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &metrics{
		registerer:   registerer,
		reads:        counter("subspace_reads_total", "subspace values read"),
		writes:       counter("subspace_writes_total", "subspace values written"),
		deletes:      counter("subspace_deletes_total", "subspace values deleted"),
		bytesWritten: counter("written_bytes_total", "value bytes written, block records included"),
		iteratorGas:  counter("iterator_gas_total", "gas charged by prefix iterators"),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "storage",
			Name:        "committed_height",
			Help:        "height of the last committed block",
			ConstLabels: labels,
		}),
	}

	if nil == registerer {
		return m, nil
	}
	registered := []prometheus.Collector{}
	for _, c := range m.collectors() {
		if err := registerer.Register(c); nil != err {
			for _, r := range registered {
				registerer.Unregister(r)
			}
			return nil, err
		}
		registered = append(registered, c)
	}
	return m, nil
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.reads,
		m.writes,
		m.deletes,
		m.bytesWritten,
		m.iteratorGas,
		m.height,
	}
}

// remove the collectors so a later instance can register again
func (m *metrics) unregister() {
	if nil == m.registerer {
		return
	}
	for _, c := range m.collectors() {
		m.registerer.Unregister(c)
	}
	m.registerer = nil
}

func (m *metrics) chargeGas(gas uint64) {
	m.iteratorGas.Add(float64(gas))
}

func (m *metrics) recordWrite(n int) {
	m.writes.Inc()
	m.bytesWritten.Add(float64(n))
}

func (m *metrics) recordBlock(records []record) {
	n := 0
	for _, r := range records {
		n += len(r.value)
	}
	m.bytesWritten.Add(float64(n))
}
