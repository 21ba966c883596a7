/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pool

import (
	"github.com/caiflower/minihttpd/global/env"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultPanic = "panic"
)

var poolSize *prometheus.GaugeVec      //worker数量
var poolBusy *prometheus.GaugeVec      //执行中的job数量
var poolQueued *prometheus.GaugeVec    //排队中的job数量
var poolJobCount *prometheus.CounterVec //已执行的job数量

func init() {
	constLabels := prometheus.Labels{"ip": env.GetLocalHostIP()}
	poolSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "worker_pool_size", Help: "Number of workers in the pool", ConstLabels: constLabels}, []string{"pool"})
	poolBusy = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "worker_pool_busy", Help: "Number of workers running a job", ConstLabels: constLabels}, []string{"pool"})
	poolQueued = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "worker_pool_queued", Help: "Number of jobs waiting for a worker", ConstLabels: constLabels}, []string{"pool"})
	poolJobCount = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "worker_pool_jobs_total", Help: "Number of jobs executed by the pool", ConstLabels: constLabels}, []string{"pool", "result"})
	_ = prometheus.Register(poolSize)
	_ = prometheus.Register(poolBusy)
	_ = prometheus.Register(poolQueued)
	_ = prometheus.Register(poolJobCount)
}

type poolMetric struct {
	name string
}

func newPoolMetric(name string) *poolMetric {
	return &poolMetric{name: name}
}

func (m *poolMetric) setSize(size int) {
	poolSize.WithLabelValues(m.name).Set(float64(size))
}

func (m *poolMetric) busy(n int64) {
	poolBusy.WithLabelValues(m.name).Set(float64(n))
}

func (m *poolMetric) queued(n int) {
	poolQueued.WithLabelValues(m.name).Set(float64(n))
}

func (m *poolMetric) done(result string) {
	poolJobCount.WithLabelValues(m.name, result).Inc()
}
