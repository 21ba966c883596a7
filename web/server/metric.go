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

package server

import (
	"github.com/caiflower/minihttpd/global/env"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectionCount  *prometheus.CounterVec
	acceptErrorCount *prometheus.CounterVec
	requestCount     *prometheus.CounterVec
	parseErrorCount  *prometheus.CounterVec
	costHistogram    *prometheus.HistogramVec
)

func init() {
	constLabels := prometheus.Labels{"ip": env.GetLocalHostIP()}
	buckets := []float64{1, 5, 20, 50, 100, 200, 500, 1000, 5000}

	connectionCount = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttpd_connections_total", Help: "Accepted connections", ConstLabels: constLabels}, []string{"name"})
	acceptErrorCount = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttpd_accept_errors_total", Help: "Failed accepts", ConstLabels: constLabels}, []string{"name"})
	requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttpd_requests_total", Help: "Answered requests", ConstLabels: constLabels}, []string{"name", "code", "method"})
	parseErrorCount = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "minihttpd_parse_errors_total", Help: "Request lines that could not be decoded", ConstLabels: constLabels}, []string{"name", "kind"})
	costHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "minihttpd_request_duration_ms", Help: "Time from read to written response", Buckets: buckets, ConstLabels: constLabels}, []string{"name"})

	_ = prometheus.Register(connectionCount)
	_ = prometheus.Register(acceptErrorCount)
	_ = prometheus.Register(requestCount)
	_ = prometheus.Register(parseErrorCount)
	_ = prometheus.Register(costHistogram)
}

type serverMetric struct {
	name string
}

func newServerMetric(name string) *serverMetric {
	return &serverMetric{name: name}
}

func (m *serverMetric) connected() {
	connectionCount.WithLabelValues(m.name).Inc()
}

func (m *serverMetric) acceptFailed() {
	acceptErrorCount.WithLabelValues(m.name).Inc()
}

func (m *serverMetric) parseFailed(kind string) {
	parseErrorCount.WithLabelValues(m.name, kind).Inc()
}

func (m *serverMetric) answered(code, method string, costMs int64) {
	requestCount.WithLabelValues(m.name, code, method).Inc()
	costHistogram.WithLabelValues(m.name).Observe(float64(costMs))
}
