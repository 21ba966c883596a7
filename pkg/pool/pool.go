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
	"fmt"
	"sync/atomic"

	"github.com/caiflower/minihttpd/pkg/basic"
	"github.com/caiflower/minihttpd/pkg/e"
	"github.com/caiflower/minihttpd/pkg/logger"
)

// Job is one unit of deferred work. It is run by exactly one worker.
type Job func()

type Stats struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Busy     int64  `json:"busy"`
	Queued   int    `json:"queued"`
	Executed int64  `json:"executed"`
	Panicked int64  `json:"panicked"`
}

// WorkerPool is a fixed set of long-lived workers sharing one unbounded FIFO
// queue. There is no shutdown: workers live as long as the process, and a job
// that never returns keeps its worker forever.
type WorkerPool struct {
	name    string
	size    int
	queue   *basic.BlockingQueue[Job]
	logger  logger.ILog
	metric  *poolMetric
	workers []*worker

	busy     int64
	executed int64
	panicked int64
}

type worker struct {
	id   int
	pool *WorkerPool
}

func NewWorkerPool(size int) *WorkerPool {
	return NewWorkerPoolWithLogger("default", size, logger.DefaultLogger())
}

// NewWorkerPoolWithLogger starts size workers. A size below one is a
// configuration error and panics.
func NewWorkerPoolWithLogger(name string, size int, log logger.ILog) *WorkerPool {
	if size <= 0 {
		panic(fmt.Sprintf("[pool] worker pool size must be positive, got %d. ", size))
	}
	if log == nil {
		panic("[pool] logger must not be nil. ")
	}

	p := &WorkerPool{
		name:    name,
		size:    size,
		queue:   basic.NewBlockingQueue[Job](),
		logger:  log,
		metric:  newPoolMetric(name),
		workers: make([]*worker, 0, size),
	}
	p.metric.setSize(size)

	for id := 0; id < size; id++ {
		w := &worker{id: id, pool: p}
		p.workers = append(p.workers, w)
		go w.loop()
	}

	p.logger.Info("[pool] worker pool %s started with %d workers. ", name, size)
	return p
}

// Execute queues job for a worker. It never blocks and reports nothing back.
func (p *WorkerPool) Execute(job Job) {
	if job == nil {
		p.logger.Warn("[pool] %s ignore nil job. ", p.name)
		return
	}
	p.queue.Put(job)
	p.metric.queued(p.queue.Size())
}

func (p *WorkerPool) Name() string {
	return p.name
}

func (p *WorkerPool) Size() int {
	return p.size
}

func (p *WorkerPool) Stats() Stats {
	return Stats{
		Name:     p.name,
		Size:     p.size,
		Busy:     atomic.LoadInt64(&p.busy),
		Queued:   p.queue.Size(),
		Executed: atomic.LoadInt64(&p.executed),
		Panicked: atomic.LoadInt64(&p.panicked),
	}
}

func (w *worker) loop() {
	p := w.pool
	for {
		job := p.queue.Take()
		p.metric.queued(p.queue.Size())

		p.logger.Trace("[pool] %s worker %d got a job; executing. ", p.name, w.id)
		p.metric.busy(atomic.AddInt64(&p.busy, 1))

		result := resultOK
		if r := e.Recover(fmt.Sprintf("[pool] %s worker %d", p.name, w.id), p.logger, job); r != nil {
			atomic.AddInt64(&p.panicked, 1)
			result = resultPanic
		}

		atomic.AddInt64(&p.executed, 1)
		p.metric.busy(atomic.AddInt64(&p.busy, -1))
		p.metric.done(result)
		p.logger.Trace("[pool] %s worker %d finished executing. ", p.name, w.id)
	}
}
