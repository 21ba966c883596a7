package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caiflower/minihttpd/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPoolZeroSize(t *testing.T) {
	assert.Panics(t, func() { NewWorkerPool(0) })
	assert.Panics(t, func() { NewWorkerPool(-3) })
	assert.Panics(t, func() { NewWorkerPoolWithLogger("nil-logger", 1, nil) })
}

func TestExecuteAllJobsExactlyOnce(t *testing.T) {
	const size, jobs = 4, 500
	p := NewWorkerPoolWithLogger("exactly-once", size, logger.DefaultLogger())
	assert.Equal(t, size, p.Size())

	counts := make([]int64, jobs)
	wg := sync.WaitGroup{}
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		i := i
		p.Execute(func() {
			defer wg.Done()
			atomic.AddInt64(&counts[i], 1)
		})
	}
	wg.Wait()

	for i, c := range counts {
		assert.Equalf(t, int64(1), c, "job %d executed %d times", i, c)
	}
	assert.Eventually(t, func() bool {
		return p.Stats().Executed == jobs
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(poolJobCount.WithLabelValues("exactly-once", resultOK)) == jobs
	}, time.Second, 10*time.Millisecond)
}

func TestSlowJobDoesNotBlockFastJob(t *testing.T) {
	p := NewWorkerPoolWithLogger("parallel", 2, logger.DefaultLogger())

	slowDone := make(chan time.Time, 1)
	fastDone := make(chan time.Time, 1)
	start := time.Now()

	p.Execute(func() {
		time.Sleep(500 * time.Millisecond)
		slowDone <- time.Now()
	})
	p.Execute(func() {
		fastDone <- time.Now()
	})

	fast := <-fastDone
	slow := <-slowDone
	assert.Less(t, fast.Sub(start), 250*time.Millisecond)
	assert.True(t, fast.Before(slow))
}

func TestSingleWorkerKeepsQueueOrder(t *testing.T) {
	p := NewWorkerPoolWithLogger("fifo", 1, logger.DefaultLogger())

	var mu sync.Mutex
	var order []int
	wg := sync.WaitGroup{}
	wg.Add(100)
	for i := 0; i < 100; i++ {
		i := i
		p.Execute(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	wg.Wait()

	for i, v := range order {
		require.Equal(t, i, v)
	}
}

func TestExecuteNeverBlocks(t *testing.T) {
	p := NewWorkerPoolWithLogger("never-blocks", 1, logger.DefaultLogger())

	release := make(chan struct{})
	started := make(chan struct{})
	p.Execute(func() {
		close(started)
		<-release
	})
	<-started

	begin := time.Now()
	for i := 0; i < 1000; i++ {
		p.Execute(func() {})
	}
	assert.Less(t, time.Since(begin), time.Second)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Busy)
	assert.Equal(t, 1000, stats.Queued)

	close(release)
	assert.Eventually(t, func() bool {
		return p.Stats().Executed == 1001
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPanickingJobKeepsWorkerAlive(t *testing.T) {
	p := NewWorkerPoolWithLogger("panics", 1, logger.DefaultLogger())

	p.Execute(func() { panic("job failure") })
	p.Execute(nil)

	done := make(chan struct{})
	p.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking job")
	}

	assert.Eventually(t, func() bool {
		s := p.Stats()
		return s.Executed == 2 && s.Panicked == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(poolJobCount.WithLabelValues("panics", resultPanic)))
}
