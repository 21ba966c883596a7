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

package basic

import (
	"sync"
)

// BlockingQueue is an unbounded FIFO queue for many producers and many
// consumers. Put never blocks; Take blocks while the queue is empty.
type BlockingQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    LinkedList[T]
}

func NewBlockingQueue[T any]() *BlockingQueue[T] {
	q := &BlockingQueue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

func (q *BlockingQueue[T]) Put(val T) {
	q.mu.Lock()
	q.items.AddLast(val)
	q.mu.Unlock()
	q.notEmpty.Signal() // 唤醒一个等待的 Take
}

func (q *BlockingQueue[T]) Take() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Size() == 0 {
		q.notEmpty.Wait()
	}
	val, _ := q.items.RemoveFirst()
	return val
}

// Poll is the non blocking form of Take.
func (q *BlockingQueue[T]) Poll() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	val, err := q.items.RemoveFirst()
	return val, err == nil
}

func (q *BlockingQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Size()
}
