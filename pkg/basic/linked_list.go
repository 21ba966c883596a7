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

import "errors"

var ErrEmpty = errors.New("list is empty")

// LinkedList is a doubly linked list. It is not safe for concurrent use.
type LinkedList[T any] struct {
	size  int
	zero  T
	first *linkedListNode[T]
	last  *linkedListNode[T]
}

type linkedListNode[T any] struct {
	item T
	prev *linkedListNode[T]
	next *linkedListNode[T]
}

func (l *LinkedList[T]) AddFirst(item T) {
	n := &linkedListNode[T]{
		item: item,
	}

	if l.first == nil {
		l.first = n
		l.last = n
	} else {
		n.next = l.first
		l.first.prev = n
		l.first = n
	}

	l.size++
}

func (l *LinkedList[T]) AddLast(item T) {
	n := &linkedListNode[T]{
		item: item,
	}

	if l.last == nil {
		l.last = n
		l.first = n
	} else {
		n.prev = l.last
		l.last.next = n
		l.last = n
	}

	l.size++
}

func (l *LinkedList[T]) RemoveFirst() (T, error) {
	if l.size == 0 {
		return l.zero, ErrEmpty
	}

	n := l.first
	l.first = n.next
	if l.first != nil {
		l.first.prev = nil
	} else {
		l.last = nil
	}
	n.next = nil
	l.size--

	return n.item, nil
}

func (l *LinkedList[T]) RemoveLast() (T, error) {
	if l.size == 0 {
		return l.zero, ErrEmpty
	}

	n := l.last
	l.last = n.prev
	if l.last != nil {
		l.last.next = nil
	} else {
		l.first = nil
	}
	n.prev = nil
	l.size--

	return n.item, nil
}

func (l *LinkedList[T]) PeekFirst() (T, error) {
	if l.size == 0 {
		return l.zero, ErrEmpty
	}
	return l.first.item, nil
}

func (l *LinkedList[T]) Size() int {
	return l.size
}

// Each visits items from first to last until fn returns false.
func (l *LinkedList[T]) Each(fn func(item T) bool) {
	for p := l.first; p != nil; p = p.next {
		if !fn(p.item) {
			return
		}
	}
}

func Contains[T comparable](l *LinkedList[T], item T) bool {
	found := false
	l.Each(func(v T) bool {
		found = v == item
		return !found
	})
	return found
}
