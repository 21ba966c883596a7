package basic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testLinkedList struct {
	Name string
}

func TestLinkedList(t *testing.T) {
	l := LinkedList[int]{}

	l.AddFirst(2)
	l.AddFirst(1)
	l.AddLast(3)
	l.AddLast(4)
	assert.Equal(t, 4, l.Size())
	assert.True(t, Contains(&l, 2))

	for i := 1; i <= 4; i++ {
		first, err := l.RemoveFirst()
		assert.NoError(t, err)
		assert.Equal(t, i, first)
	}
	_, err := l.RemoveFirst()
	assert.ErrorIs(t, err, ErrEmpty)

	l.AddFirst(2)
	l.AddFirst(1)
	l.AddLast(3)
	l.AddLast(4)

	for i := 4; i >= 1; i-- {
		last, err := l.RemoveLast()
		assert.NoError(t, err)
		assert.Equal(t, i, last)
	}
	_, err = l.RemoveLast()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.False(t, Contains(&l, 2))

	l2 := LinkedList[testLinkedList]{}
	l2.AddFirst(testLinkedList{Name: "1"})
	assert.True(t, Contains(&l2, testLinkedList{Name: "1"}))

	l3 := LinkedList[*testLinkedList]{}
	l3.AddFirst(&testLinkedList{Name: "1"})
	assert.False(t, Contains(&l3, &testLinkedList{Name: "1"}))
}

func TestLinkedListMixedEnds(t *testing.T) {
	l := LinkedList[string]{}
	l.AddLast("a")
	l.AddLast("b")

	last, _ := l.RemoveLast()
	assert.Equal(t, "b", last)
	first, _ := l.RemoveFirst()
	assert.Equal(t, "a", first)
	assert.Equal(t, 0, l.Size())

	l.AddLast("c")
	peek, err := l.PeekFirst()
	assert.NoError(t, err)
	assert.Equal(t, "c", peek)
	assert.Equal(t, 1, l.Size())
}
