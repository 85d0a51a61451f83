// Copyright 2024-2026, Flowsim Authors

package graph

import (
	"testing"
)

func TestReadyQueueAscendingOrder(t *testing.T) {
	q := NewReadyQueue()
	q.Push(5)
	q.Push(1)
	q.Push(3)

	want := []int64{1, 3, 5}
	for _, expected := range want {
		id, ok := q.Pop()
		if !ok {
			t.Fatal("queue empty, expected more ids")
		}
		if id != expected {
			t.Errorf("id = %d, expected %d", id, expected)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("expected an empty queue after draining")
	}
}

func TestReadyQueueDuplicatePush(t *testing.T) {
	q := NewReadyQueue()
	if !q.Push(4) {
		t.Error("first push returned false, expected true")
	}
	if q.Push(4) {
		t.Error("duplicate push returned true, expected false")
	}
	if q.Len() != 1 {
		t.Errorf("len = %d, expected 1", q.Len())
	}

	q.Pop()
	// Once popped, the id can be admitted again (push-back flow).
	if !q.Push(4) {
		t.Error("push after pop returned false, expected true")
	}
}

func TestReadyQueueLateArrival(t *testing.T) {
	q := NewReadyQueue()
	q.Push(10)
	q.Push(20)

	id, _ := q.Pop()
	if id != 10 {
		t.Errorf("id = %d, expected 10", id)
	}

	// A smaller id becoming ready later is issued before larger queued ids.
	q.Push(2)
	id, _ = q.Pop()
	if id != 2 {
		t.Errorf("id = %d, expected 2", id)
	}
	id, _ = q.Pop()
	if id != 20 {
		t.Errorf("id = %d, expected 20", id)
	}
}

func TestReadyQueueHas(t *testing.T) {
	q := NewReadyQueue()
	q.Push(1)
	if !q.Has(1) {
		t.Error("Has(1) = false, expected true")
	}
	if q.Has(2) {
		t.Error("Has(2) = true, expected false")
	}
	q.Pop()
	if q.Has(1) {
		t.Error("Has(1) = true after pop, expected false")
	}
}

func TestDeferralQueueFIFO(t *testing.T) {
	q := NewDeferralQueue()
	q.Push(3)
	q.Push(1)

	id, ok := q.Front()
	if !ok || id != 3 {
		t.Errorf("front = %d/%t, expected 3/true", id, ok)
	}

	id, ok = q.Pop()
	if !ok || id != 3 {
		t.Errorf("pop = %d/%t, expected 3/true", id, ok)
	}
	id, ok = q.Pop()
	if !ok || id != 1 {
		t.Errorf("pop = %d/%t, expected 1/true", id, ok)
	}

	if _, ok := q.Front(); ok {
		t.Error("front on empty queue returned ok")
	}
	if _, ok := q.Pop(); ok {
		t.Error("pop on empty queue returned ok")
	}
}
