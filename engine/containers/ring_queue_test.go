package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](4)
	for i := 0; i < 3; i++ {
		rq.Enqueue(i)
	}
	if rq.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", rq.Len())
	}
	for i := 0; i < 3; i++ {
		v, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		if v != i {
			t.Errorf("expected %d, got %d", i, v)
		}
	}
	if !rq.IsEmpty() {
		t.Error("queue should be empty")
	}
}

func TestRingQueueGrowsWhenFull(t *testing.T) {
	rq := NewRingQueue[int](2)

	// Move the read index off zero so growth has to unroll a wrapped ring.
	rq.Enqueue(0)
	rq.Enqueue(1)
	if _, err := rq.Dequeue(); err != nil {
		t.Fatal(err)
	}
	for i := 2; i < 10; i++ {
		rq.Enqueue(i)
	}

	if rq.Len() != 9 {
		t.Fatalf("expected 9 elements, got %d", rq.Len())
	}
	for want := 1; want < 10; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestRingQueueEmpty(t *testing.T) {
	rq := NewRingQueue[string](0)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty from Dequeue, got %v", err)
	}
	if _, err := rq.Peek(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty from Peek, got %v", err)
	}
	rq.Enqueue("a")
	if v, err := rq.Peek(); err != nil || v != "a" {
		t.Errorf("Peek returned %q, %v", v, err)
	}
	if rq.Len() != 1 {
		t.Error("Peek must not remove the element")
	}
}

func TestRingQueueClear(t *testing.T) {
	rq := NewRingQueue[int](4)
	rq.Enqueue(1)
	rq.Enqueue(2)
	rq.Clear()
	if !rq.IsEmpty() {
		t.Fatal("queue should be empty after Clear")
	}
	rq.Enqueue(3)
	if v, _ := rq.Dequeue(); v != 3 {
		t.Errorf("expected 3 after Clear, got %d", v)
	}
}
