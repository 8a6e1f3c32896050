package loop

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPostAndDrain(t *testing.T) {
	q := NewQueue(4)
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		if !q.Post(func() { order = append(order, i) }, nil) {
			t.Fatalf("Post(%d) rejected on an open queue", i)
		}
	}

	if n := q.Drain(); n != 3 {
		t.Errorf("Drain() = %d, want 3", n)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, order); diff != "" {
		t.Errorf("callbacks ran out of order (-want +got):\n%s", diff)
	}
	if n := q.Drain(); n != 0 {
		t.Errorf("second Drain() = %d, want 0", n)
	}
}

func TestPostUnblocksOnCancel(t *testing.T) {
	q := NewQueue(0)
	cancel := make(chan struct{})
	result := make(chan bool)

	go func() { result <- q.Post(func() {}, cancel) }()
	close(cancel)

	select {
	case ok := <-result:
		if ok {
			t.Error("Post should report false after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("Post did not return after cancel")
	}
}

func TestPostAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close()

	if q.Post(func() {}, nil) {
		t.Error("Post() accepted after Close")
	}
	select {
	case <-q.Done():
	default:
		t.Error("Done should be closed after Close")
	}
}
