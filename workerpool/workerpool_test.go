package workerpool

import (
	"testing"
	"time"
)

func TestResultsDeliveredInSubmitOrder(t *testing.T) {
	p := New[int, int](4, func(n int) (int, error) {
		// Reverse-sized sleeps so results would complete out of
		// submission order without the reorder stage.
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return n * n, nil
	})
	const total = 10
	for i := 0; i < total; i++ {
		p.Submit(i, i)
	}
	go p.Close()

	got := make([]int, 0, total)
	for r := range p.Results {
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		got = append(got, r.Value)
	}
	if len(got) != total {
		t.Fatalf("want %d results, got %d", total, len(got))
	}
	for i, v := range got {
		if v != i*i {
			t.Fatalf("result %d out of order: got %d want %d", i, v, i*i)
		}
	}
}

func TestCancelStopsWorkersEarly(t *testing.T) {
	p := New[int, int](2, func(n int) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return n, nil
	})
	for i := 0; i < 20; i++ {
		p.Submit(i, i)
	}
	done := make(chan struct{})
	go func() {
		p.Cancel()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Cancel did not return promptly")
	}
}

func TestSubmitAfterCancelReturnsFalseWithoutBlocking(t *testing.T) {
	p := New[int, int](1, func(n int) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return n, nil
	})
	p.Cancel()

	done := make(chan bool)
	go func() { done <- p.Submit(0, 0) }()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("Submit after Cancel should report failure, not success")
		}
	case <-time.After(time.Second):
		t.Fatal("Submit after Cancel blocked instead of returning false")
	}
}
