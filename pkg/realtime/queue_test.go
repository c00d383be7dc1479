package realtime

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}
	for want := 1; want <= 5; want++ {
		got, ok := q.Pop(context.Background(), time.Second)
		if !ok {
			t.Fatalf("Pop returned no value, want %d", want)
		}
		if got != want {
			t.Errorf("Pop got %d, want %d", got, want)
		}
	}
}

func TestQueue_PopTimesOut(t *testing.T) {
	q := NewQueue[int]()
	start := time.Now()
	_, ok := q.Pop(context.Background(), 30*time.Millisecond)
	if ok {
		t.Error("Pop on empty queue should time out")
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("Pop returned after %v, before the timeout", elapsed)
	}
}

func TestQueue_PopStopsOnContext(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := q.Pop(ctx, time.Minute); ok {
		t.Error("Pop with cancelled context should return false")
	}
}

func TestQueue_PopWakesOnPush(t *testing.T) {
	q := NewQueue[int]()
	done := make(chan int, 1)
	go func() {
		v, _ := q.Pop(context.Background(), 5*time.Second)
		done <- v
	}()
	time.Sleep(10 * time.Millisecond)
	q.Push(42)
	select {
	case v := <-done:
		if v != 42 {
			t.Errorf("got %d, want 42", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not wake on Push")
	}
}

func TestQueue_ResetReseeds(t *testing.T) {
	q := NewQueue[int]()
	q.Push(7)
	q.Push(8)
	q.Reset(0)
	if q.Len() != 1 {
		t.Fatalf("Len %d after Reset, want 1", q.Len())
	}
	v, ok := q.TryPop()
	if !ok || v != 0 {
		t.Errorf("TryPop got (%d, %v), want (0, true)", v, ok)
	}
}

func TestQueue_Drain(t *testing.T) {
	q := NewQueue[string]()
	q.Push("a")
	q.Push("b")
	if n := q.Drain(); n != 2 {
		t.Errorf("Drain dropped %d, want 2", n)
	}
	if _, ok := q.TryPop(); ok {
		t.Error("queue should be empty after Drain")
	}
}

func TestQueue_EachValueDeliveredOnce(t *testing.T) {
	q := NewQueue[int]()
	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[int]int)
		wg   sync.WaitGroup
	)
	for c := 0; c < 3; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := q.Pop(context.Background(), 100*time.Millisecond)
				if !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		q.Push(i)
	}
	wg.Wait()
	if len(seen) != n {
		t.Fatalf("received %d distinct values, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Errorf("value %d delivered %d times", v, count)
		}
	}
}
