package buffer

import (
	"errors"
	"io"
	"sync"
	"testing"
)

func TestQueue_AddNext(t *testing.T) {
	q := New[int](4)
	for i := 1; i <= 3; i++ {
		if err := q.Add(i); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	for i := 1; i <= 3; i++ {
		v, err := q.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if v != i {
			t.Errorf("Next = %d, want %d", v, i)
		}
	}
}

func TestQueue_DrainThenEOF(t *testing.T) {
	q := New[string](1)
	q.Add("last")
	q.CloseWrite()

	v, err := q.Next()
	if err != nil || v != "last" {
		t.Fatalf("Next = %q, %v", v, err)
	}
	if _, err := q.Next(); err != io.EOF {
		t.Fatalf("Next after drain = %v, want io.EOF", err)
	}
	if err := q.Add("late"); err != ErrClosed {
		t.Fatalf("Add after close = %v, want ErrClosed", err)
	}
}

func TestQueue_CloseWithError(t *testing.T) {
	q := New[int](1)
	q.Add(1)
	boom := errors.New("boom")
	q.CloseWithError(boom)

	if _, err := q.Next(); err != boom {
		t.Fatalf("Next = %v, want boom", err)
	}
	if err := q.Add(2); err != boom {
		t.Fatalf("Add = %v, want boom", err)
	}
}

func TestQueue_BlockedReaderWakes(t *testing.T) {
	q := New[int](1)
	var wg sync.WaitGroup
	wg.Add(1)
	var got int
	var gotErr error
	go func() {
		defer wg.Done()
		got, gotErr = q.Next()
	}()

	q.Add(42)
	wg.Wait()
	if gotErr != nil || got != 42 {
		t.Fatalf("Next = %d, %v", got, gotErr)
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := New[int](16)
	const n = 100
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				q.Add(i)
			}
		}()
	}
	go func() {
		wg.Wait()
		q.CloseWrite()
	}()

	count := 0
	for {
		if _, err := q.Next(); err != nil {
			if err != io.EOF {
				t.Fatalf("Next: %v", err)
			}
			break
		}
		count++
	}
	if count != 4*n {
		t.Fatalf("drained %d items, want %d", count, 4*n)
	}
}
