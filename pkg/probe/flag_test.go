package probe

import (
	"sync"
	"testing"
)

func TestFlagTakeIsSingleShot(t *testing.T) {
	var f Flag
	if f.Take() {
		t.Fatalf("fresh flag should not be set")
	}
	if !f.Raise() {
		t.Fatalf("first raise should not report a lost signal")
	}
	if f.Raise() {
		t.Fatalf("second raise should collapse into the pending one")
	}
	if !f.Take() {
		t.Fatalf("expected pending signal")
	}
	if f.Take() {
		t.Fatalf("signal consumed twice")
	}
}

func TestFlagConcurrentTakeDeliversOnce(t *testing.T) {
	var f Flag
	f.Raise()

	var wg sync.WaitGroup
	var mu sync.Mutex
	got := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.Take() {
				mu.Lock()
				got++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if got != 1 {
		t.Fatalf("expected exactly one taker, got %d", got)
	}
}
