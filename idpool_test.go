package hses

import (
	"testing"
	"time"
)

func TestIDPoolAllocateRelease(t *testing.T) {
	p := newIDPool(0)
	a := p.allocate()
	b := p.allocate()
	if a == b {
		t.Fatalf("expected distinct ids, got %d twice", a)
	}
	p.release(a)
	c := p.allocate()
	if c != b+1 {
		t.Fatalf("expected allocation to continue at %d after releasing %d, got %d", b+1, a, c)
	}
}

func TestIDPoolBlocksWhenExhausted(t *testing.T) {
	p := newIDPool(0)
	for i := 0; i < 256; i++ {
		p.allocate()
	}

	done := make(chan byte, 1)
	go func() {
		done <- p.allocate()
	}()

	select {
	case <-done:
		t.Fatalf("allocate returned before any id was released")
	case <-time.After(50 * time.Millisecond):
	}

	p.release(42)

	select {
	case id := <-done:
		if id != 42 {
			t.Fatalf("expected the released id 42, got %d", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("allocate did not unblock after release")
	}
}

func TestIDPoolSeedAffectsStartingID(t *testing.T) {
	p := newIDPool(200)
	if id := p.allocate(); id != 200 {
		t.Fatalf("expected first allocation to start at seed 200, got %d", id)
	}
}
