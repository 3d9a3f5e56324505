package core

import (
	"testing"
	"time"
)

func TestFixedBackoffBounds(t *testing.T) {
	b := FixedBackoff{Wait: 100 * time.Millisecond}
	for tries := uint32(1); tries < 5; tries++ {
		delay := b.Delay(tries)
		if delay < 100*time.Millisecond || delay > 110*time.Millisecond {
			t.Fatalf("fixed delay out of bounds: %v", delay)
		}
	}
}

func TestLinearBackoffBounds(t *testing.T) {
	b := LinearBackoff{Step: 50 * time.Millisecond, Max: 200 * time.Millisecond}
	if delay := b.Delay(1); delay < 50*time.Millisecond || delay > 55*time.Millisecond {
		t.Fatalf("linear delay(1)=%v", delay)
	}
	if delay := b.Delay(100); delay < 200*time.Millisecond || delay > 220*time.Millisecond {
		t.Fatalf("linear delay must cap at max+jitter, got %v", delay)
	}
}

func TestExponentialBackoffBounds(t *testing.T) {
	b := ExponentialBackoff{Base: 100 * time.Millisecond, Max: 10 * time.Second}
	// (1 · 100/10)² = 100ms
	if delay := b.Delay(1); delay < 100*time.Millisecond || delay > 110*time.Millisecond {
		t.Fatalf("exponential delay(1)=%v", delay)
	}
	// (5 · 100/10)² = 2500ms
	if delay := b.Delay(5); delay < 2500*time.Millisecond || delay > 2750*time.Millisecond {
		t.Fatalf("exponential delay(5)=%v", delay)
	}
	// Far past the cap.
	if delay := b.Delay(1000); delay < 10*time.Second || delay > 11*time.Second {
		t.Fatalf("exponential delay must cap at max+jitter, got %v", delay)
	}
}

func TestZeroBackoffStaysZero(t *testing.T) {
	if delay := (FixedBackoff{}).Delay(3); delay != 0 {
		t.Fatalf("zero backoff must not sleep, got %v", delay)
	}
}
