package id

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
)

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()

	if !strings.HasPrefix(id.String(), "req_") {
		t.Fatalf("RequestID should start with 'req_', got: %s", id)
	}
	if len(id.String()) != len("req_")+26 {
		t.Errorf("unexpected length for %s", id)
	}
}

func TestGenerateMonotonic(t *testing.T) {
	gen := NewGenerator()

	prev := gen.Generate()
	for i := 0; i < 1000; i++ {
		next := gen.Generate()
		if next.Compare(prev) <= 0 {
			t.Fatalf("IDs should increase: %s then %s", prev, next)
		}
		prev = next
	}
}

func TestGenerateConcurrent(t *testing.T) {
	gen := NewGenerator()
	const n = 200

	var (
		mu   sync.Mutex
		seen = make(map[string]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.GenerateWithPrefix(RequestPrefix)
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique IDs, got %d", n, len(seen))
	}
}

func TestDeterministicEntropy(t *testing.T) {
	a := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64)))
	id := a.Generate()
	if id.Entropy()[0] != 0 {
		t.Errorf("expected zero entropy, got %x", id.Entropy())
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}

	ctx = WithRequestID(ctx, "req_abc")
	if got := RequestIDFromContext(ctx); got != "req_abc" {
		t.Errorf("expected req_abc, got %q", got)
	}
}
