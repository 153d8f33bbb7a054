package worker

import (
	"context"
	"testing"
	"time"
)

type testJob struct {
	id int
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	return &testResult{id: j.id}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	for i := 0; i < 10; i++ {
		pool.Submit(&testJob{id: i})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}

	seen := make(map[int]bool)
	for _, r := range results {
		tr := r.(*testResult)
		if tr.err != nil {
			t.Errorf("Expected no error, got %v", tr.err)
		}
		seen[tr.id] = true
	}
	if len(seen) != 10 {
		t.Errorf("Expected 10 distinct job results, got %d", len(seen))
	}
}

func TestPool_ZeroWorkersClamped(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{id: 1})

	results := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
}

func TestKeyedLimiter_IndependentKeys(t *testing.T) {
	limiter := NewKeyedLimiter(1, 1)

	if !limiter.Allow("wikipedia") {
		t.Error("Expected first wikipedia request to be allowed")
	}
	if limiter.Allow("wikipedia") {
		t.Error("Expected second immediate wikipedia request to be limited")
	}
	// A different key has its own budget
	if !limiter.Allow("brave") {
		t.Error("Expected first brave request to be allowed")
	}
}

func TestKeyedLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewKeyedLimiter(0.001, 1)
	limiter.Allow("slow") // Exhaust the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "slow"); err == nil {
		t.Error("Expected context deadline error while waiting")
	}
}

func TestKeyedLimiter_SetRate(t *testing.T) {
	limiter := NewKeyedLimiter(1, 1)
	limiter.SetRate("fast", 100, 10)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("fast") {
			allowed++
		}
	}
	if allowed != 5 {
		t.Errorf("Expected 5 allowed requests after SetRate, got %d", allowed)
	}
}
